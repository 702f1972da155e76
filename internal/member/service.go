package member

import (
	"context"
	"io"
	"time"
)

const profileFolder = "members/profile/"

// presignTTL bounds how long a handed-out profile URL stays valid.
const presignTTL = 15 * time.Minute

// Service provides member lifecycle logic.
type Service struct {
	repo  Repository
	loans LoanCounter
	files ProfileFiles
}

// NewService creates a new member service. files may be nil when no object
// storage is configured; registration then skips profile uploads.
func NewService(repo Repository, loans LoanCounter, files ProfileFiles) *Service {
	return &Service{repo: repo, loans: loans, files: files}
}

// ProfileUpload carries an optional profile image attached at registration.
type ProfileUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Register creates a member with a unique email. When a profile upload is
// supplied the file is stored first and its object key saved on the record.
func (s *Service) Register(ctx context.Context, name, email string, profile *ProfileUpload) (Member, error) {
	m, err := New(name, email)
	if err != nil {
		return Member{}, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, m.Email)
	if err != nil {
		return Member{}, err
	}
	if exists {
		return Member{}, ErrDuplicateEmail
	}

	if profile != nil && s.files != nil {
		key, err := s.files.Upload(ctx, profileFolder, profile.Filename, profile.ContentType, profile.Body)
		if err != nil {
			return Member{}, err
		}
		m.ProfileKey = key
	}

	if err := s.repo.Create(ctx, &m); err != nil {
		return Member{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (Member, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context) ([]Member, error) {
	return s.repo.List(ctx)
}

// ProfileURL returns a short-lived presigned URL for the member's profile
// image, or "" when the member has none.
func (s *Service) ProfileURL(ctx context.Context, m Member) (string, error) {
	if m.ProfileKey == "" || s.files == nil {
		return "", nil
	}
	return s.files.PresignGet(ctx, m.ProfileKey, presignTTL)
}

// UpdateName renames an existing member.
func (s *Service) UpdateName(ctx context.Context, id int64, name string) (Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Member{}, err
	}
	if err := m.Rename(name); err != nil {
		return Member{}, err
	}
	if err := s.repo.UpdateName(ctx, id, m.Name); err != nil {
		return Member{}, err
	}
	return m, nil
}

// Delete removes a member. Members holding active loans cannot be deleted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	active, err := s.loans.CountActiveByMember(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrHasActiveLoans
	}
	return s.repo.Delete(ctx, id)
}
