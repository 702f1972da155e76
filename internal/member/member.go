package member

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a member is not found.
	ErrNotFound = errors.New("member not found")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email is already registered")
	// ErrHasActiveLoans blocks deletion while the member still holds books.
	ErrHasActiveLoans = errors.New("member has active loans")
	// ErrInvalidInput wraps field validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// Member represents a registered library member.
type Member struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ProfileKey string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// New validates the field invariants and builds a member ready to be persisted.
func New(name, email string) (Member, error) {
	if err := validateName(name); err != nil {
		return Member{}, err
	}
	if err := validateEmail(email); err != nil {
		return Member{}, err
	}
	return Member{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}, nil
}

// Rename changes the display name, keeping the non-blank invariant.
func (m *Member) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	m.Name = strings.TrimSpace(name)
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email must contain '@'", ErrInvalidInput)
	}
	return nil
}
