package member

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=member

// Repository defines the contract for member data storage.
type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id int64) (Member, error)
	GetByEmail(ctx context.Context, email string) (Member, error)
	List(ctx context.Context) ([]Member, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

// LoanCounter reports how many active loans a member currently holds.
// Implemented by the loan store; used to block deletion of members with
// outstanding loans.
type LoanCounter interface {
	CountActiveByMember(ctx context.Context, memberID int64) (int, error)
}

// ProfileFiles is the slice of the object storage service used for member
// profile images. Keys are opaque; callers never see bucket details.
type ProfileFiles interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
