package loan

import (
	"context"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/member"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=loan

// Store defines the loan persistence surface the engine depends on. The
// engine re-reads current state through it on every operation and never
// caches entity state across calls.
type Store interface {
	GetByID(ctx context.Context, id int64) (Loan, error)
	CountActiveByMember(ctx context.Context, memberID int64) (int, error)
	ExistsActiveByBook(ctx context.Context, bookID int64) (bool, error)
	ExistsOverdueByMember(ctx context.Context, memberID int64, cutoff time.Time) (bool, error)
	ListByMember(ctx context.Context, memberID int64) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
}

// MemberFinder is the slice of the member repository the engine needs.
type MemberFinder interface {
	GetByID(ctx context.Context, id int64) (member.Member, error)
}

// BookFinder is the slice of the book repository the engine needs.
type BookFinder interface {
	GetByID(ctx context.Context, id int64) (book.Book, error)
}
