package loan

import (
	"context"
	"errors"

	"libraryapi/internal/book"
	"libraryapi/internal/member"
	"libraryapi/internal/platform/clock"
)

// Service is the loan rule engine. It owns no state of its own; every
// decision re-reads current state from the store.
type Service struct {
	store   Store
	members MemberFinder
	books   BookFinder
	clock   clock.Clock
}

func NewService(store Store, members MemberFinder, books BookFinder, clk clock.Clock) *Service {
	return &Service{store: store, members: members, books: books, clock: clk}
}

// CreateLoan decides whether memberID may borrow bookID and persists the new
// loan if so. The checks run in a fixed order, existence before business
// rules, so callers always get the most specific error. No side effects
// happen before every check has passed. Concurrent conflicts that slip past
// the checks are caught by the store's constraints and surface as the same
// errors.
func (s *Service) CreateLoan(ctx context.Context, memberID, bookID int64) (Loan, error) {
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, member.ErrNotFound) {
			return Loan{}, ErrMemberNotFound
		}
		return Loan{}, err
	}

	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, book.ErrNotFound) {
			return Loan{}, ErrBookNotFound
		}
		return Loan{}, err
	}

	active, err := s.store.CountActiveByMember(ctx, memberID)
	if err != nil {
		return Loan{}, err
	}
	if active >= MaxActiveLoans {
		return Loan{}, ErrLimitExceeded
	}

	loaned, err := s.store.ExistsActiveByBook(ctx, bookID)
	if err != nil {
		return Loan{}, err
	}
	if loaned {
		return Loan{}, ErrBookAlreadyLoaned
	}

	today := clock.Date(s.clock.Now())
	overdue, err := s.store.ExistsOverdueByMember(ctx, memberID, Cutoff(today))
	if err != nil {
		return Loan{}, err
	}
	if overdue {
		return Loan{}, ErrOverdueLoan
	}

	l := Loan{MemberID: memberID, BookID: bookID, LoanDate: today}
	if err := s.store.Save(ctx, &l); err != nil {
		return Loan{}, err
	}
	return l, nil
}

// ReturnBook closes an active loan, stamping today as the return date. The
// book becomes available for a new loan immediately. Returning an already
// closed loan is an error, not a no-op.
func (s *Service) ReturnBook(ctx context.Context, loanID int64) (Loan, error) {
	l, err := s.store.GetByID(ctx, loanID)
	if err != nil {
		return Loan{}, err
	}
	if !l.Active() {
		return Loan{}, ErrAlreadyReturned
	}

	today := clock.Date(s.clock.Now())
	l.ReturnDate = &today
	if err := s.store.Save(ctx, &l); err != nil {
		return Loan{}, err
	}
	return l, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Loan, error) {
	return s.store.GetByID(ctx, id)
}

// ListByMember returns the member's full loan history, active and returned.
func (s *Service) ListByMember(ctx context.Context, memberID int64) ([]Loan, error) {
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, member.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.store.ListByMember(ctx, memberID)
}
