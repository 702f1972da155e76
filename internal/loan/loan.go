// Package loan implements the loan rule engine: it decides whether a member
// may borrow a book, fixes loan and due dates, and closes loans on return.
package loan

import (
	"errors"
	"fmt"
	"time"
)

// LoanPeriodDays is the fixed lending period. The due date and the overdue
// cutoff both derive from it; it is a constant, not configuration.
const LoanPeriodDays = 14

// MaxActiveLoans is the borrowing cap per member.
const MaxActiveLoans = 3

var (
	// ErrNotFound is returned when a loan is not found.
	ErrNotFound = errors.New("loan not found")
	// ErrMemberNotFound is returned when the borrowing member does not exist.
	ErrMemberNotFound = errors.New("member not found")
	// ErrBookNotFound is returned when the requested book does not exist.
	ErrBookNotFound = errors.New("book not found")
	// ErrLimitExceeded is returned when the member already holds the maximum
	// number of active loans.
	ErrLimitExceeded = fmt.Errorf("loan limit exceeded: a member can borrow at most %d books", MaxActiveLoans)
	// ErrBookAlreadyLoaned is returned when the book has an active loan.
	ErrBookAlreadyLoaned = errors.New("book is already loaned out")
	// ErrOverdueLoan is returned when the member holds an overdue active loan.
	ErrOverdueLoan = errors.New("member has an overdue loan")
	// ErrAlreadyReturned is returned when returning a loan that is closed.
	ErrAlreadyReturned = errors.New("loan is already returned")
)

// Loan records one member borrowing one book. ReturnDate stays nil while the
// loan is active; setting it once is the only mutation a loan ever sees.
type Loan struct {
	ID         int64      `json:"id"`
	MemberID   int64      `json:"member_id"`
	BookID     int64      `json:"book_id"`
	LoanDate   time.Time  `json:"loan_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

// Active reports whether the loan is still outstanding.
func (l Loan) Active() bool { return l.ReturnDate == nil }

// DueDate is derived from the loan date; it is never stored.
func (l Loan) DueDate() time.Time { return l.LoanDate.AddDate(0, 0, LoanPeriodDays) }

// Overdue reports whether the loan is active and its loan date lies before
// the cutoff. A loan made exactly LoanPeriodDays ago is not yet overdue.
func (l Loan) Overdue(today time.Time) bool {
	return l.Active() && l.LoanDate.Before(Cutoff(today))
}

// Cutoff returns today minus the lending period. Active loans with a loan
// date before the cutoff are overdue.
func Cutoff(today time.Time) time.Time {
	return today.AddDate(0, 0, -LoanPeriodDays)
}
