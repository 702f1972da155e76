package loan

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Constraint names from db/migrations; violations are the last-resort
// conflict detectors when two issuance requests race past the engine's
// optimistic checks.
const (
	activeBookConstraint = "loans_active_book_idx"
	memberCapConstraint  = "loans_member_active_cap"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Loan, error) {
	const query = `
	SELECT id, member_id, book_id, loan_date, return_date
	FROM loans
	WHERE id = $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var l Loan
	err := r.db.QueryRow(timeoutCtx, query, id).
		Scan(&l.ID, &l.MemberID, &l.BookID, &l.LoanDate, &l.ReturnDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Loan{}, ErrNotFound
		}
		return Loan{}, err
	}
	return l, nil
}

func (r *PostgresRepo) CountActiveByMember(ctx context.Context, memberID int64) (int, error) {
	const query = `
	SELECT COUNT(*) FROM loans
	WHERE member_id = $1 AND return_date IS NULL
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var n int
	if err := r.db.QueryRow(timeoutCtx, query, memberID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresRepo) ExistsActiveByBook(ctx context.Context, bookID int64) (bool, error) {
	const query = `
	SELECT EXISTS (
		SELECT 1 FROM loans
		WHERE book_id = $1 AND return_date IS NULL
	)
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var exists bool
	if err := r.db.QueryRow(timeoutCtx, query, bookID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRepo) ExistsOverdueByMember(ctx context.Context, memberID int64, cutoff time.Time) (bool, error) {
	const query = `
	SELECT EXISTS (
		SELECT 1 FROM loans
		WHERE member_id = $1 AND return_date IS NULL AND loan_date < $2
	)
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var exists bool
	if err := r.db.QueryRow(timeoutCtx, query, memberID, cutoff).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRepo) ListByMember(ctx context.Context, memberID int64) ([]Loan, error) {
	const query = `
	SELECT id, member_id, book_id, loan_date, return_date
	FROM loans
	WHERE member_id = $1
	ORDER BY id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []Loan
	for rows.Next() {
		var l Loan
		if err := rows.Scan(&l.ID, &l.MemberID, &l.BookID, &l.LoanDate, &l.ReturnDate); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return loans, nil
}

// Save inserts a new loan or updates the return date of an existing one.
// Constraint violations raised by the schema are translated back into the
// engine's sentinel errors.
func (r *PostgresRepo) Save(ctx context.Context, l *Loan) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	if l.ID == 0 {
		const insert = `
		INSERT INTO loans (member_id, book_id, loan_date)
		VALUES ($1, $2, $3)
		RETURNING id
		`
		err := r.db.QueryRow(timeoutCtx, insert, l.MemberID, l.BookID, l.LoanDate).Scan(&l.ID)
		if err != nil {
			return translateSaveError(err)
		}
		return nil
	}

	const update = `UPDATE loans SET return_date = $2 WHERE id = $1`
	tag, err := r.db.Exec(timeoutCtx, update, l.ID, l.ReturnDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func translateSaveError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == "23505" && pgErr.ConstraintName == activeBookConstraint:
		return ErrBookAlreadyLoaned
	case pgErr.Code == "23514" && pgErr.ConstraintName == memberCapConstraint:
		return ErrLimitExceeded
	case pgErr.Code == "23503" && pgErr.ConstraintName == "loans_member_id_fkey":
		return ErrMemberNotFound
	case pgErr.Code == "23503" && pgErr.ConstraintName == "loans_book_id_fkey":
		return ErrBookNotFound
	}
	return err
}
