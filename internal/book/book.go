package book

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = errors.New("book not found")
	// ErrDuplicateISBN is returned when the ISBN is already registered.
	ErrDuplicateISBN = errors.New("isbn is already registered")
	// ErrInvalidInput wraps field validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrHasLoans is returned when deleting a book that appears in loan
	// records.
	ErrHasLoans = errors.New("book has loan records")
)

const maxDiscountRate = 50

// Book represents a book in the collection. Price is an integer amount in the
// smallest currency unit.
type Book struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	ISBN          string     `json:"isbn,omitempty"`
	Price         int        `json:"price"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// New validates the field invariants and builds a book ready to be persisted.
// ISBN and publishedDate are optional.
func New(title, author, isbn string, price int, publishedDate *time.Time) (Book, error) {
	if err := validateTitle(title); err != nil {
		return Book{}, err
	}
	if err := validateAuthor(author); err != nil {
		return Book{}, err
	}
	if err := validatePrice(price); err != nil {
		return Book{}, err
	}
	return Book{
		Title:         strings.TrimSpace(title),
		Author:        strings.TrimSpace(author),
		ISBN:          strings.TrimSpace(isbn),
		Price:         price,
		PublishedDate: publishedDate,
	}, nil
}

// UpdateInfo changes title and/or price. Nil fields are left untouched.
// Validation runs before any field is mutated.
func (b *Book) UpdateInfo(title *string, price *int) error {
	if title != nil {
		if err := validateTitle(*title); err != nil {
			return err
		}
	}
	if price != nil {
		if err := validatePrice(*price); err != nil {
			return err
		}
	}
	if title != nil {
		b.Title = strings.TrimSpace(*title)
	}
	if price != nil {
		b.Price = *price
	}
	return nil
}

// ApplyDiscount lowers the price by rate percent, truncating toward zero.
// rate must be within [0, 50].
func (b *Book) ApplyDiscount(rate int) error {
	if rate < 0 || rate > maxDiscountRate {
		return fmt.Errorf("%w: discount rate must be between 0 and %d", ErrInvalidInput, maxDiscountRate)
	}
	b.Price = b.Price * (100 - rate) / 100
	return nil
}

// Query defines filters for searching books.
type Query struct {
	Author   string
	Keyword  string // matched against the title
	MinPrice *int
	MaxPrice *int
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return nil
}

func validateAuthor(author string) error {
	if strings.TrimSpace(author) == "" {
		return fmt.Errorf("%w: author is required", ErrInvalidInput)
	}
	return nil
}

func validatePrice(price int) error {
	if price < 0 {
		return fmt.Errorf("%w: price must be zero or positive", ErrInvalidInput)
	}
	return nil
}
