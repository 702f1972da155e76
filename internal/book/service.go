package book

import (
	"context"
	"time"
)

// Service provides book lifecycle logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new book.
func (s *Service) Create(ctx context.Context, title, author, isbn string, price int, publishedDate *time.Time) (Book, error) {
	b, err := New(title, author, isbn, price, publishedDate)
	if err != nil {
		return Book{}, err
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

// Search returns books matching the query filters.
func (s *Service) Search(ctx context.Context, q Query) ([]Book, error) {
	return s.repo.Search(ctx, q)
}

// UpdateInfo changes title and/or price of an existing book.
func (s *Service) UpdateInfo(ctx context.Context, id int64, title *string, price *int) (Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, err
	}
	if err := b.UpdateInfo(title, price); err != nil {
		return Book{}, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// ApplyDiscount lowers the price of an existing book by rate percent.
func (s *Service) ApplyDiscount(ctx context.Context, id int64, rate int) (Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, err
	}
	if err := b.ApplyDiscount(rate); err != nil {
		return Book{}, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
