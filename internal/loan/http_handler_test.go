package loan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"libraryapi/internal/book"
	"libraryapi/internal/member"
	"libraryapi/internal/platform/clock"
)

func newTestHandler(t *testing.T) (*HTTPHandler, serviceMocks) {
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		store:   NewMockStore(ctrl),
		members: NewMockMemberFinder(ctrl),
		books:   NewMockBookFinder(ctrl),
	}
	now := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)
	svc := NewService(m.store, m.members, m.books, clock.Fixed{T: now})
	return NewHTTPHandler(svc), m
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		handler, m := newTestHandler(t)
		m.members.EXPECT().GetByID(gomock.Any(), int64(1)).Return(member.Member{ID: 1}, nil)
		m.books.EXPECT().GetByID(gomock.Any(), int64(2)).Return(book.Book{ID: 2}, nil)
		m.store.EXPECT().CountActiveByMember(gomock.Any(), int64(1)).Return(0, nil)
		m.store.EXPECT().ExistsActiveByBook(gomock.Any(), int64(2)).Return(false, nil)
		m.store.EXPECT().ExistsOverdueByMember(gomock.Any(), int64(1), gomock.Any()).Return(false, nil)
		m.store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *Loan) error {
			l.ID = 10
			return nil
		})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/loans", strings.NewReader(`{"member_id":1,"book_id":2}`))
		r.Header.Set("Content-Type", "application/json")

		handler.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"loan_date":"2025-03-20"`)
		assert.Contains(t, w.Body.String(), `"due_date":"2025-04-03"`)
		assert.Contains(t, w.Body.String(), `"return_date":null`)
	})

	t.Run("validation error", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/loans", strings.NewReader(`{"member_id":1}`))
		r.Header.Set("Content-Type", "application/json")

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("member not found", func(t *testing.T) {
		handler, m := newTestHandler(t)
		m.members.EXPECT().GetByID(gomock.Any(), int64(99)).Return(member.Member{}, member.ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/loans", strings.NewReader(`{"member_id":99,"book_id":2}`))
		r.Header.Set("Content-Type", "application/json")

		handler.Create(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "MEMBER_NOT_FOUND")
	})

	t.Run("loan limit exceeded", func(t *testing.T) {
		handler, m := newTestHandler(t)
		m.members.EXPECT().GetByID(gomock.Any(), int64(1)).Return(member.Member{ID: 1}, nil)
		m.books.EXPECT().GetByID(gomock.Any(), int64(2)).Return(book.Book{ID: 2}, nil)
		m.store.EXPECT().CountActiveByMember(gomock.Any(), int64(1)).Return(MaxActiveLoans, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/loans", strings.NewReader(`{"member_id":1,"book_id":2}`))
		r.Header.Set("Content-Type", "application/json")

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "LOAN_ERROR")
		assert.Contains(t, w.Body.String(), "at most 3 books")
	})
}

func TestHTTPHandler_Return(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, m := newTestHandler(t)
		m.store.EXPECT().GetByID(gomock.Any(), int64(10)).
			Return(Loan{ID: 10, MemberID: 1, BookID: 2, LoanDate: date(2025, time.March, 12)}, nil)
		m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/loans/10/return", nil)
		r.SetPathValue("id", "10")

		handler.Return(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"return_date":"2025-03-20"`)
	})

	t.Run("already returned", func(t *testing.T) {
		handler, m := newTestHandler(t)
		returned := date(2025, time.March, 15)
		m.store.EXPECT().GetByID(gomock.Any(), int64(10)).
			Return(Loan{ID: 10, LoanDate: date(2025, time.March, 12), ReturnDate: &returned}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/loans/10/return", nil)
		r.SetPathValue("id", "10")

		handler.Return(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})

	t.Run("not found", func(t *testing.T) {
		handler, m := newTestHandler(t)
		m.store.EXPECT().GetByID(gomock.Any(), int64(99)).Return(Loan{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/loans/99/return", nil)
		r.SetPathValue("id", "99")

		handler.Return(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "LOAN_NOT_FOUND")
	})
}

func TestHTTPHandler_ListByMember(t *testing.T) {
	handler, m := newTestHandler(t)
	m.members.EXPECT().GetByID(gomock.Any(), int64(1)).Return(member.Member{ID: 1}, nil)
	m.store.EXPECT().ListByMember(gomock.Any(), int64(1)).Return([]Loan{
		{ID: 1, MemberID: 1, BookID: 2, LoanDate: date(2025, time.March, 1)},
	}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/members/1/loans", nil)
	r.SetPathValue("id", "1")

	handler.ListByMember(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}
