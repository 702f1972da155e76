package loan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"libraryapi/internal/httpx"
)

const dateLayout = "2006-01-02"

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type createReq struct {
	MemberID int64 `json:"member_id" validate:"required,gt=0"`
	BookID   int64 `json:"book_id" validate:"required,gt=0"`
}

type loanResponse struct {
	ID         int64   `json:"id"`
	MemberID   int64   `json:"member_id"`
	BookID     int64   `json:"book_id"`
	LoanDate   string  `json:"loan_date"`
	DueDate    string  `json:"due_date"`
	ReturnDate *string `json:"return_date"`
}

func toResponse(l Loan) loanResponse {
	resp := loanResponse{
		ID:       l.ID,
		MemberID: l.MemberID,
		BookID:   l.BookID,
		LoanDate: l.LoanDate.Format(dateLayout),
		DueDate:  l.DueDate().Format(dateLayout),
	}
	if l.ReturnDate != nil {
		s := l.ReturnDate.Format(dateLayout)
		resp.ReturnDate = &s
	}
	return resp
}

// Create handles POST /api/loans
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	l, err := h.svc.CreateLoan(r.Context(), req.MemberID, req.BookID)
	if err != nil {
		h.writeLoanError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, toResponse(l))
}

// Return handles POST /api/loans/{id}/return
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	l, err := h.svc.ReturnBook(r.Context(), id)
	if err != nil {
		h.writeLoanError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, toResponse(l), nil)
}

// Get handles GET /api/loans/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	l, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.writeLoanError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, toResponse(l), nil)
}

// ListByMember handles GET /api/members/{id}/loans
func (h *HTTPHandler) ListByMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	loans, err := h.svc.ListByMember(r.Context(), id)
	if err != nil {
		h.writeLoanError(w, r, err)
		return
	}
	out := make([]loanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, toResponse(l))
	}
	httpx.JSONSuccess(w, r, out, map[string]any{"total": len(out)})
}

// writeLoanError maps engine errors 1:1 onto transport statuses: not-found
// kinds to 404, business-rule and state kinds to 400.
func (h *HTTPHandler) writeLoanError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrMemberNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "MEMBER_NOT_FOUND", "Member not found", nil)
	case errors.Is(err, ErrBookNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "BOOK_NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "LOAN_NOT_FOUND", "Loan not found", nil)
	case errors.Is(err, ErrLimitExceeded),
		errors.Is(err, ErrBookAlreadyLoaned),
		errors.Is(err, ErrOverdueLoan):
		httpx.JSONError(w, r, http.StatusBadRequest, "LOAN_ERROR", err.Error(), nil)
	case errors.Is(err, ErrAlreadyReturned):
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_STATE", "Loan is already returned", nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid id", nil)
		return 0, false
	}
	return id, true
}
