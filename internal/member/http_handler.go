package member

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"libraryapi/internal/httpx"
)

// maxProfileBytes caps profile image uploads.
const maxProfileBytes = 5 << 20

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type registerReq struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type updateNameReq struct {
	Name string `json:"name" validate:"required"`
}

type memberResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ProfileURL string    `json:"profile_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *HTTPHandler) toResponse(r *http.Request, m Member) memberResponse {
	url, err := h.svc.ProfileURL(r.Context(), m)
	if err != nil {
		// A broken presign must not fail the whole read; the record is intact.
		url = ""
	}
	return memberResponse{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		ProfileURL: url,
		CreatedAt:  m.CreatedAt,
	}
}

// Register handles POST /api/members. The body is either plain JSON or a
// multipart form with a "request" JSON part and an optional "file" part
// holding a profile image.
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, file, header, ok := h.decodeRegister(w, r)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	var profile *ProfileUpload
	if file != nil {
		profile = &ProfileUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	}

	m, err := h.svc.Register(r.Context(), req.Name, req.Email, profile)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			httpx.JSONError(w, r, http.StatusConflict, "DUPLICATE_EMAIL", "Email is already registered", nil)
		case errors.Is(err, ErrInvalidInput):
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_INPUT", err.Error(), nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccessCreated(w, r, h.toResponse(r, m))
}

func (h *HTTPHandler) decodeRegister(w http.ResponseWriter, r *http.Request) (registerReq, multipart.File, *multipart.FileHeader, bool) {
	var req registerReq

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxProfileBytes); err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid multipart form", nil)
			return req, nil, nil, false
		}
		if err := json.Unmarshal([]byte(r.FormValue("request")), &req); err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request part", nil)
			return req, nil, nil, false
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return req, nil, nil, true
			}
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid file part", nil)
			return req, nil, nil, false
		}
		return req, file, header, true
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return req, nil, nil, false
	}
	return req, nil, nil, true
}

// Get handles GET /api/members/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	m, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "MEMBER_NOT_FOUND", "Member not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, h.toResponse(r, m), nil)
}

// List handles GET /api/members
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.List(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, h.toResponse(r, m))
	}
	httpx.JSONSuccess(w, r, out, map[string]any{"total": len(out)})
}

// GetByEmail handles GET /api/members/email/{email}
func (h *HTTPHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Email is required", nil)
		return
	}
	m, err := h.svc.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "MEMBER_NOT_FOUND", "Member not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, h.toResponse(r, m), nil)
}

// UpdateName handles PATCH /api/members/{id}/name
func (h *HTTPHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateNameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	m, err := h.svc.UpdateName(r.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "MEMBER_NOT_FOUND", "Member not found", nil)
		case errors.Is(err, ErrInvalidInput):
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_INPUT", err.Error(), nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}
	httpx.JSONSuccess(w, r, h.toResponse(r, m), nil)
}

// Delete handles DELETE /api/members/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "MEMBER_NOT_FOUND", "Member not found", nil)
		case errors.Is(err, ErrHasActiveLoans):
			httpx.JSONError(w, r, http.StatusConflict, "MEMBER_HAS_ACTIVE_LOANS", "Member still has active loans", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid member id", nil)
		return 0, false
	}
	return id, true
}
