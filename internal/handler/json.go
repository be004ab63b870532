package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotaplan/roster-backend/internal/domain"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// ExceptionResponse is the error body every endpoint returns: the
// message plus the error type it came from.
type ExceptionResponse struct {
	ExceptionMessage string `json:"exceptionMessage"`
	ExceptionClass   string `json:"exceptionClass"`
}

func exceptionClass(err error) string {
	name := fmt.Sprintf("%T", err)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func (h *Handler) writeException(w http.ResponseWriter, r *http.Request, status int, err error) {
	h.writeJSON(w, r, status, ExceptionResponse{
		ExceptionMessage: err.Error(),
		ExceptionClass:   exceptionClass(err),
	})
}

// domainError maps the domain error taxonomy onto status codes:
// missing entities are 404, tenant violations and illegal states 500.
func (h *Handler) domainError(w http.ResponseWriter, r *http.Request, err error) {
	switch err.(type) {
	case *domain.EntityNotFoundError:
		h.writeException(w, r, http.StatusNotFound, err)
	case *domain.TenantMismatchError, *domain.TenantChangeError, *domain.IllegalStateError:
		h.logInternalServerError(r, err)
		h.writeException(w, r, http.StatusInternalServerError, err)
	default:
		h.internalServerError(w, r, err)
	}
}

// BadRequestError wraps malformed request bodies and parameters.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.writeException(w, r, http.StatusBadRequest, &BadRequestError{Message: err.Error()})
		return
	}

	h.writeJSON(w, r, http.StatusBadRequest, ExceptionResponse{
		ExceptionMessage: validationErrors[0].Translate(h.translator),
		ExceptionClass:   exceptionClass(err),
	})
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeException(w, r, http.StatusInternalServerError, err)
}
