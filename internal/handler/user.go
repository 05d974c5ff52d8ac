package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/userhub/userhub/internal/model"
	"github.com/userhub/userhub/internal/service"
	"github.com/userhub/userhub/internal/validation"
)

// UserOperations is the service surface consumed by UserHandler.
type UserOperations interface {
	Create(ctx context.Context, name, email, password any) (*model.User, error)
	Fetch(ctx context.Context, id string) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    UserOperations
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc UserOperations, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			h.writeError(w, http.StatusBadRequest, "invalid_request", "request body must be a JSON object")
			return
		}
		h.writeError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return
	}
	if payload == nil {
		// "null" decodes without error but is not an object.
		h.writeError(w, http.StatusBadRequest, "invalid_request", "request body must be a JSON object")
		return
	}

	user, err := h.svc.Create(r.Context(), payload["name"], payload["email"], payload["password"])
	if err != nil {
		h.writeServiceError(w, err, "create the user")
		return
	}

	h.logger.Info("user_created", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, SuccessResponse{
		Status: statusSuccess,
		Data:   toUserData(user),
	})
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.svc.Fetch(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "fetch the user")
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{
		Status: statusSuccess,
		Data:   toUserData(user),
	})
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err, "delete the user")
		return
	}

	h.logger.Info("user_deleted", "user_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps a service error to an HTTP response. op is a short
// description of the attempted operation, embedded in 500 messages.
func (h *UserHandler) writeServiceError(w http.ResponseWriter, err error, op string) {
	status, body := MapError(err, op)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "operation", op, "error", err)
	}
	writeJSON(w, status, body)
}

// MapError translates a service error into an HTTP status and error
// envelope. Classification order matters: the first matching case wins,
// and the mapping is the same regardless of which operation failed.
func MapError(err error, op string) (int, ErrorResponse) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, ErrorResponse{
			Status:  statusError,
			Error:   "validation_error",
			Message: vErr.Error(),
			Field:   vErr.Field,
		}
	}

	var dupErr *service.DuplicateEmailError
	if errors.As(err, &dupErr) {
		return http.StatusConflict, ErrorResponse{
			Status:  statusError,
			Error:   "duplicate_email",
			Message: dupErr.Error(),
			Field:   "email",
		}
	}

	var nfErr *service.NotFoundError
	if errors.As(err, &nfErr) {
		return http.StatusNotFound, ErrorResponse{
			Status:  statusError,
			Error:   "user_not_found",
			Message: nfErr.Error(),
		}
	}

	if strings.Contains(err.Error(), "connect") {
		return http.StatusServiceUnavailable, ErrorResponse{
			Status:  statusError,
			Error:   "database_unavailable",
			Message: "the database is temporarily unavailable, please retry later",
			Details: err.Error(),
		}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Status:  statusError,
		Error:   "internal_server_error",
		Message: fmt.Sprintf("an unexpected error occurred while trying to %s", op),
		Details: err.Error(),
	}
}

// writeError writes an error envelope that did not originate in the service.
func (h *UserHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Status:  statusError,
		Error:   code,
		Message: message,
	})
}
