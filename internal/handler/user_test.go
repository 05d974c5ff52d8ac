package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/userhub/internal/model"
	"github.com/userhub/userhub/internal/service"
	"github.com/userhub/userhub/internal/validation"
)

// stubService is a canned-response UserOperations implementation.
type stubService struct {
	user      *model.User
	err       error
	lastName  any
	lastEmail any
	lastID    string
}

func (s *stubService) Create(ctx context.Context, name, email, password any) (*model.User, error) {
	s.lastName = name
	s.lastEmail = email
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubService) Fetch(ctx context.Context, id string) (*model.User, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubService) Delete(ctx context.Context, id string) error {
	s.lastID = id
	return s.err
}

func newTestRouter(svc UserOperations) *chi.Mux {
	h := NewUserHandler(svc, slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil)))
	r := chi.NewRouter()
	r.Post("/users", h.Create)
	r.Get("/users/{id}", h.Get)
	r.Delete("/users/{id}", h.Delete)
	return r
}

func testUser() *model.User {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &model.User{
		ID:        "123e4567-e89b-12d3-a456-426614174000",
		Name:      "John Doe",
		Email:     "john@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateUserSuccess(t *testing.T) {
	svc := &stubService{user: testUser()}
	router := newTestRouter(svc)

	body := `{"name":"John Doe","email":"JOHN@Example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "john@example.com", resp.Data["email"])
	assert.Equal(t, "John Doe", resp.Data["name"])
	assert.Equal(t, "2024-05-01T12:00:00Z", resp.Data["created_at"])
	assert.NotContains(t, resp.Data, "password")
}

func TestCreateUserMalformedJSON(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"name": "John"`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "invalid_json", resp.Error)
}

func TestCreateUserNonObjectBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"array", `[1,2,3]`},
		{"string", `"hello"`},
		{"number", `42`},
		{"null", `null`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			router := newTestRouter(&stubService{})

			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(test.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "invalid_request", resp.Error)
		})
	}
}

func TestGetUserSuccess(t *testing.T) {
	svc := &stubService{user: testUser()}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/users/123e4567-e89b-12d3-a456-426614174000", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", svc.lastID)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
}

func TestDeleteUserSuccess(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/users/123e4567-e89b-12d3-a456-426614174000", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{
			name:       "validation_error",
			err:        &validation.Error{Field: "email", Message: "has an invalid format"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_error",
			wantField:  "email",
		},
		{
			name:       "duplicate_email",
			err:        &service.DuplicateEmailError{Email: "john@example.com"},
			wantStatus: http.StatusConflict,
			wantCode:   "duplicate_email",
			wantField:  "email",
		},
		{
			name:       "user_not_found",
			err:        &service.NotFoundError{ID: "123e4567-e89b-12d3-a456-426614174000"},
			wantStatus: http.StatusNotFound,
			wantCode:   "user_not_found",
		},
		{
			name:       "connection_failure",
			err:        errors.New("fetch user: failed to get user by ID: unable to connect to database: dial tcp: connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "database_unavailable",
		},
		{
			name:       "unclassified",
			err:        errors.New("something exploded"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_server_error",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			status, body := MapError(test.err, "fetch the user")

			assert.Equal(t, test.wantStatus, status)
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, test.wantCode, body.Error)
			assert.Equal(t, test.wantField, body.Field)
			assert.NotEmpty(t, body.Message)
		})
	}
}

// A 500 response names the operation that failed; a 503 carries the
// underlying detail so clients can tell outage from bad input.
func TestMapErrorDetails(t *testing.T) {
	status, body := MapError(errors.New("boom"), "create the user")
	require.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body.Message, "create the user")
	assert.Equal(t, "boom", body.Details)

	status, body = MapError(errors.New("cannot connect to host"), "create the user")
	require.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "cannot connect to host", body.Details)
}

func TestMapErrorNotFoundMessageContainsID(t *testing.T) {
	_, body := MapError(&service.NotFoundError{ID: "123e4567-e89b-12d3-a456-426614174000"}, "fetch the user")
	assert.Contains(t, body.Message, "123e4567-e89b-12d3-a456-426614174000")
}

func TestUserEndpointsMapServiceErrors(t *testing.T) {
	svc := &stubService{err: &service.NotFoundError{ID: "123e4567-e89b-12d3-a456-426614174000"}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/users/123e4567-e89b-12d3-a456-426614174000", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user_not_found", resp.Error)
}
