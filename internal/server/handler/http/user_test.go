package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Kennygunderman/state-of-health-be/internal/middleware"
	"github.com/Kennygunderman/state-of-health-be/internal/models"
)

// fakeUserService implements UserService for testing.
type fakeUserService struct {
	createErr error
}

func (f *fakeUserService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if f.createErr != nil {
		return models.User{}, f.createErr
	}
	return user, nil
}

func newTestRouter(users UserService, workouts WorkoutService, exercises ExerciseService) http.Handler {
	return NewRouter(
		&UserHandler{UserService: users},
		&WorkoutHandler{WorkoutService: workouts},
		&ExerciseHandler{ExerciseService: exercises},
		middleware.HeaderAuth,
		zap.NewNop(),
	)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeUserService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			service:        &fakeUserService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid body",
		},
		{
			name:           "missing user id",
			body:           `{"email":"a@b.com"}`,
			service:        &fakeUserService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "User ID is required",
		},
		{
			name:           "missing email",
			body:           `{"userId":"uid-1"}`,
			service:        &fakeUserService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "Email is required",
		},
		{
			name:           "malformed email",
			body:           `{"userId":"uid-1","email":"not-an-email"}`,
			service:        &fakeUserService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "Invalid email format",
		},
		{
			name:           "duplicate id",
			body:           `{"userId":"uid-1","email":"a@b.com"}`,
			service:        &fakeUserService{createErr: models.ErrUserExists},
			expectedCode:   http.StatusConflict,
			expectedSubstr: "user already exists",
		},
		{
			name:           "duplicate email",
			body:           `{"userId":"uid-1","email":"a@b.com"}`,
			service:        &fakeUserService{createErr: models.ErrEmailExists},
			expectedCode:   http.StatusConflict,
			expectedSubstr: "email already exists",
		},
		{
			name:           "success",
			body:           `{"userId":"uid-1","email":"a@b.com","firstName":"Kenny"}`,
			service:        &fakeUserService{},
			expectedCode:   http.StatusCreated,
			expectedSubstr: `"email":"a@b.com"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.service, nil, nil)
			rr := doJSON(t, router, http.MethodPost, "/api/user", tt.body)

			if rr.Code != tt.expectedCode {
				t.Errorf("status = %d; want %d", rr.Code, tt.expectedCode)
			}
			if !strings.Contains(rr.Body.String(), tt.expectedSubstr) {
				t.Errorf("body = %q; want substring %q", rr.Body.String(), tt.expectedSubstr)
			}
		})
	}
}

func TestCreateUser_IsPublic(t *testing.T) {
	router := newTestRouter(&fakeUserService{}, nil, nil)

	// No X-User-Id header: the route must still be reachable.
	req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewBufferString(`{"userId":"uid-1","email":"a@b.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d; want %d", rr.Code, http.StatusCreated)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeUserService{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d; want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "ok") {
		t.Errorf("body = %q; want substring %q", rr.Body.String(), "ok")
	}
}
