package http

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/Kennygunderman/state-of-health-be/internal/models"
)

// emailRe checks the basic local@domain.tld shape. Anything beyond
// shape (case sensitivity, deliverability) is the store's concern.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserService defines the user operations required by the UserHandler.
type UserService interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
}

// UserHandler handles HTTP requests for user provisioning.
type UserHandler struct {
	UserService UserService
}

// CreateUserRequest is the JSON payload for user creation. The user id
// is the identity provider's stable identifier, supplied by the client
// after sign-up.
type CreateUserRequest struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// CreateUser handles POST /api/user. Required fields and email shape
// are validated here so services never see malformed input.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid body")
		return
	}
	if req.UserID == "" {
		writeValidationError(w, "User ID is required")
		return
	}
	if req.Email == "" {
		writeValidationError(w, "Email is required")
		return
	}
	if !emailRe.MatchString(req.Email) {
		writeValidationError(w, "Invalid email format")
		return
	}

	user, err := h.UserService.CreateUser(r.Context(), models.User{
		ID:        req.UserID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}
