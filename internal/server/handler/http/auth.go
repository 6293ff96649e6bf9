package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/atinyakov/LocalSites/internal/models"
	"github.com/atinyakov/LocalSites/internal/service"
)

// AuthService defines the mock authentication operations required by
// the HTTP handlers.
type AuthService interface {
	// Login builds a user from an email and password.
	Login(context.Context, service.LoginRequest) (models.User, error)
	// Signup builds a user from the signup form.
	Signup(context.Context, service.SignupRequest) (models.User, error)
}

// AuthHandler handles HTTP requests for mock login and signup.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// Login handles POST /api/auth/login.
// It expects "email" and "password"; when either is missing it answers
// 400 with success=false.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	const failure = "Invalid credentials"

	var req service.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, failure)
		return
	}

	user, err := h.AuthService.Login(r.Context(), req)
	h.respond(w, user, err, service.ErrInvalidCredentials, failure)
}

// Signup handles POST /api/auth/signup.
// It expects "fullName", "email", "password" and "businessType".
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	const failure = "All fields are required"

	var req service.SignupRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, failure)
		return
	}

	user, err := h.AuthService.Signup(r.Context(), req)
	h.respond(w, user, err, service.ErrMissingFields, failure)
}

func (h *AuthHandler) respond(w http.ResponseWriter, user models.User, err, validationErr error, failure string) {
	switch {
	case errors.Is(err, validationErr):
		writeJSON(w, http.StatusBadRequest, models.AuthResponse{Success: false, Message: failure})
	case err != nil:
		writeFailure(w, http.StatusInternalServerError, genericFailure)
	default:
		writeJSON(w, http.StatusOK, models.AuthResponse{Success: true, User: &user, Token: service.MockToken})
	}
}
