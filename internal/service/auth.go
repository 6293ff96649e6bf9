// Package service provides the business logic behind the mock API:
// credential presence checks, template filtering and contact intake.
package service

import (
	"context"
	"errors"

	"github.com/atinyakov/LocalSites/internal/models"
)

// MockToken is handed out on every successful login or signup.
const MockToken = "mock-jwt-token"

var (
	// ErrInvalidCredentials is returned when email or password is missing.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingFields is returned when a signup field is missing.
	ErrMissingFields = errors.New("all fields are required")
)

// LoginRequest is the body of a login attempt.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body of a signup attempt.
type SignupRequest struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessType string `json:"businessType"`
}

// AuthService builds user records from credentials without verifying them.
// It keeps no state between calls.
type AuthService struct{}

// NewAuthService constructs a new AuthService.
func NewAuthService() *AuthService {
	return &AuthService{}
}

// Login returns a starter-plan user named after the local part of the
// email address. Both fields must be non-empty.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	if req.Email == "" || req.Password == "" {
		return models.User{}, ErrInvalidCredentials
	}
	return models.User{
		Email: req.Email,
		Name:  models.NameFromEmail(req.Email),
		Plan:  models.PlanStarter,
	}, nil
}

// Signup returns a trial-plan user. All four fields must be non-empty.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" || req.BusinessType == "" {
		return models.User{}, ErrMissingFields
	}
	return models.User{
		Name:         req.FullName,
		Email:        req.Email,
		BusinessType: req.BusinessType,
		Plan:         models.PlanTrial,
	}, nil
}
