package view

import (
	"context"
	"time"

	"github.com/atinyakov/LocalSites/internal/models"
	"github.com/atinyakov/LocalSites/internal/service"
)

// SimulatedLatency is how long LocalAuthenticator pretends the network takes.
const SimulatedLatency = 1500 * time.Millisecond

// LocalAuthenticator answers login and signup in process after a
// simulated network delay.
type LocalAuthenticator struct {
	Service Authenticator
	Delay   time.Duration
	Clock   Clock
}

// NewLocalAuthenticator wraps the mock auth service with SimulatedLatency
// on the wall clock.
func NewLocalAuthenticator() *LocalAuthenticator {
	return &LocalAuthenticator{
		Service: service.NewAuthService(),
		Delay:   SimulatedLatency,
		Clock:   RealClock{},
	}
}

// Login implements Authenticator.
func (a *LocalAuthenticator) Login(ctx context.Context, req service.LoginRequest) (models.User, error) {
	if err := a.Clock.Sleep(ctx, a.Delay); err != nil {
		return models.User{}, err
	}
	return a.Service.Login(ctx, req)
}

// Signup implements Authenticator.
func (a *LocalAuthenticator) Signup(ctx context.Context, req service.SignupRequest) (models.User, error) {
	if err := a.Clock.Sleep(ctx, a.Delay); err != nil {
		return models.User{}, err
	}
	return a.Service.Signup(ctx, req)
}
