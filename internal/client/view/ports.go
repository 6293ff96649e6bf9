// Package view implements the client's view-state controller: which
// modal or overlay is open, which templates are visible, whether the user
// appears logged in, and the current notification. Rendering, timing and
// authentication are reached through small ports so the logic runs the
// same against a terminal, a browser bridge or a test double.
package view

import (
	"context"
	"time"

	"github.com/atinyakov/LocalSites/internal/models"
	"github.com/atinyakov/LocalSites/internal/service"
)

// ModalKind identifies a modal dialog. At most one is open.
type ModalKind string

const (
	ModalNone   ModalKind = ""
	ModalLogin  ModalKind = "login"
	ModalSignup ModalKind = "signup"
)

// OverlayKind identifies a full-screen overlay.
type OverlayKind string

const (
	OverlayDashboard OverlayKind = "dashboard"
	OverlayDemo      OverlayKind = "demo"
)

// Kind is the flavour of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notification is a transient toast.
type Notification struct {
	ID      string
	Message string
	Kind    Kind
}

// SubmitState is how a form's submit control should look.
type SubmitState struct {
	Label    string
	Disabled bool
}

// OverlayAction is a button on an overlay; Event is dispatched when it
// is pressed.
type OverlayAction struct {
	Label string
	Event string
}

// Overlay is the content of a full-screen overlay.
type Overlay struct {
	Kind    OverlayKind
	Title   string
	Body    string
	Actions []OverlayAction
}

// Renderer is the rendering surface driven by the Controller. Calls are
// serialized; implementations must not call back into the Controller.
type Renderer interface {
	SetModalVisible(kind ModalKind, visible bool)
	SetScrollLocked(locked bool)
	// SetAuthControls swaps the navigation between logged-in
	// (Dashboard/Logout) and logged-out (Login/Start Free Trial) affordances.
	SetAuthControls(loggedIn bool)
	SetSubmitState(form ModalKind, state SubmitState)
	SetFilterActive(category models.Category, active bool)
	SetCardVisibility(templateID int, visible bool)
	ShowOverlay(o Overlay)
	HideOverlay(kind OverlayKind)
	ShowNotification(n Notification)
	DismissNotification(id string)
}

// Authenticator resolves login and signup attempts. Both
// *service.AuthService (via LocalAuthenticator) and *api.Client satisfy it.
type Authenticator interface {
	Login(ctx context.Context, req service.LoginRequest) (models.User, error)
	Signup(ctx context.Context, req service.SignupRequest) (models.User, error)
}

// Timer is a pending AfterFunc call.
type Timer interface {
	Stop() bool
}

// Clock abstracts waiting so tests can resolve delays immediately.
type Clock interface {
	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
	// AfterFunc calls f in its own goroutine after d.
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock is the wall-clock Clock.
type RealClock struct{}

// Sleep implements Clock.
func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// AfterFunc implements Clock.
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
