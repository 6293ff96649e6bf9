package view

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atinyakov/LocalSites/internal/client/session"
	"github.com/atinyakov/LocalSites/internal/models"
	"github.com/atinyakov/LocalSites/internal/service"
	"go.uber.org/zap"
)

const (
	// NotificationTTL is how long a notification stays up.
	NotificationTTL = 5 * time.Second
	// DashboardDelay separates a successful signup or template pick from
	// the dashboard opening.
	DashboardDelay = 2 * time.Second
)

// Submit control labels.
const (
	LoginLabel         = "Log In"
	LoginPendingLabel  = "Logging in..."
	SignupLabel        = "Create Account"
	SignupPendingLabel = "Creating Account..."
)

// User-facing messages.
const (
	MsgLoggedIn      = "Welcome back! You are now logged in."
	MsgLoginInvalid  = "Please enter valid credentials."
	MsgSignedUp      = "Account created successfully! Welcome to LocalSites Pro."
	MsgSignupInvalid = "Please fill in all required fields."
	MsgLoggedOut     = "You have been logged out."
	MsgSignupToUse   = "Please create an account to use templates."
	MsgBuilderSoon   = "Website builder coming soon! This is a demo."
	MsgDemoLoading   = "Loading demo video..."
	MsgRequestFailed = "Something went wrong. Please try again."
)

var (
	// ErrSubmitPending is returned when a form is submitted while its
	// previous submission is still in flight. The second submit is ignored.
	ErrSubmitPending = errors.New("submission already in progress")
	// ErrUnknownCategory is returned for a filter category with no filter control.
	ErrUnknownCategory = errors.New("unknown template category")
	// ErrUnknownTemplate is returned for a template id missing from the catalog.
	ErrUnknownTemplate = errors.New("unknown template")
)

// Options configures a Controller. Renderer, Auth and Sessions are
// required.
type Options struct {
	Renderer  Renderer
	Auth      Authenticator
	Sessions  *session.Store
	Clock     Clock
	Logger    *zap.Logger
	Templates []models.Template
}

// Controller is the single source of truth for what the user sees.
// Methods are safe for concurrent use; timer callbacks re-enter through
// the same lock.
type Controller struct {
	r        Renderer
	auth     Authenticator
	sessions *session.Store
	clock    Clock
	log      *zap.Logger

	loginPending  atomic.Bool
	signupPending atomic.Bool

	mu           sync.Mutex
	modal        ModalKind
	dashboard    bool
	demo         bool
	templates    []models.Template
	filters      []models.Category
	activeFilter models.Category
	visible      map[int]bool
	note         *Notification
	noteTimer    Timer
	timers       map[uint64]Timer
	timerSeq     uint64
	closed       bool
}

// New builds a Controller in the logged-out, nothing-open state with the
// "all" filter active. Nothing is rendered until SetTemplates or
// RestoreSession is called.
func New(opts Options) *Controller {
	c := &Controller{
		r:            opts.Renderer,
		auth:         opts.Auth,
		sessions:     opts.Sessions,
		clock:        opts.Clock,
		log:          opts.Logger,
		filters:      append([]models.Category{models.CategoryAll}, models.Categories...),
		activeFilter: models.CategoryAll,
		visible:      make(map[int]bool),
		timers:       make(map[uint64]Timer),
	}
	if c.clock == nil {
		c.clock = RealClock{}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	c.templates = append(c.templates, opts.Templates...)
	return c
}

// Close stops every pending timer. Later timer callbacks are no-ops.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	if c.noteTimer != nil {
		c.noteTimer.Stop()
		c.noteTimer = nil
	}
}

// OpenModal closes any open modal, opens kind and suspends background
// scrolling. ModalNone behaves like CloseModals.
func (c *Controller) OpenModal(kind ModalKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openModalLocked(kind)
}

// CloseModals closes both modals.
func (c *Controller) CloseModals() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeModalsLocked()
}

func (c *Controller) openModalLocked(kind ModalKind) {
	c.closeModalsLocked()
	if kind != ModalLogin && kind != ModalSignup {
		return
	}
	c.modal = kind
	c.r.SetModalVisible(kind, true)
	c.syncScrollLocked()
}

func (c *Controller) closeModalsLocked() {
	c.modal = ModalNone
	c.r.SetModalVisible(ModalLogin, false)
	c.r.SetModalVisible(ModalSignup, false)
	c.syncScrollLocked()
}

// syncScrollLocked suspends scrolling while any modal or overlay is open.
func (c *Controller) syncScrollLocked() {
	c.r.SetScrollLocked(c.modal != ModalNone || c.dashboard || c.demo)
}

// SubmitLogin attempts a login. While the attempt is pending the login
// submit control is disabled and labelled LoginPendingLabel. Validation
// failures are reported through an error notification and returned.
func (c *Controller) SubmitLogin(ctx context.Context, email, password string) error {
	if !c.loginPending.CompareAndSwap(false, true) {
		return ErrSubmitPending
	}
	defer c.loginPending.Store(false)

	c.setSubmitState(ModalLogin, SubmitState{Label: LoginPendingLabel, Disabled: true})
	defer c.setSubmitState(ModalLogin, SubmitState{Label: LoginLabel})

	user, err := c.auth.Login(ctx, service.LoginRequest{Email: email, Password: password})
	if err != nil {
		c.reportSubmitError(err, service.ErrInvalidCredentials, MsgLoginInvalid)
		return err
	}

	c.establish(session.FromUser(user), MsgLoggedIn)
	return nil
}

// SubmitSignup attempts a signup; on success the dashboard opens after
// DashboardDelay.
func (c *Controller) SubmitSignup(ctx context.Context, fullName, email, password, businessType string) error {
	if !c.signupPending.CompareAndSwap(false, true) {
		return ErrSubmitPending
	}
	defer c.signupPending.Store(false)

	c.setSubmitState(ModalSignup, SubmitState{Label: SignupPendingLabel, Disabled: true})
	defer c.setSubmitState(ModalSignup, SubmitState{Label: SignupLabel})

	user, err := c.auth.Signup(ctx, service.SignupRequest{
		FullName:     fullName,
		Email:        email,
		Password:     password,
		BusinessType: businessType,
	})
	if err != nil {
		c.reportSubmitError(err, service.ErrMissingFields, MsgSignupInvalid)
		return err
	}

	c.establish(session.FromUser(user), MsgSignedUp)

	c.mu.Lock()
	c.afterLocked(DashboardDelay, c.ShowDashboard)
	c.mu.Unlock()
	return nil
}

func (c *Controller) setSubmitState(form ModalKind, state SubmitState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.r.SetSubmitState(form, state)
}

func (c *Controller) reportSubmitError(err, validation error, validationMsg string) {
	msg := validationMsg
	if !errors.Is(err, validation) {
		c.log.Warn("auth request failed", zap.Error(err))
		msg = MsgRequestFailed
	}
	c.Notify(msg, KindError)
}

// establish makes sess current, closes the modals and shows the
// logged-in affordances.
func (c *Controller) establish(sess session.Session, msg string) {
	if err := c.sessions.Login(sess); err != nil {
		c.log.Warn("failed to persist session", zap.Error(err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeModalsLocked()
	c.r.SetAuthControls(true)
	c.notifyLocked(msg, KindSuccess)
}

// Logout clears the session and its persisted copy.
func (c *Controller) Logout() {
	if err := c.sessions.Logout(); err != nil {
		c.log.Warn("failed to clear persisted session", zap.Error(err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.r.SetAuthControls(false)
	c.notifyLocked(MsgLoggedOut, KindInfo)
}

// RestoreSession picks up a persisted session at startup and renders the
// matching affordances. Malformed data leaves the user logged out.
func (c *Controller) RestoreSession() (session.Session, bool) {
	sess, ok, err := c.sessions.Restore()
	if err != nil {
		c.log.Warn("failed to discard stale session", zap.Error(err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.r.SetAuthControls(ok)
	return sess, ok
}

// LoginButton handles the navigation's first auth control: the dashboard
// when logged in, the login modal otherwise.
func (c *Controller) LoginButton() {
	if _, ok := c.sessions.Current(); ok {
		c.ShowDashboard()
		return
	}
	c.OpenModal(ModalLogin)
}

// SignupButton handles the navigation's second auth control: logout when
// logged in, the signup modal otherwise.
func (c *Controller) SignupButton() {
	if _, ok := c.sessions.Current(); ok {
		c.Logout()
		return
	}
	c.OpenModal(ModalSignup)
}

// afterLocked schedules f after d and tracks the timer for Close.
func (c *Controller) afterLocked(d time.Duration, f func()) {
	if c.closed {
		return
	}
	c.timerSeq++
	id := c.timerSeq
	c.timers[id] = c.clock.AfterFunc(d, func() {
		c.mu.Lock()
		_, live := c.timers[id]
		delete(c.timers, id)
		c.mu.Unlock()
		if live {
			f()
		}
	})
}

// State is a point-in-time copy of the controller's view state.
type State struct {
	Modal        ModalKind
	Dashboard    bool
	Demo         bool
	ScrollLocked bool
	ActiveFilter models.Category
	// VisibleCards holds the ids of visible template cards in catalog order.
	VisibleCards []int
	Notification *Notification
	Session      *session.Session
}

// State returns a snapshot of the current view state.
func (c *Controller) State() State {
	var st State
	if sess, ok := c.sessions.Current(); ok {
		st.Session = &sess
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	st.Modal = c.modal
	st.Dashboard = c.dashboard
	st.Demo = c.demo
	st.ScrollLocked = c.modal != ModalNone || c.dashboard || c.demo
	st.ActiveFilter = c.activeFilter
	for _, t := range c.templates {
		if c.visible[t.ID] {
			st.VisibleCards = append(st.VisibleCards, t.ID)
		}
	}
	if c.note != nil {
		n := *c.note
		st.Notification = &n
	}
	return st
}
