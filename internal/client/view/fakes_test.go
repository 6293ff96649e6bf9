package view

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/atinyakov/LocalSites/internal/client/session"
	"github.com/atinyakov/LocalSites/internal/client/storage"
	"github.com/atinyakov/LocalSites/internal/models"
	"github.com/atinyakov/LocalSites/internal/repository"
	"github.com/atinyakov/LocalSites/internal/service"
	"github.com/stretchr/testify/require"
)

// recordingRenderer keeps the latest state pushed by the controller.
type recordingRenderer struct {
	mu            sync.Mutex
	modals        map[ModalKind]bool
	scrollLocked  bool
	loggedIn      bool
	submits       map[ModalKind][]SubmitState
	filters       map[models.Category]bool
	cards         map[int]bool
	overlays      map[OverlayKind]Overlay
	notifications []Notification
	current       *Notification
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		modals:   make(map[ModalKind]bool),
		submits:  make(map[ModalKind][]SubmitState),
		filters:  make(map[models.Category]bool),
		cards:    make(map[int]bool),
		overlays: make(map[OverlayKind]Overlay),
	}
}

func (r *recordingRenderer) SetModalVisible(kind ModalKind, visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modals[kind] = visible
}

func (r *recordingRenderer) SetScrollLocked(locked bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scrollLocked = locked
}

func (r *recordingRenderer) SetAuthControls(loggedIn bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loggedIn = loggedIn
}

func (r *recordingRenderer) SetSubmitState(form ModalKind, state SubmitState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submits[form] = append(r.submits[form], state)
}

func (r *recordingRenderer) SetFilterActive(category models.Category, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[category] = active
}

func (r *recordingRenderer) SetCardVisibility(id int, visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards[id] = visible
}

func (r *recordingRenderer) ShowOverlay(o Overlay) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overlays[o.Kind] = o
}

func (r *recordingRenderer) HideOverlay(kind OverlayKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.overlays, kind)
}

func (r *recordingRenderer) ShowNotification(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
	r.current = &n
}

func (r *recordingRenderer) DismissNotification(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != nil && r.current.ID == id {
		r.current = nil
	}
}

func (r *recordingRenderer) modalOpen(kind ModalKind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.modals[kind]
}

func (r *recordingRenderer) overlay(kind OverlayKind) (Overlay, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.overlays[kind]
	return o, ok
}

func (r *recordingRenderer) lastNotification() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return Notification{}, false
	}
	return *r.current, true
}

func (r *recordingRenderer) submitHistory(form ModalKind) []SubmitState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SubmitState(nil), r.submits[form]...)
}

func (r *recordingRenderer) visibleCards() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int
	for id, v := range r.cards {
		if v {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func (r *recordingRenderer) activeFilters() []models.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Category
	for c, v := range r.filters {
		if v {
			out = append(out, c)
		}
	}
	return out
}

// manualClock resolves sleeps immediately and fires AfterFunc callbacks
// only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
	slept  []time.Duration
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *manualClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.slept = append(c.slept, d)
	c.mu.Unlock()
	return ctx.Err()
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward by d and runs every callback that became due,
// in deadline order, on the calling goroutine.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

// Pending counts timers that have neither fired nor been stopped.
func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// blockingAuth holds every call until release is closed.
type blockingAuth struct {
	started chan struct{}
	release chan struct{}
	inner   Authenticator
}

func (a *blockingAuth) Login(ctx context.Context, req service.LoginRequest) (models.User, error) {
	a.started <- struct{}{}
	<-a.release
	return a.inner.Login(ctx, req)
}

func (a *blockingAuth) Signup(ctx context.Context, req service.SignupRequest) (models.User, error) {
	a.started <- struct{}{}
	<-a.release
	return a.inner.Signup(ctx, req)
}

type harness struct {
	ctrl     *Controller
	r        *recordingRenderer
	clock    *manualClock
	kv       *storage.LocalStorage
	sessions *session.Store
}

// newHarness builds a controller over the default catalog with an
// in-process authenticator whose delay resolves immediately.
func newHarness(t *testing.T) *harness {
	t.Helper()
	kv := storage.NewLocalStorage("")
	require.NoError(t, kv.Load())
	return newHarnessWith(t, kv, nil)
}

func newHarnessWith(t *testing.T, kv *storage.LocalStorage, auth Authenticator) *harness {
	t.Helper()
	h := &harness{
		r:        newRecordingRenderer(),
		clock:    &manualClock{},
		kv:       kv,
		sessions: session.NewStore(kv),
	}
	if auth == nil {
		auth = &LocalAuthenticator{Service: service.NewAuthService(), Delay: SimulatedLatency, Clock: h.clock}
	}
	h.ctrl = New(Options{
		Renderer:  h.r,
		Auth:      auth,
		Sessions:  h.sessions,
		Clock:     h.clock,
		Templates: repository.DefaultCatalog(),
	})
	h.ctrl.SetTemplates(repository.DefaultCatalog())
	t.Cleanup(h.ctrl.Close)
	return h
}
