package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atinyakov/LocalSites/internal/client/session"
	"github.com/atinyakov/LocalSites/internal/client/storage"
	"github.com/atinyakov/LocalSites/internal/models"
	"github.com/atinyakov/LocalSites/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestController_Modals(t *testing.T) {
	h := newHarness(t)

	h.ctrl.OpenModal(ModalLogin)
	assert.True(t, h.r.modalOpen(ModalLogin))
	assert.False(t, h.r.modalOpen(ModalSignup))
	assert.True(t, h.r.scrollLocked)

	h.ctrl.OpenModal(ModalSignup)
	assert.False(t, h.r.modalOpen(ModalLogin))
	assert.True(t, h.r.modalOpen(ModalSignup))
	assert.Equal(t, ModalSignup, h.ctrl.State().Modal)

	h.ctrl.OpenModal(ModalSignup)
	assert.True(t, h.r.modalOpen(ModalSignup))

	h.ctrl.CloseModals()
	assert.False(t, h.r.modalOpen(ModalLogin))
	assert.False(t, h.r.modalOpen(ModalSignup))
	assert.False(t, h.r.scrollLocked)
	assert.Equal(t, ModalNone, h.ctrl.State().Modal)
}

func TestController_SubmitLogin(t *testing.T) {
	tests := []struct {
		email    string
		wantName string
	}{
		{email: "bob@example.com", wantName: "bob"},
		{email: "a.b+c@d.org", wantName: "a.b+c"},
		{email: "first@second@third", wantName: "first"},
		{email: "no-at-sign", wantName: "no-at-sign"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			h := newHarness(t)
			h.ctrl.OpenModal(ModalLogin)

			require.NoError(t, h.ctrl.SubmitLogin(context.Background(), tt.email, "secret"))

			st := h.ctrl.State()
			require.NotNil(t, st.Session)
			assert.Equal(t, models.PlanStarter, st.Session.Plan)
			assert.Equal(t, tt.wantName, st.Session.Name)
			assert.Equal(t, tt.email, st.Session.Email)
			assert.Equal(t, ModalNone, st.Modal)
			assert.True(t, h.r.loggedIn)

			n, ok := h.r.lastNotification()
			require.True(t, ok)
			assert.Equal(t, MsgLoggedIn, n.Message)
			assert.Equal(t, KindSuccess, n.Kind)

			assert.Equal(t, []SubmitState{
				{Label: LoginPendingLabel, Disabled: true},
				{Label: LoginLabel},
			}, h.r.submitHistory(ModalLogin))
			assert.Equal(t, []time.Duration{SimulatedLatency}, h.clock.slept)

			raw, ok := h.kv.Get(session.KeyLoggedIn)
			require.True(t, ok)
			assert.Equal(t, "true", raw)
		})
	}
}

func TestController_SubmitLoginMissingField(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty password", email: "bob@example.com"},
		{name: "empty email", password: "secret"},
		{name: "both empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.ctrl.OpenModal(ModalLogin)

			err := h.ctrl.SubmitLogin(context.Background(), tt.email, tt.password)
			require.ErrorIs(t, err, service.ErrInvalidCredentials)

			st := h.ctrl.State()
			assert.Nil(t, st.Session)
			assert.Equal(t, ModalLogin, st.Modal)
			assert.False(t, h.r.loggedIn)

			n, ok := h.r.lastNotification()
			require.True(t, ok)
			assert.Equal(t, MsgLoginInvalid, n.Message)
			assert.Equal(t, KindError, n.Kind)

			history := h.r.submitHistory(ModalLogin)
			require.NotEmpty(t, history)
			assert.Equal(t, SubmitState{Label: LoginLabel}, history[len(history)-1])
		})
	}
}

func TestController_SubmitSignup(t *testing.T) {
	h := newHarness(t)
	h.ctrl.OpenModal(ModalSignup)

	require.NoError(t, h.ctrl.SubmitSignup(context.Background(), "Jane Doe", "jane@example.com", "pw", "medical"))

	st := h.ctrl.State()
	require.NotNil(t, st.Session)
	assert.Equal(t, session.Session{
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		Plan:         models.PlanTrial,
		BusinessType: "medical",
	}, *st.Session)
	assert.False(t, st.Dashboard)

	n, _ := h.r.lastNotification()
	assert.Equal(t, MsgSignedUp, n.Message)
	assert.Equal(t, []SubmitState{
		{Label: SignupPendingLabel, Disabled: true},
		{Label: SignupLabel},
	}, h.r.submitHistory(ModalSignup))

	h.clock.Advance(DashboardDelay - 1)
	assert.False(t, h.ctrl.State().Dashboard)

	h.clock.Advance(1)
	assert.True(t, h.ctrl.State().Dashboard)
	o, ok := h.r.overlay(OverlayDashboard)
	require.True(t, ok)
	assert.Equal(t, "Welcome to your Dashboard, Jane Doe!", o.Title)
	assert.True(t, h.r.scrollLocked)
}

func TestController_SubmitSignupMissingField(t *testing.T) {
	h := newHarness(t)

	err := h.ctrl.SubmitSignup(context.Background(), "Jane", "jane@example.com", "pw", "")
	require.ErrorIs(t, err, service.ErrMissingFields)

	assert.Nil(t, h.ctrl.State().Session)
	n, _ := h.r.lastNotification()
	assert.Equal(t, MsgSignupInvalid, n.Message)
	assert.Equal(t, KindError, n.Kind)

	h.clock.Advance(DashboardDelay)
	assert.False(t, h.ctrl.State().Dashboard)
}

func TestController_SubmitAuthFailure(t *testing.T) {
	kv := storage.NewLocalStorage("")
	require.NoError(t, kv.Load())
	h := newHarnessWith(t, kv, failingAuth{err: errors.New("server error: 502 Bad Gateway")})

	err := h.ctrl.SubmitLogin(context.Background(), "bob@example.com", "pw")
	require.Error(t, err)

	n, _ := h.r.lastNotification()
	assert.Equal(t, MsgRequestFailed, n.Message)
	assert.Equal(t, KindError, n.Kind)
	assert.Nil(t, h.ctrl.State().Session)
}

type failingAuth struct{ err error }

func (a failingAuth) Login(context.Context, service.LoginRequest) (models.User, error) {
	return models.User{}, a.err
}

func (a failingAuth) Signup(context.Context, service.SignupRequest) (models.User, error) {
	return models.User{}, a.err
}

func TestController_ConcurrentSubmitIgnored(t *testing.T) {
	kv := storage.NewLocalStorage("")
	require.NoError(t, kv.Load())
	auth := &blockingAuth{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		inner:   service.NewAuthService(),
	}
	h := newHarnessWith(t, kv, auth)

	done := make(chan error, 1)
	go func() {
		done <- h.ctrl.SubmitLogin(context.Background(), "bob@example.com", "pw")
	}()
	<-auth.started

	err := h.ctrl.SubmitLogin(context.Background(), "eve@example.com", "pw")
	require.ErrorIs(t, err, ErrSubmitPending)

	history := h.r.submitHistory(ModalLogin)
	assert.Equal(t, SubmitState{Label: LoginPendingLabel, Disabled: true}, history[len(history)-1])

	close(auth.release)
	require.NoError(t, <-done)

	st := h.ctrl.State()
	require.NotNil(t, st.Session)
	assert.Equal(t, "bob", st.Session.Name)

	require.NoError(t, h.ctrl.SubmitLogin(context.Background(), "bob@example.com", "pw"))
}

func TestController_LogoutThenRestore(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctrl.SubmitLogin(context.Background(), "bob@example.com", "pw"))

	h.ctrl.Logout()
	assert.False(t, h.r.loggedIn)
	n, _ := h.r.lastNotification()
	assert.Equal(t, MsgLoggedOut, n.Message)
	assert.Equal(t, KindInfo, n.Kind)

	reloaded := newHarnessWith(t, h.kv, nil)
	_, ok := reloaded.ctrl.RestoreSession()
	assert.False(t, ok)
	assert.Nil(t, reloaded.ctrl.State().Session)
	assert.False(t, reloaded.r.loggedIn)
}

func TestController_SignupThenRestore(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctrl.SubmitSignup(context.Background(), "Jane Doe", "jane@example.com", "pw", "restaurant"))
	want := h.ctrl.State().Session
	require.NotNil(t, want)

	reloaded := newHarnessWith(t, h.kv, nil)
	got, ok := reloaded.ctrl.RestoreSession()
	require.True(t, ok)
	assert.Equal(t, *want, got)
	assert.True(t, reloaded.r.loggedIn)
}

func TestController_RestoreMalformed(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		loggedIn string
	}{
		{name: "not json", user: "{not json", loggedIn: "true"},
		{name: "missing email", user: `{"name":"x","plan":"trial"}`, loggedIn: "true"},
		{name: "unknown plan", user: `{"name":"x","email":"x@y","plan":"gold"}`, loggedIn: "true"},
		{name: "flag not set", user: `{"name":"x","email":"x@y","plan":"trial"}`, loggedIn: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewLocalStorage("")
			require.NoError(t, kv.Load())
			require.NoError(t, kv.Set(session.KeyUser, tt.user))
			require.NoError(t, kv.Set(session.KeyLoggedIn, tt.loggedIn))

			h := newHarnessWith(t, kv, nil)
			assert.NotPanics(t, func() {
				_, ok := h.ctrl.RestoreSession()
				assert.False(t, ok)
			})
			assert.Nil(t, h.ctrl.State().Session)
			assert.False(t, h.r.loggedIn)
		})
	}
}

type readOnlyKV struct{ err error }

func (readOnlyKV) Get(string) (string, bool)  { return "", false }
func (k readOnlyKV) Set(string, string) error { return k.err }
func (k readOnlyKV) Remove(string) error      { return k.err }

func TestController_RestoreLogsDiscardFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := newRecordingRenderer()
	ctrl := New(Options{
		Renderer: r,
		Auth:     failingAuth{err: errors.New("unused")},
		Sessions: session.NewStore(readOnlyKV{err: errors.New("read-only file system")}),
		Clock:    &manualClock{},
		Logger:   zap.New(core),
	})
	t.Cleanup(ctrl.Close)

	_, ok := ctrl.RestoreSession()
	assert.False(t, ok)
	assert.False(t, r.loggedIn)
	assert.Equal(t, 1, logs.FilterMessage("failed to discard stale session").Len())
}

func TestController_AuthButtons(t *testing.T) {
	h := newHarness(t)

	h.ctrl.LoginButton()
	assert.Equal(t, ModalLogin, h.ctrl.State().Modal)
	h.ctrl.SignupButton()
	assert.Equal(t, ModalSignup, h.ctrl.State().Modal)

	require.NoError(t, h.ctrl.SubmitLogin(context.Background(), "bob@example.com", "pw"))

	h.ctrl.LoginButton()
	assert.True(t, h.ctrl.State().Dashboard)

	h.ctrl.SignupButton()
	assert.Nil(t, h.ctrl.State().Session)
}

func TestController_CloseStopsTimers(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctrl.SubmitSignup(context.Background(), "Jane", "jane@example.com", "pw", "medical"))
	require.Equal(t, 2, h.clock.Pending())

	h.ctrl.Close()
	assert.Equal(t, 0, h.clock.Pending())

	h.clock.Advance(NotificationTTL)
	assert.False(t, h.ctrl.State().Dashboard)
}
