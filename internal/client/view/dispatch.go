package view

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/atinyakov/LocalSites/internal/models"
)

// Event names understood by the controller.
const (
	EventOpenLogin      = "open-login"
	EventOpenSignup     = "open-signup"
	EventClose          = "close"
	EventLogin          = "login"
	EventSignup         = "signup"
	EventLogout         = "logout"
	EventLoginButton    = "login-button"
	EventSignupButton   = "signup-button"
	EventFilter         = "filter"
	EventPreview        = "preview"
	EventUse            = "use"
	EventDashboard      = "dashboard"
	EventCloseDashboard = "close-dashboard"
	EventStartBuilding  = "start-building"
	EventDemo           = "demo"
	EventCloseDemo      = "close-demo"
)

var (
	// ErrUnknownEvent is returned by Dispatch for an unregistered event.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrUsage is returned when an event is dispatched with unusable arguments.
	ErrUsage = errors.New("invalid arguments")
)

// HandlerFunc reacts to one event. Args are the event's positional values.
type HandlerFunc func(ctx context.Context, args []string) error

// Dispatcher routes named user events to handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]HandlerFunc)}
}

// Register binds event to h, replacing any previous handler.
func (d *Dispatcher) Register(event string, h HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[event] = h
}

// Dispatch runs the handler registered for event.
func (d *Dispatcher) Dispatch(ctx context.Context, event string, args ...string) error {
	d.mu.RLock()
	h, ok := d.handlers[event]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	return h(ctx, args)
}

// Events lists the registered event names in sorted order.
func (d *Dispatcher) Events() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	events := make([]string, 0, len(d.handlers))
	for e := range d.handlers {
		events = append(events, e)
	}
	slices.Sort(events)
	return events
}

// RegisterHandlers binds every controller event on d.
//
// Argument layout: login takes email and password; signup takes email,
// password, business type and then the full name as the remaining words;
// filter takes a category; preview and use take a template id. Missing
// form fields are passed through empty so the validation message is shown.
func (c *Controller) RegisterHandlers(d *Dispatcher) {
	simple := func(f func()) HandlerFunc {
		return func(context.Context, []string) error {
			f()
			return nil
		}
	}

	d.Register(EventOpenLogin, simple(func() { c.OpenModal(ModalLogin) }))
	d.Register(EventOpenSignup, simple(func() { c.OpenModal(ModalSignup) }))
	d.Register(EventClose, simple(c.CloseModals))
	d.Register(EventLogout, simple(c.Logout))
	d.Register(EventLoginButton, simple(c.LoginButton))
	d.Register(EventSignupButton, simple(c.SignupButton))
	d.Register(EventDashboard, simple(c.ShowDashboard))
	d.Register(EventCloseDashboard, simple(c.CloseDashboard))
	d.Register(EventStartBuilding, simple(c.StartBuilding))
	d.Register(EventDemo, simple(c.ShowDemo))
	d.Register(EventCloseDemo, simple(c.CloseDemo))

	d.Register(EventLogin, func(ctx context.Context, args []string) error {
		return c.SubmitLogin(ctx, argAt(args, 0), argAt(args, 1))
	})
	d.Register(EventSignup, func(ctx context.Context, args []string) error {
		fullName := ""
		if len(args) > 3 {
			fullName = strings.Join(args[3:], " ")
		}
		return c.SubmitSignup(ctx, fullName, argAt(args, 0), argAt(args, 1), argAt(args, 2))
	})
	d.Register(EventFilter, func(_ context.Context, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: filter <category>", ErrUsage)
		}
		return c.FilterTemplates(models.Category(args[0]))
	})
	d.Register(EventPreview, func(_ context.Context, args []string) error {
		id, err := templateID(EventPreview, args)
		if err != nil {
			return err
		}
		return c.PreviewTemplate(id)
	})
	d.Register(EventUse, func(_ context.Context, args []string) error {
		id, err := templateID(EventUse, args)
		if err != nil {
			return err
		}
		return c.UseTemplate(id)
	})
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func templateID(event string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s <id>", ErrUsage, event)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s <id>: %q is not a number", ErrUsage, event, args[0])
	}
	return id, nil
}
