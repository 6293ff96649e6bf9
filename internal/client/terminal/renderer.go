// Package terminal is the text front end of the client: a Renderer that
// prints controller state changes and a Shell that turns typed commands
// into controller events.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/atinyakov/LocalSites/internal/client/view"
	"github.com/atinyakov/LocalSites/internal/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#2563eb")
	colorSuccess = lipgloss.Color("#10b981")
	colorError   = lipgloss.Color("#ef4444")
	colorInfo    = lipgloss.Color("#3b82f6")
	colorMuted   = lipgloss.Color("#6b7280")
)

// Styles groups the lipgloss styles used by the Renderer.
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Nav     lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Overlay lipgloss.Style
	Card    lipgloss.Style
}

// NewStyles builds the styles against lr so colour support follows the
// output the renderer writes to.
func NewStyles(lr *lipgloss.Renderer) Styles {
	return Styles{
		Title: lr.NewStyle().
			Foreground(colorPrimary).
			Bold(true),
		Muted: lr.NewStyle().
			Foreground(colorMuted),
		Nav: lr.NewStyle().
			Foreground(colorPrimary),
		Success: lr.NewStyle().
			Foreground(colorSuccess).
			Bold(true),
		Error: lr.NewStyle().
			Foreground(colorError).
			Bold(true),
		Info: lr.NewStyle().
			Foreground(colorInfo),
		Overlay: lr.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary),
		Card: lr.NewStyle().
			PaddingLeft(2),
	}
}

// Renderer prints view changes to an io.Writer. It only reports
// transitions, so repeated identical updates stay quiet.
type Renderer struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles

	modals     map[view.ModalKind]bool
	loggedIn   *bool
	filter     models.Category
	cards      map[int]bool
	catalog    []models.Template
	cardsDirty bool
}

// NewRenderer returns a Renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:    out,
		styles: NewStyles(lipgloss.NewRenderer(out)),
		modals: make(map[view.ModalKind]bool),
		filter: models.CategoryAll,
		cards:  make(map[int]bool),
	}
}

var _ view.Renderer = (*Renderer)(nil)

// SetCatalog tells the renderer how to describe template cards.
func (r *Renderer) SetCatalog(templates []models.Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalog = append(r.catalog[:0], templates...)
	r.cardsDirty = true
}

// Println writes a plain line, serialized with the renderer's own output.
func (r *Renderer) Println(a ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, a...)
}

// Print writes text without a trailing newline.
func (r *Renderer) Print(a ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.out, a...)
}

func (r *Renderer) line(s string) {
	fmt.Fprintln(r.out, s)
}

// SetModalVisible implements view.Renderer.
func (r *Renderer) SetModalVisible(kind view.ModalKind, visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.modals[kind] == visible {
		return
	}
	r.modals[kind] = visible
	if !visible {
		return
	}
	switch kind {
	case view.ModalLogin:
		r.line(r.styles.Title.Render("Log In"))
		r.line(r.styles.Muted.Render("  login <email> <password>    close to cancel"))
	case view.ModalSignup:
		r.line(r.styles.Title.Render("Start Your Free Trial"))
		r.line(r.styles.Muted.Render("  signup <email> <password> <business-type> <full name>    close to cancel"))
	}
}

// SetScrollLocked implements view.Renderer. A terminal has no background
// page to lock.
func (r *Renderer) SetScrollLocked(bool) {}

// SetAuthControls implements view.Renderer.
func (r *Renderer) SetAuthControls(loggedIn bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loggedIn != nil && *r.loggedIn == loggedIn {
		return
	}
	r.loggedIn = &loggedIn
	if loggedIn {
		r.line(r.styles.Nav.Render("[Dashboard] [Logout]"))
		return
	}
	r.line(r.styles.Nav.Render("[Login] [Start Free Trial]"))
}

// SetSubmitState implements view.Renderer.
func (r *Renderer) SetSubmitState(_ view.ModalKind, state view.SubmitState) {
	if !state.Disabled {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.line(r.styles.Muted.Render(state.Label))
}

// SetFilterActive implements view.Renderer.
func (r *Renderer) SetFilterActive(category models.Category, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if active && r.filter != category {
		r.filter = category
		r.cardsDirty = true
	}
}

// SetCardVisibility implements view.Renderer.
func (r *Renderer) SetCardVisibility(id int, visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cards[id] != visible {
		r.cards[id] = visible
		r.cardsDirty = true
	}
}

// ShowOverlay implements view.Renderer.
func (r *Renderer) ShowOverlay(o view.Overlay) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	b.WriteString(r.styles.Title.Render(o.Title))
	b.WriteString("\n")
	b.WriteString(o.Body)
	if len(o.Actions) > 0 {
		b.WriteString("\n\n")
		actions := make([]string, 0, len(o.Actions))
		for _, a := range o.Actions {
			actions = append(actions, fmt.Sprintf("[%s] %s", a.Label, r.styles.Muted.Render(a.Event)))
		}
		b.WriteString(strings.Join(actions, "  "))
	}
	r.line(r.styles.Overlay.Render(b.String()))
}

// HideOverlay implements view.Renderer.
func (r *Renderer) HideOverlay(kind view.OverlayKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.line(r.styles.Muted.Render(fmt.Sprintf("(%s closed)", kind)))
}

// ShowNotification implements view.Renderer.
func (r *Renderer) ShowNotification(n view.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	style := r.styles.Info
	switch n.Kind {
	case view.KindSuccess:
		style = r.styles.Success
	case view.KindError:
		style = r.styles.Error
	}
	r.line(style.Render("» " + n.Message))
}

// DismissNotification implements view.Renderer. Printed notifications
// scroll away on their own.
func (r *Renderer) DismissNotification(string) {}

// Flush prints the visible template cards if they changed since the
// last Flush.
func (r *Renderer) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.cardsDirty {
		return
	}
	r.cardsDirty = false
	r.printCardsLocked()
}

// PrintCards prints the visible template cards.
func (r *Renderer) PrintCards() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cardsDirty = false
	r.printCardsLocked()
}

func (r *Renderer) printCardsLocked() {
	r.line(r.styles.Title.Render(fmt.Sprintf("Templates (%s)", r.filter)))
	shown := 0
	for _, t := range r.catalog {
		if !r.cards[t.ID] {
			continue
		}
		shown++
		r.line(r.styles.Card.Render(fmt.Sprintf("#%d %s [%s] %s", t.ID, t.Name, t.Category, r.styles.Muted.Render(t.Description))))
	}
	if shown == 0 {
		r.line(r.styles.Card.Render(r.styles.Muted.Render("no templates in this category")))
	}
}
