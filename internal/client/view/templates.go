package view

import (
	"fmt"
	"slices"

	"github.com/atinyakov/LocalSites/internal/models"
)

// SetTemplates replaces the catalog shown by the controller and renders
// the filter controls and card visibility for the active filter.
func (c *Controller) SetTemplates(templates []models.Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.visible {
		c.r.SetCardVisibility(id, false)
	}
	clear(c.visible)
	c.templates = append(c.templates[:0], templates...)
	c.applyFilterLocked(c.activeFilter)
}

// Templates returns a copy of the catalog.
func (c *Controller) Templates() []models.Template {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.templates)
}

// FilterTemplates makes category the only active filter control and shows
// exactly the cards it matches. Unknown categories change nothing.
func (c *Controller) FilterTemplates(category models.Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !slices.Contains(c.filters, category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	c.applyFilterLocked(category)
	return nil
}

func (c *Controller) applyFilterLocked(category models.Category) {
	c.activeFilter = category
	for _, f := range c.filters {
		c.r.SetFilterActive(f, f == category)
	}
	for _, t := range c.templates {
		show := category.Matches(t.Category)
		c.visible[t.ID] = show
		c.r.SetCardVisibility(t.ID, show)
	}
}

func (c *Controller) templateLocked(id int) (models.Template, bool) {
	for _, t := range c.templates {
		if t.ID == id {
			return t, true
		}
	}
	return models.Template{}, false
}

// PreviewTemplate announces a preview of the template.
func (c *Controller) PreviewTemplate(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.templateLocked(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTemplate, id)
	}
	c.notifyLocked(fmt.Sprintf("Opening preview for %s...", t.Name), KindInfo)
	return nil
}

// UseTemplate starts setting up the template for the logged-in user and
// opens the dashboard after DashboardDelay. Logged-out users are sent to
// the signup modal instead.
func (c *Controller) UseTemplate(id int) error {
	_, loggedIn := c.sessions.Current()

	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.templateLocked(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTemplate, id)
	}
	if !loggedIn {
		c.openModalLocked(ModalSignup)
		c.notifyLocked(MsgSignupToUse, KindInfo)
		return nil
	}
	c.notifyLocked(fmt.Sprintf("Setting up %s for your business...", t.Name), KindSuccess)
	c.afterLocked(DashboardDelay, c.ShowDashboard)
	return nil
}
