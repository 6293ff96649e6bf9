package view

import "fmt"

// Dashboard overlay content.
const (
	DashboardBody       = "This is where you would manage your websites and templates."
	DashboardCloseLabel = "Close Dashboard"
	DashboardBuildLabel = "Start Building"
	DemoTitle           = "Demo Video"
	DemoBody            = "Demo video would play here"
	DemoCloseLabel      = "Close Demo"
)

// ShowDashboard opens the dashboard overlay for the logged-in user. Without
// a session the login modal opens instead.
func (c *Controller) ShowDashboard() {
	sess, ok := c.sessions.Current()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !ok {
		c.openModalLocked(ModalLogin)
		return
	}
	c.dashboard = true
	c.r.ShowOverlay(Overlay{
		Kind:  OverlayDashboard,
		Title: fmt.Sprintf("Welcome to your Dashboard, %s!", sess.Name),
		Body:  DashboardBody,
		Actions: []OverlayAction{
			{Label: DashboardCloseLabel, Event: EventCloseDashboard},
			{Label: DashboardBuildLabel, Event: EventStartBuilding},
		},
	})
	c.syncScrollLocked()
}

// CloseDashboard removes the dashboard overlay.
func (c *Controller) CloseDashboard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeOverlayLocked(OverlayDashboard)
}

// StartBuilding closes the dashboard and announces the builder.
func (c *Controller) StartBuilding() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeOverlayLocked(OverlayDashboard)
	c.notifyLocked(MsgBuilderSoon, KindInfo)
}

// ShowDemo opens the demo overlay.
func (c *Controller) ShowDemo() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifyLocked(MsgDemoLoading, KindInfo)
	c.demo = true
	c.r.ShowOverlay(Overlay{
		Kind:    OverlayDemo,
		Title:   DemoTitle,
		Body:    DemoBody,
		Actions: []OverlayAction{{Label: DemoCloseLabel, Event: EventCloseDemo}},
	})
	c.syncScrollLocked()
}

// CloseDemo removes the demo overlay.
func (c *Controller) CloseDemo() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeOverlayLocked(OverlayDemo)
}

func (c *Controller) closeOverlayLocked(kind OverlayKind) {
	switch kind {
	case OverlayDashboard:
		if !c.dashboard {
			return
		}
		c.dashboard = false
	case OverlayDemo:
		if !c.demo {
			return
		}
		c.demo = false
	}
	c.r.HideOverlay(kind)
	c.syncScrollLocked()
}
