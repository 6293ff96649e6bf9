package view

import "github.com/google/uuid"

// Notify shows message as the only notification, replacing any current
// one, and dismisses it after NotificationTTL.
func (c *Controller) Notify(message string, kind Kind) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notifyLocked(message, kind)
}

func (c *Controller) notifyLocked(message string, kind Kind) Notification {
	if c.note != nil {
		c.r.DismissNotification(c.note.ID)
		c.note = nil
	}
	if c.noteTimer != nil {
		c.noteTimer.Stop()
		c.noteTimer = nil
	}

	n := Notification{ID: uuid.NewString(), Message: message, Kind: kind}
	c.note = &n
	c.r.ShowNotification(n)

	if !c.closed {
		c.noteTimer = c.clock.AfterFunc(NotificationTTL, func() {
			c.dismiss(n.ID)
		})
	}
	return n
}

// dismiss removes the notification with id if it is still the current one.
func (c *Controller) dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.note == nil || c.note.ID != id {
		return
	}
	c.note = nil
	c.noteTimer = nil
	c.r.DismissNotification(id)
}
