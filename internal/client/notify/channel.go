// Package notify carries the latest operation outcome to whichever view is
// on screen. It holds at most one notification: a new Flash replaces the
// pending one, Clear drops it. Nothing expires on a timer.
package notify

import "sync"

// Severity tags a notification. The set mirrors the alert variants the
// views know how to draw.
type Severity string

const (
	Primary   Severity = "primary"
	Secondary Severity = "secondary"
	Success   Severity = "success"
	Danger    Severity = "danger"
	Warning   Severity = "warning"
	Info      Severity = "info"
	Light     Severity = "light"
	Dark      Severity = "dark"
)

type Notification struct {
	Message  string
	Severity Severity
}

// Flasher is the write side used by services.
type Flasher interface {
	Flash(message string, severity Severity)
}

// Channel is the single-slot notification holder. The zero value is ready to
// use and safe for concurrent use.
type Channel struct {
	mu      sync.Mutex
	current *Notification
}

func NewChannel() *Channel {
	return &Channel{}
}

// Flash overwrites the pending notification.
func (c *Channel) Flash(message string, severity Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = &Notification{Message: message, Severity: severity}
}

// Clear drops the pending notification, if any.
func (c *Channel) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

// Current returns the pending notification without consuming it.
func (c *Channel) Current() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Notification{}, false
	}
	return *c.current, true
}
