// Package notify sends desktop notifications for action failures.
package notify

import (
	"github.com/gen2brain/beeep"
)

const appName = "deskhop"

// Notifier sends desktop notifications. Delivery failures are ignored;
// notifications are best-effort.
type Notifier struct {
	enabled bool
}

// New creates a Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// Error shows a failure notification.
func (n *Notifier) Error(msg string) {
	n.notify("Error", msg)
}

// Info shows an informational notification.
func (n *Notifier) Info(msg string) {
	n.notify("", msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		return
	}
	if len(message) > 200 {
		message = message[:200] + "..."
	}
	if title != "" {
		_ = beeep.Notify(appName+": "+title, message, "")
	} else {
		_ = beeep.Notify(appName, message, "")
	}
}
