// Package notify surfaces short user-facing status messages as desktop
// notifications. Purely informational; nothing consults the outcome.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

const appName = "Phoenix"

// Notifier sends desktop notifications.
type Notifier struct {
	enabled bool
}

// New creates a Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// SetEnabled turns notifications on or off at runtime.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Summary reports the outcome of a placement pass.
func (n *Notifier) Summary(arrangement string, changed, total int) {
	if changed == 0 {
		n.notify(fmt.Sprintf("%s: all %d windows already in place", arrangement, total))
		return
	}
	n.notify(fmt.Sprintf("%s: moved %d of %d windows", arrangement, changed, total))
}

// NoArrangement reports that no arrangement matched the current topology.
func (n *Notifier) NoArrangement(topology []int) {
	n.notify(fmt.Sprintf("no arrangement matches topology %v", topology))
}

// Error reports a failed pass.
func (n *Notifier) Error(msg string) {
	n.notify(msg)
}

func (n *Notifier) notify(message string) {
	if n == nil || !n.enabled {
		return
	}
	// Notification failures are not critical.
	_ = beeep.Notify(appName, message, "")
}
