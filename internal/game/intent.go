// Package game provides movement, the simulation context and the frame loop.
package game

import (
	"time"

	"github.com/samdwyer/consolefps/internal/render"
)

// Intent is a logical control the player can hold.
type Intent int

const (
	IntentTurnLeft Intent = iota
	IntentTurnRight
	IntentForward
	IntentBackward
	IntentToggleMap
	IntentQuit
)

// String returns a human-readable intent name.
func (i Intent) String() string {
	switch i {
	case IntentTurnLeft:
		return "turn_left"
	case IntentTurnRight:
		return "turn_right"
	case IntentForward:
		return "forward"
	case IntentBackward:
		return "backward"
	case IntentToggleMap:
		return "toggle_map"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Clock reports the seconds elapsed since its previous call.
type Clock interface {
	Elapsed() float64
}

// Input reports whether an intent is currently held. It is polled once per frame.
type Input interface {
	Pressed(Intent) bool
}

// Display presents finished frames. Present must not keep the frame after
// returning; the loop overwrites it next tick.
type Display interface {
	Size() (width, height int)
	Present(f *render.Frame) error
}

// SystemClock measures elapsed wall time with the monotonic clock.
type SystemClock struct {
	last time.Time
	now  func() time.Time
}

// NewSystemClock creates a clock whose first Elapsed call measures from now.
func NewSystemClock() *SystemClock {
	return &SystemClock{last: time.Now(), now: time.Now}
}

// Elapsed returns the seconds since the previous call.
func (c *SystemClock) Elapsed() float64 {
	t := c.now()
	dt := t.Sub(c.last).Seconds()
	c.last = t
	return dt
}
