// Package drag turns pointer events on a window's title bar into position
// deltas.
//
// A Tracker holds at most one gesture. The pointer that starts a gesture
// captures it; moves from any other pointer are ignored. Any pointer-up or
// cancel releases the capture, whichever pointer reports it.
package drag

import (
	"errors"

	"github.com/GriffinCanCode/retrodesk/internal/domain/window"
)

var (
	// ErrCaptured is returned when a second pointer tries to start a gesture
	ErrCaptured = errors.New("pointer already captured")
	// ErrNotCaptured is returned when a gesture is ended with none in progress
	ErrNotCaptured = errors.New("pointer not captured")
)

// Point is a pointer location in client coordinates
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Gesture is one press-move-release sequence on a window
type Gesture struct {
	PointerID int
	Handle    window.Handle
	Origin    Point
	Last      Point
}

// Total returns the distance moved since the gesture began
func (g Gesture) Total() window.Vector {
	return window.Vector{X: g.Last.X - g.Origin.X, Y: g.Last.Y - g.Origin.Y}
}

// Tracker tracks the active gesture of one desktop
type Tracker struct {
	active *Gesture
}

// NewTracker creates an idle tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin captures pointerID for a drag of the window h starting at p
func (t *Tracker) Begin(pointerID int, h window.Handle, p Point) error {
	if t.active != nil && t.active.PointerID != pointerID {
		return ErrCaptured
	}

	t.active = &Gesture{
		PointerID: pointerID,
		Handle:    h,
		Origin:    p,
		Last:      p,
	}
	return nil
}

// Move records a new pointer location and returns the delta since the
// previous one. ok is false when pointerID does not hold the capture.
func (t *Tracker) Move(pointerID int, p Point) (h window.Handle, delta window.Vector, ok bool) {
	if t.active == nil || t.active.PointerID != pointerID {
		return window.NoHandle, window.Vector{}, false
	}

	delta = window.Vector{X: p.X - t.active.Last.X, Y: p.Y - t.active.Last.Y}
	t.active.Last = p
	return t.active.Handle, delta, true
}

// End releases the capture and returns the finished gesture. pointerID need
// not be the capturing pointer: a release is never refused.
func (t *Tracker) End(pointerID int) (Gesture, error) {
	if t.active == nil {
		return Gesture{}, ErrNotCaptured
	}

	g := *t.active
	t.active = nil
	return g, nil
}

// Cancel releases any capture
func (t *Tracker) Cancel() {
	t.active = nil
}

// Active reports whether a gesture is in progress
func (t *Tracker) Active() bool {
	return t.active != nil
}

// Current returns the gesture in progress
func (t *Tracker) Current() (Gesture, bool) {
	if t.active == nil {
		return Gesture{}, false
	}
	return *t.active, true
}
