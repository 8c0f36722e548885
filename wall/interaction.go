package wall

import (
	"math"
	"time"
)

// DragSession tracks one pointer-down to pointer-up sequence
type DragSession struct {
	// Start is when the pointer went down
	Start time.Duration

	// StartPos is where the pointer went down
	StartPos Vec2

	// Target is the slug of the tile under the pointer at press time, empty if none
	Target string
}

// State is the interaction state shared by the input handlers and the frame driver.
// It is only touched from the update goroutine.
type State struct {
	// Velocity is the per-tick scroll delta
	Velocity Vec2

	// Dragging is true between pointer-down and pointer-up
	Dragging bool

	// Drag is the open drag session, nil when idle
	Drag *DragSession

	// Panning drives the bulge towards its maximum
	Panning bool

	// Bulge is the current distortion strength
	Bulge float64

	// InsetShadow is on while the bulge is being driven up
	InsetShadow bool
}

// IsClick reports whether a press that lasted elapsed and travelled from -> to is a click
func IsClick(t Tuning, elapsed time.Duration, from, to Vec2) bool {
	return elapsed < t.ClickMaxDuration &&
		math.Abs(from.X-to.X) <= t.ClickMaxDistance &&
		math.Abs(from.Y-to.Y) <= t.ClickMaxDistance
}

// Controller turns pointer and wheel events into state changes
type Controller struct {
	state   *State
	tuning  Tuning
	onClick func(slug string)
}

// NewController creates a controller mutating state. onClick may be nil.
func NewController(state *State, tuning Tuning, onClick func(slug string)) *Controller {
	return &Controller{
		state:   state,
		tuning:  tuning,
		onClick: onClick,
	}
}

// State returns the state the controller mutates
func (c *Controller) State() *State {
	return c.state
}

// PointerDown starts a drag session. target is the slug under the pointer, or "".
func (c *Controller) PointerDown(at time.Duration, pos Vec2, target string) {
	c.state.Dragging = true
	c.state.Drag = &DragSession{
		Start:    at,
		StartPos: pos,
		Target:   target,
	}
}

// PointerMove sets the velocity from the displacement since pointer-down
func (c *Controller) PointerMove(pos Vec2) {
	if !c.state.Dragging || c.state.Drag == nil {
		return
	}
	delta := pos.Sub(c.state.Drag.StartPos)
	c.state.Velocity = delta.Scale(-1 / c.tuning.DragSensitivity)
}

// TouchMove is PointerMove for touch input. Anything but a single touch is ignored.
func (c *Controller) TouchMove(touches []Vec2) {
	if len(touches) != 1 {
		return
	}
	c.PointerMove(touches[0])
}

// PointerUp closes the drag session and fires the click callback when the
// gesture was a click on a tile. It returns the clicked slug, if any.
func (c *Controller) PointerUp(at time.Duration, pos Vec2) (string, bool) {
	c.state.Dragging = false
	drag := c.state.Drag
	c.state.Drag = nil
	if drag == nil {
		return "", false
	}

	if !IsClick(c.tuning, at-drag.Start, drag.StartPos, pos) || drag.Target == "" {
		return "", false
	}

	if c.onClick != nil {
		c.onClick(drag.Target)
	}
	return drag.Target, true
}

// CancelDrag ends the drag session without classifying it
func (c *Controller) CancelDrag() {
	c.state.Dragging = false
	c.state.Drag = nil
}

// Wheel cancels any drag and sets the velocity from the wheel delta in pixels
func (c *Controller) Wheel(delta Vec2) {
	c.CancelDrag()
	c.state.Velocity = delta.Scale(1 / c.tuning.WheelSensitivity)
}
