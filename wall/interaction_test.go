package wall

import (
	"testing"
	"time"
)

type clickRecorder struct {
	slugs []string
}

func (r *clickRecorder) onClick(slug string) {
	r.slugs = append(r.slugs, slug)
}

func newTestController() (*Controller, *clickRecorder) {
	rec := &clickRecorder{}
	return NewController(&State{}, DefaultTuning(), rec.onClick), rec
}

func TestIsClick(t *testing.T) {
	tuning := DefaultTuning()
	start := Vec2{100, 100}

	tests := []struct {
		name    string
		elapsed time.Duration
		to      Vec2
		want    bool
	}{
		{"still press", 150 * time.Millisecond, Vec2{100, 100}, true},
		{"one pixel jitter", 150 * time.Millisecond, Vec2{100, 101}, true},
		{"diagonal jitter", 10 * time.Millisecond, Vec2{99, 101}, true},
		{"drag", 150 * time.Millisecond, Vec2{150, 100}, false},
		{"two pixels", 150 * time.Millisecond, Vec2{100, 102}, false},
		{"long press", 200 * time.Millisecond, Vec2{100, 100}, false},
		{"just in time", 199 * time.Millisecond, Vec2{100, 100}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsClick(tuning, tt.elapsed, start, tt.to); got != tt.want {
				t.Errorf("IsClick(%v, %v) = %v, want %v", tt.elapsed, tt.to, got, tt.want)
			}
		})
	}
}

func TestControllerClick(t *testing.T) {
	c, rec := newTestController()

	c.PointerDown(0, Vec2{100, 100}, "alpha")
	if !c.State().Dragging || c.State().Drag == nil {
		t.Fatal("pointer down did not start a drag session")
	}

	slug, ok := c.PointerUp(150*time.Millisecond, Vec2{100, 101})
	if !ok || slug != "alpha" {
		t.Fatalf("PointerUp = %q, %v, want alpha, true", slug, ok)
	}
	if len(rec.slugs) != 1 || rec.slugs[0] != "alpha" {
		t.Errorf("callback got %v, want [alpha]", rec.slugs)
	}
	if c.State().Dragging || c.State().Drag != nil {
		t.Error("pointer up left the drag session open")
	}
}

func TestControllerDragIsNotClick(t *testing.T) {
	c, rec := newTestController()

	c.PointerDown(0, Vec2{100, 100}, "alpha")
	c.PointerMove(Vec2{150, 100})
	if _, ok := c.PointerUp(150*time.Millisecond, Vec2{150, 100}); ok {
		t.Error("drag classified as click")
	}
	if len(rec.slugs) != 0 {
		t.Errorf("callback fired for a drag: %v", rec.slugs)
	}
}

func TestControllerClickOutsideTiles(t *testing.T) {
	c, rec := newTestController()

	c.PointerDown(0, Vec2{5, 5}, "")
	if _, ok := c.PointerUp(20*time.Millisecond, Vec2{5, 5}); ok {
		t.Error("click without target reported")
	}
	if len(rec.slugs) != 0 {
		t.Errorf("callback fired without target: %v", rec.slugs)
	}
}

func TestControllerPointerUpWithoutDown(t *testing.T) {
	c, rec := newTestController()

	if _, ok := c.PointerUp(time.Second, Vec2{1, 1}); ok {
		t.Error("pointer up without session reported a click")
	}
	if len(rec.slugs) != 0 || c.State().Dragging {
		t.Error("pointer up without session changed state")
	}
}

func TestControllerPointerMove(t *testing.T) {
	c, _ := newTestController()

	c.PointerMove(Vec2{500, 500})
	if !c.State().Velocity.IsZero() {
		t.Errorf("move while idle set velocity %v", c.State().Velocity)
	}

	c.PointerDown(0, Vec2{100, 100}, "")
	c.PointerMove(Vec2{170, 30})
	if got := c.State().Velocity; !approx(got.X, -10) || !approx(got.Y, 10) {
		t.Errorf("velocity = %v, want {-10 10}", got)
	}
}

func TestControllerTouchMove(t *testing.T) {
	c, _ := newTestController()
	c.PointerDown(0, Vec2{100, 100}, "")

	c.TouchMove([]Vec2{{170, 100}, {300, 300}})
	if !c.State().Velocity.IsZero() {
		t.Errorf("multi-touch move set velocity %v", c.State().Velocity)
	}

	c.TouchMove(nil)
	if !c.State().Velocity.IsZero() {
		t.Errorf("empty touch move set velocity %v", c.State().Velocity)
	}

	c.TouchMove([]Vec2{{170, 100}})
	if got := c.State().Velocity; !approx(got.X, -10) || got.Y != 0 {
		t.Errorf("velocity = %v, want {-10 0}", got)
	}
}

func TestControllerWheelCancelsDrag(t *testing.T) {
	c, rec := newTestController()

	c.PointerDown(0, Vec2{100, 100}, "alpha")
	c.Wheel(Vec2{70, -140})

	s := c.State()
	if s.Dragging || s.Drag != nil {
		t.Error("wheel did not cancel the drag")
	}
	if !approx(s.Velocity.X, 10) || !approx(s.Velocity.Y, -20) {
		t.Errorf("velocity = %v, want {10 -20}", s.Velocity)
	}

	if _, ok := c.PointerUp(50*time.Millisecond, Vec2{100, 100}); ok {
		t.Error("pointer up after wheel reported a click")
	}
	if len(rec.slugs) != 0 {
		t.Errorf("callback fired after wheel: %v", rec.slugs)
	}
}

func TestControllerCancelDrag(t *testing.T) {
	c, _ := newTestController()
	c.PointerDown(0, Vec2{1, 1}, "alpha")
	c.CancelDrag()
	c.CancelDrag()
	if c.State().Dragging || c.State().Drag != nil {
		t.Error("CancelDrag left the session open")
	}
}

func TestControllerNilCallback(t *testing.T) {
	c := NewController(&State{}, DefaultTuning(), nil)
	c.PointerDown(0, Vec2{1, 1}, "alpha")
	if slug, ok := c.PointerUp(time.Millisecond, Vec2{1, 1}); !ok || slug != "alpha" {
		t.Errorf("PointerUp = %q, %v, want alpha, true", slug, ok)
	}
}
