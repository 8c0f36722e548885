package wall

import (
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerEvents receives the events listeners produce. Positions are in screen pixels.
type PointerEvents interface {
	PointerDown(at time.Duration, pos Vec2)
	PointerMove(pos Vec2)
	TouchMove(touches []Vec2)
	PointerUp(at time.Duration, pos Vec2)
	CancelDrag()
	Wheel(delta Vec2)
}

// Listener polls one input device once per tick
type Listener interface {
	// Name identifies the listener in logs
	Name() string

	// Poll forwards whatever happened since the last tick
	Poll(now time.Duration, events PointerEvents)
}

// MouseListener turns the left mouse button and cursor into pointer events
type MouseListener struct {
	last    Vec2
	hasLast bool
}

// NewMouseListener creates a mouse listener
func NewMouseListener() *MouseListener {
	return &MouseListener{}
}

func (m *MouseListener) Name() string { return "mouse" }

// Poll reports press, move and release of the left button
func (m *MouseListener) Poll(now time.Duration, events PointerEvents) {
	x, y := ebiten.CursorPosition()
	pos := Vec2{X: float64(x), Y: float64(y)}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		events.PointerDown(now, pos)
	}
	if !m.hasLast || pos != m.last {
		events.PointerMove(pos)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		events.PointerUp(now, pos)
	}

	m.last, m.hasLast = pos, true
}

// TouchListener turns touches into pointer events
type TouchListener struct {
	ids      []ebiten.TouchID
	pressed  []ebiten.TouchID
	released []ebiten.TouchID
	tracked  map[ebiten.TouchID]Vec2
}

// NewTouchListener creates a touch listener
func NewTouchListener() *TouchListener {
	return &TouchListener{
		tracked: make(map[ebiten.TouchID]Vec2),
	}
}

func (t *TouchListener) Name() string { return "touch" }

// Poll reports touch start, move and end. A start always uses the first
// active touch; moves with more than one finger down are passed through so
// the controller can ignore them. Releases of touches never seen are dropped.
func (t *TouchListener) Poll(now time.Duration, events PointerEvents) {
	t.ids = ebiten.AppendTouchIDs(t.ids[:0])
	t.pressed = inpututil.AppendJustPressedTouchIDs(t.pressed[:0])
	t.released = inpututil.AppendJustReleasedTouchIDs(t.released[:0])

	t.step(now, touchFrame{
		active:   t.ids,
		pressed:  len(t.pressed) > 0,
		released: t.released,
		pos:      touchPos,
		lastPos:  prevTouchPos,
	}, events)
}

// touchFrame is the touch input of one tick
type touchFrame struct {
	active   []ebiten.TouchID
	pressed  bool
	released []ebiten.TouchID
	pos      func(ebiten.TouchID) Vec2
	lastPos  func(ebiten.TouchID) Vec2
}

func (t *TouchListener) step(now time.Duration, f touchFrame, events PointerEvents) {
	if f.pressed && len(f.active) > 0 {
		events.PointerDown(now, f.pos(f.active[0]))
	}

	moved := false
	touches := make([]Vec2, 0, len(f.active))
	for _, id := range f.active {
		p := f.pos(id)
		if prev, ok := t.tracked[id]; ok && prev != p {
			moved = true
		}
		t.tracked[id] = p
		touches = append(touches, p)
	}
	if moved {
		events.TouchMove(touches)
	}

	for _, id := range f.released {
		if _, ok := t.tracked[id]; !ok {
			continue
		}
		delete(t.tracked, id)
		events.PointerUp(now, f.lastPos(id))
	}

	// Touches can vanish without a release, e.g. when the OS takes over a gesture
	pruned := false
	for id := range t.tracked {
		if !slices.Contains(f.active, id) {
			delete(t.tracked, id)
			pruned = true
		}
	}
	if pruned && len(f.active) == 0 {
		events.CancelDrag()
	}
}

func touchPos(id ebiten.TouchID) Vec2 {
	x, y := ebiten.TouchPosition(id)
	return Vec2{X: float64(x), Y: float64(y)}
}

func prevTouchPos(id ebiten.TouchID) Vec2 {
	x, y := inpututil.TouchPositionInPreviousTick(id)
	return Vec2{X: float64(x), Y: float64(y)}
}

// WheelListener turns wheel motion into scroll deltas in pixels
type WheelListener struct {
	lineHeight float64
}

// NewWheelListener creates a wheel listener. lineHeight converts one notch to pixels.
func NewWheelListener(lineHeight float64) *WheelListener {
	return &WheelListener{lineHeight: lineHeight}
}

func (w *WheelListener) Name() string { return "wheel" }

// Poll reports the wheel offset since the last tick. Ebitengine reports
// scrolling down as negative, the opposite of a content delta.
func (w *WheelListener) Poll(now time.Duration, events PointerEvents) {
	xoff, yoff := ebiten.Wheel()
	if xoff == 0 && yoff == 0 {
		return
	}
	events.Wheel(Vec2{X: -xoff * w.lineHeight, Y: -yoff * w.lineHeight})
}

// defaultListeners are attached when a wall mounts
func defaultListeners(t Tuning) []Listener {
	return []Listener{
		NewMouseListener(),
		NewTouchListener(),
		NewWheelListener(t.WheelLineHeight),
	}
}
