package wall

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// eventLog records pointer events as short strings
type eventLog struct {
	events []string
}

func (l *eventLog) PointerDown(at time.Duration, pos Vec2) {
	l.events = append(l.events, fmt.Sprintf("down %v,%v", pos.X, pos.Y))
}

func (l *eventLog) PointerMove(pos Vec2) {
	l.events = append(l.events, fmt.Sprintf("move %v,%v", pos.X, pos.Y))
}

func (l *eventLog) TouchMove(touches []Vec2) {
	l.events = append(l.events, fmt.Sprintf("touchmove %d", len(touches)))
}

func (l *eventLog) PointerUp(at time.Duration, pos Vec2) {
	l.events = append(l.events, fmt.Sprintf("up %v,%v", pos.X, pos.Y))
}

func (l *eventLog) CancelDrag() { l.events = append(l.events, "cancel") }

func (l *eventLog) Wheel(delta Vec2) {
	l.events = append(l.events, fmt.Sprintf("wheel %v,%v", delta.X, delta.Y))
}

func (l *eventLog) String() string { return strings.Join(l.events, "; ") }

// fixedTouches serves positions from a map for both the current and previous tick
func fixedTouches(positions map[ebiten.TouchID]Vec2) func(ebiten.TouchID) Vec2 {
	return func(id ebiten.TouchID) Vec2 { return positions[id] }
}

// touchTick describes one tick of input; moveBy shifts every touch right first
type touchTick struct {
	active   []ebiten.TouchID
	pressed  bool
	released []ebiten.TouchID
	moveBy   float64
}

func TestTouchListenerStep(t *testing.T) {
	tests := []struct {
		name   string
		frames []touchTick
		want   string
		left   int
	}{
		{
			name: "press",
			frames: []touchTick{
				{active: []ebiten.TouchID{1}, pressed: true},
			},
			want: "down 10,10",
			left: 1,
		},
		{
			name: "press then move",
			frames: []touchTick{
				{active: []ebiten.TouchID{1}, pressed: true},
				{active: []ebiten.TouchID{1}, moveBy: 5},
			},
			want: "down 10,10; touchmove 1",
			left: 1,
		},
		{
			name: "press then release",
			frames: []touchTick{
				{active: []ebiten.TouchID{1}, pressed: true},
				{released: []ebiten.TouchID{1}},
			},
			want: "down 10,10; up 10,10",
			left: 0,
		},
		{
			name: "release of unseen touch",
			frames: []touchTick{
				{released: []ebiten.TouchID{7}},
			},
			want: "",
			left: 0,
		},
		{
			name: "touch vanishes without release",
			frames: []touchTick{
				{active: []ebiten.TouchID{1}, pressed: true},
				{},
			},
			want: "down 10,10; cancel",
			left: 0,
		},
		{
			name: "one of two touches vanishes",
			frames: []touchTick{
				{active: []ebiten.TouchID{1, 2}, pressed: true},
				{active: []ebiten.TouchID{2}},
			},
			want: "down 10,10",
			left: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewTouchListener()
			rec := &eventLog{}
			positions := map[ebiten.TouchID]Vec2{
				1: {X: 10, Y: 10},
				2: {X: 40, Y: 40},
			}
			for i, tick := range tt.frames {
				for id, p := range positions {
					positions[id] = Vec2{X: p.X + tick.moveBy, Y: p.Y}
				}
				f := touchFrame{
					active:   tick.active,
					pressed:  tick.pressed,
					released: tick.released,
					pos:      fixedTouches(positions),
				}
				f.lastPos = f.pos
				l.step(time.Duration(i)*time.Millisecond, f, rec)
			}
			if got := rec.String(); got != tt.want {
				t.Errorf("events = %q, want %q", got, tt.want)
			}
			if len(l.tracked) != tt.left {
				t.Errorf("tracked %d touches, want %d", len(l.tracked), tt.left)
			}
		})
	}
}
