package wall

import "math"

// FrameDriver advances momentum, wrapping and the bulge once per tick
type FrameDriver struct {
	geometry Geometry
	tuning   Tuning
}

// NewFrameDriver creates a frame driver for a grid
func NewFrameDriver(geometry Geometry, tuning Tuning) *FrameDriver {
	return &FrameDriver{
		geometry: geometry,
		tuning:   tuning,
	}
}

// Tick runs one frame. It returns true when the tiles moved.
//
// Order matters: the snap-to-zero check runs before the decay, so motion from
// (100, 100) stops on the 45th tick rather than the 44th.
func (d *FrameDriver) Tick(s *State, tiles []Tile) bool {
	d.updateBulge(s)

	if s.Velocity.IsZero() {
		return false
	}

	v := s.Velocity
	pt := d.tuning.PanningThreshold
	s.Panning = !(math.Abs(v.X) < pt && math.Abs(v.Y) < pt)

	st := d.tuning.SnapThreshold
	if math.Abs(v.X) < st && math.Abs(v.Y) < st {
		s.Velocity = Vec2{}
		return false
	}

	s.Velocity = v.Scale(d.tuning.Decay)

	for i := range tiles {
		tiles[i].Pos = d.geometry.WrapPosition(tiles[i].Pos, s.Velocity)
	}
	return true
}

func (d *FrameDriver) updateBulge(s *State) {
	step, top := d.tuning.BulgeStep, d.tuning.BulgeMax

	if s.Panning {
		if s.Bulge < top {
			s.Bulge = math.Min(s.Bulge+step, top)
		}
		s.InsetShadow = true
		return
	}

	if s.Bulge > 0 {
		s.Bulge = math.Max(s.Bulge-step, 0)
	}
	s.InsetShadow = false
}
