package wall

import (
	"fmt"
	"image/color"
	"time"
)

// Tuning holds the constants driving panning, momentum and the bulge effect
type Tuning struct {
	// DragSensitivity divides the pointer displacement to get the velocity
	DragSensitivity float64 `toml:"drag_sensitivity"`

	// WheelSensitivity divides the wheel delta to get the velocity
	WheelSensitivity float64 `toml:"wheel_sensitivity"`

	// WheelLineHeight converts one wheel notch into pixels
	WheelLineHeight float64 `toml:"wheel_line_height"`

	// ClickMaxDuration is the longest press still classified as a click
	ClickMaxDuration time.Duration `toml:"click_max_duration"`

	// ClickMaxDistance is the largest per-axis pointer travel still classified as a click
	ClickMaxDistance float64 `toml:"click_max_distance"`

	// Decay is the per-tick velocity multiplier
	Decay float64 `toml:"decay"`

	// SnapThreshold is the per-axis speed under which velocity snaps to zero
	SnapThreshold float64 `toml:"snap_threshold"`

	// PanningThreshold is the per-axis speed under which panning counts as over
	PanningThreshold float64 `toml:"panning_threshold"`

	// BulgeStep is the per-tick change of the bulge intensity
	BulgeStep float64 `toml:"bulge_step"`

	// BulgeMax is the upper bound of the bulge intensity
	BulgeMax float64 `toml:"bulge_max"`
}

// DefaultTuning returns the tuning the wall ships with
func DefaultTuning() Tuning {
	return Tuning{
		DragSensitivity:  7,
		WheelSensitivity: 7,
		WheelLineHeight:  100,
		ClickMaxDuration: 200 * time.Millisecond,
		ClickMaxDistance: 1,
		Decay:            0.9,
		SnapThreshold:    1,
		PanningThreshold: 20,
		BulgeStep:        0.025,
		BulgeMax:         0.2,
	}
}

// Validate reports the first tuning value that would break the engine
func (t Tuning) Validate() error {
	switch {
	case t.DragSensitivity <= 0:
		return fmt.Errorf("drag_sensitivity must be positive, got %v", t.DragSensitivity)
	case t.WheelSensitivity <= 0:
		return fmt.Errorf("wheel_sensitivity must be positive, got %v", t.WheelSensitivity)
	case t.Decay <= 0 || t.Decay >= 1:
		return fmt.Errorf("decay must be in (0, 1), got %v", t.Decay)
	case t.SnapThreshold <= 0:
		return fmt.Errorf("snap_threshold must be positive, got %v", t.SnapThreshold)
	case t.BulgeStep <= 0 || t.BulgeMax < 0:
		return fmt.Errorf("bulge_step must be positive and bulge_max non-negative")
	}
	return nil
}

// Config holds wall configuration
type Config struct {
	// ScreenWidth is the window width in pixels
	ScreenWidth int

	// ScreenHeight is the window height in pixels
	ScreenHeight int

	// Background is the clear colour behind the tiles
	Background color.RGBA

	// ShowDebug starts the wall with the debug overlay visible
	ShowDebug bool

	// ProfileDir enables frame-drop profiling when set
	ProfileDir string

	// ProfileFPSThreshold is the FPS under which a frame drop is reported
	ProfileFPSThreshold float64

	// Tuning drives panning and the bulge effect
	Tuning Tuning
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:         1280,
		ScreenHeight:        800,
		Background:          color.RGBA{0, 0, 0, 255},
		ProfileFPSThreshold: 45,
		Tuning:              DefaultTuning(),
	}
}

// Validate checks the configuration before a wall is built from it
func (c Config) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	return c.Tuning.Validate()
}
