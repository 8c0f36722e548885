// Package config loads the imagewall TOML configuration file.
//
// Every section is optional. Values present in the file override the
// package defaults; absent values keep them.
//
//	[window]
//	width = 1280
//	height = 800
//	background = "#101014"
//
//	[tuning]
//	click_max_duration = "200ms"
//	decay = 0.9
//
//	[loader]
//	concurrency = 8
//	timeout = "15s"
//
//	[catalog]
//	path = "catalog.json"
//	limit = 25
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"imagewall/catalog"
	"imagewall/loader"
	"imagewall/wall"
)

// ErrInvalid is returned when the file parses but holds unusable values
var ErrInvalid = errors.New("invalid config")

// File is the configuration document. Durations are written as strings
// such as "200ms" or "15s".
type File struct {
	Window  Window          `toml:"window"`
	Tuning  wall.Tuning     `toml:"tuning"`
	Loader  loader.Options  `toml:"loader"`
	Catalog catalog.Options `toml:"catalog"`
}

// Window configures the Ebitengine window
type Window struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
	Debug      bool   `toml:"debug"`

	ProfileDir          string  `toml:"profile_dir"`
	ProfileFPSThreshold float64 `toml:"profile_fps_threshold"`
}

// Resolved is the configuration after defaults are applied
type Resolved struct {
	Wall    wall.Config
	Loader  loader.Options
	Catalog catalog.Options
}

// Default returns the built-in configuration
func Default() Resolved {
	return Resolved{
		Wall:    wall.DefaultConfig(),
		Loader:  loader.DefaultOptions(),
		Catalog: catalog.DefaultOptions(),
	}
}

// Load reads path and overlays it on the defaults. An empty path returns the defaults.
func Load(path string) (Resolved, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML document over the defaults and validates the result
func Parse(data []byte) (Resolved, error) {
	def := Default()
	f := File{
		Window: Window{
			Width:               def.Wall.ScreenWidth,
			Height:              def.Wall.ScreenHeight,
			Debug:               def.Wall.ShowDebug,
			ProfileDir:          def.Wall.ProfileDir,
			ProfileFPSThreshold: def.Wall.ProfileFPSThreshold,
		},
		Tuning:  def.Wall.Tuning,
		Loader:  def.Loader,
		Catalog: def.Catalog,
	}

	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return def, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return def, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}

	r := Resolved{
		Wall: wall.Config{
			ScreenWidth:         f.Window.Width,
			ScreenHeight:        f.Window.Height,
			Background:          def.Wall.Background,
			ShowDebug:           f.Window.Debug,
			ProfileDir:          f.Window.ProfileDir,
			ProfileFPSThreshold: f.Window.ProfileFPSThreshold,
			Tuning:              f.Tuning,
		},
		Loader:  f.Loader,
		Catalog: f.Catalog,
	}
	if f.Window.Background != "" {
		c, err := ParseColor(f.Window.Background)
		if err != nil {
			return def, fmt.Errorf("%w: window.background: %v", ErrInvalid, err)
		}
		r.Wall.Background = c
	}

	if err := r.Validate(); err != nil {
		return def, err
	}
	return r, nil
}

// Validate reports the first unusable value
func (r Resolved) Validate() error {
	if err := r.Wall.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if r.Loader.Concurrency <= 0 || r.Loader.Attempts <= 0 {
		return fmt.Errorf("%w: loader concurrency and attempts must be positive", ErrInvalid)
	}
	if r.Catalog.Limit < 0 {
		return fmt.Errorf("%w: catalog limit must not be negative", ErrInvalid)
	}
	return nil
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa"
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("bad colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad colour %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
