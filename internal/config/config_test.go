package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if got.Wall.Tuning != def.Wall.Tuning || got.Loader != def.Loader || got.Catalog != def.Catalog {
		t.Errorf("Load(\"\") = %+v, want defaults", got)
	}
}

func TestParseOverlay(t *testing.T) {
	doc := `
[window]
width = 640
background = "#102030"
debug = true

[tuning]
click_max_duration = "150ms"
decay = 0.8

[loader]
concurrency = 2
timeout = "3s"
no_cache = true

[catalog]
path = "wall.json"
limit = 10
`
	got, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	def := Default()
	w := got.Wall
	if w.ScreenWidth != 640 || w.ScreenHeight != def.Wall.ScreenHeight {
		t.Errorf("screen = %dx%d, want 640x%d", w.ScreenWidth, w.ScreenHeight, def.Wall.ScreenHeight)
	}
	if w.Background != (color.RGBA{0x10, 0x20, 0x30, 0xff}) || !w.ShowDebug {
		t.Errorf("window = %+v", w)
	}
	if w.Tuning.ClickMaxDuration != 150*time.Millisecond || w.Tuning.Decay != 0.8 {
		t.Errorf("tuning = %+v", w.Tuning)
	}
	if w.Tuning.DragSensitivity != def.Wall.Tuning.DragSensitivity {
		t.Errorf("unset drag sensitivity changed to %v", w.Tuning.DragSensitivity)
	}
	if got.Loader.Concurrency != 2 || got.Loader.Timeout != 3*time.Second || !got.Loader.NoCache {
		t.Errorf("loader = %+v", got.Loader)
	}
	if got.Loader.Attempts != def.Loader.Attempts {
		t.Errorf("unset attempts changed to %d", got.Loader.Attempts)
	}
	if got.Catalog.Path != "wall.json" || got.Catalog.Limit != 10 {
		t.Errorf("catalog = %+v", got.Catalog)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		invalid bool
	}{
		{"syntax", `[window`, false},
		{"unknown key", "[window]\ncolour = 1", true},
		{"bad colour", "[window]\nbackground = \"#12\"", true},
		{"zero width", "[window]\nwidth = 0", true},
		{"decay of one", "[tuning]\ndecay = 1.0", true},
		{"no workers", "[loader]\nconcurrency = 0", true},
		{"negative limit", "[catalog]\nlimit = -1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("accepted")
			}
			if errors.Is(err, ErrInvalid) != tt.invalid {
				t.Errorf("err = %v, ErrInvalid = %v", err, tt.invalid)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imagewall.toml")
	if err := os.WriteFile(path, []byte("[window]\nheight = 600\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Wall.ScreenHeight != 600 {
		t.Errorf("height = %d, want 600", got.Wall.ScreenHeight)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#000000", color.RGBA{0, 0, 0, 255}, true},
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"  #11223344 ", color.RGBA{0x11, 0x22, 0x33, 0x44}, true},
		{"abcdef", color.RGBA{0xab, 0xcd, 0xef, 0xff}, true},
		{"#12", color.RGBA{}, false},
		{"#gggggg", color.RGBA{}, false},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v", tt.in, got, err)
		}
	}
}
