package wall

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DebugState holds the debug overlay flags of a wall
type DebugState struct {
	ShowOverlay bool // Show FPS, velocity, bulge and grid stats
}

// Toggle flips the overlay
func (d *DebugState) Toggle() {
	d.ShowOverlay = !d.ShowOverlay
}

// debugLines formats the overlay text
func debugLines(id string, geometry Geometry, tiles int, state *State) []string {
	drag := "idle"
	if state.Dragging {
		drag = "dragging"
	}
	return []string{
		fmt.Sprintf("FPS %.1f  TPS %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		fmt.Sprintf("velocity %.2f, %.2f  %s", state.Velocity.X, state.Velocity.Y, drag),
		fmt.Sprintf("bulge %.3f  panning %t  shadow %t", state.Bulge, state.Panning, state.InsetShadow),
		fmt.Sprintf("grid %dx%d  tiles %d  wrap %.0fx%.0f", geometry.Rows, geometry.Cols, tiles, geometry.WrapPeriod.X, geometry.WrapPeriod.Y),
		"wall " + id,
		"F1 hide",
	}
}

// drawDebugOverlay prints the overlay in the top left corner
func drawDebugOverlay(screen *ebiten.Image, lines []string) {
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 8, 8)
}
