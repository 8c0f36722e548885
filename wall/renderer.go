package wall

import (
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

//go:embed bulge.kage
var bulgeShaderSrc []byte

// insetShadowDepth is how far the shadow reaches into the viewport, in pixels
const insetShadowDepth = 48

// Camera maps tile container coordinates to the screen
type Camera struct {
	Offset Vec2    // Container origin in screen coordinates
	Width  float64 // Viewport width
	Height float64 // Viewport height
}

// NewCamera creates a camera that centres the grid in the viewport
func NewCamera(geometry Geometry, width, height float64) *Camera {
	viewport := Vec2{X: width, Y: height}
	return &Camera{
		Offset: geometry.ContainerOffset(viewport),
		Width:  width,
		Height: height,
	}
}

// ContainerToScreen converts container coordinates to screen coordinates
func (c *Camera) ContainerToScreen(p Vec2) Vec2 {
	return p.Add(c.Offset)
}

// ScreenToContainer converts screen coordinates to container coordinates
func (c *Camera) ScreenToContainer(p Vec2) Vec2 {
	return p.Sub(c.Offset)
}

// Visible reports whether a tile-sized rectangle at container position p is on screen
func (c *Camera) Visible(p Vec2, dims Dimensions) bool {
	s := c.ContainerToScreen(p)
	return s.X+dims.TileWidth > 0 && s.X < c.Width &&
		s.Y+dims.TileHeight > 0 && s.Y < c.Height
}

// Renderer draws the tiles and the bulge effect
type Renderer struct {
	camera     *Camera
	dims       Dimensions
	background color.RGBA

	sprites []*ebiten.Image
	scene   *ebiten.Image
	shader  *ebiten.Shader
}

// NewRenderer uploads one cover-fitted sprite per image and compiles the bulge shader
func NewRenderer(camera *Camera, dims Dimensions, images []image.Image, background color.RGBA) (*Renderer, error) {
	shader, err := ebiten.NewShader(bulgeShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to compile bulge shader: %w", err)
	}

	w := int(math.Round(dims.TileWidth))
	h := int(math.Round(dims.TileHeight))
	sprites := make([]*ebiten.Image, len(images))
	for i, img := range images {
		sprites[i] = ebiten.NewImageFromImage(CoverImage(img, w, h))
	}

	return &Renderer{
		camera:     camera,
		dims:       dims,
		background: background,
		sprites:    sprites,
		shader:     shader,
	}, nil
}

// Render draws every visible tile, then the bulge and the inset shadow
func (r *Renderer) Render(screen *ebiten.Image, tiles []Tile, state *State) {
	scene := r.sceneFor(screen)
	scene.Fill(r.background)

	for i := range tiles {
		t := &tiles[i]
		if t.Index < 0 || t.Index >= len(r.sprites) {
			continue
		}
		if !r.camera.Visible(t.Pos, r.dims) {
			continue
		}
		s := r.camera.ContainerToScreen(t.Pos)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(s.X, s.Y)
		op.Filter = ebiten.FilterLinear
		scene.DrawImage(r.sprites[t.Index], op)
	}

	if state.Bulge > 0 {
		r.drawBulge(screen, scene, state.Bulge)
	} else {
		screen.DrawImage(scene, nil)
	}

	if state.InsetShadow {
		r.drawInsetShadow(screen)
	}
}

// sceneFor returns an offscreen image the size of screen
func (r *Renderer) sceneFor(screen *ebiten.Image) *ebiten.Image {
	b := screen.Bounds()
	if r.scene != nil && r.scene.Bounds().Eq(b) {
		return r.scene
	}
	if r.scene != nil {
		r.scene.Deallocate()
	}
	r.scene = ebiten.NewImage(b.Dx(), b.Dy())
	return r.scene
}

func (r *Renderer) drawBulge(screen, scene *ebiten.Image, strength float64) {
	b := scene.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = scene
	op.Uniforms = map[string]any{
		"Center":   []float32{float32(w / 2), float32(h / 2)},
		"Radius":   float32(math.Hypot(w, h) / 2),
		"Strength": float32(strength),
	}
	screen.DrawRectShader(b.Dx(), b.Dy(), r.shader, op)
}

// drawInsetShadow darkens the viewport edges in fading bands
func (r *Renderer) drawInsetShadow(screen *ebiten.Image) {
	b := screen.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	const bands = 8
	step := float32(insetShadowDepth) / bands

	for i := 0; i < bands; i++ {
		alpha := uint8(120 * (bands - i) / bands)
		clr := color.RGBA{0, 0, 0, alpha}
		d := float32(i) * step
		vector.DrawFilledRect(screen, d, d, w-2*d, step, clr, false)
		vector.DrawFilledRect(screen, d, h-d-step, w-2*d, step, clr, false)
		vector.DrawFilledRect(screen, d, d+step, step, h-2*d-2*step, clr, false)
		vector.DrawFilledRect(screen, w-d-step, d+step, step, h-2*d-2*step, clr, false)
	}
}

// Dispose releases every GPU image the renderer owns
func (r *Renderer) Dispose() {
	for i, s := range r.sprites {
		if s != nil {
			s.Deallocate()
			r.sprites[i] = nil
		}
	}
	r.sprites = nil
	if r.scene != nil {
		r.scene.Deallocate()
		r.scene = nil
	}
	if r.shader != nil {
		r.shader.Deallocate()
		r.shader = nil
	}
}
