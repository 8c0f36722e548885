package wall

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"imagewall/catalog"
	"imagewall/loader"
)

// ErrNoLoader is returned by New when Options.Loader is nil
var ErrNoLoader = errors.New("wall: no image loader")

// ImageLoader resolves descriptors to images and calls done exactly once,
// with every descriptor in input order
type ImageLoader interface {
	Load(ctx context.Context, descs []catalog.Descriptor, done func([]loader.Image))
}

// Options configures a wall
type Options struct {
	Config      Config
	Descriptors []catalog.Descriptor
	Loader      ImageLoader

	// OnClick receives the slug of a clicked tile. May be nil.
	OnClick func(slug string)

	// OnReady fires once after the wall first mounts. May be nil.
	OnReady func()

	// Logger may be nil
	Logger *log.Logger
}

// Wall is an ebiten.Game showing a wrapping, draggable grid of images.
// It starts loading on New and mounts once every image has resolved.
type Wall struct {
	id     string
	config Config
	logger *log.Logger

	onClick func(slug string)
	onReady func()

	cancel  context.CancelFunc
	loaded  chan []loader.Image
	started time.Time

	// Set on mount
	mounted    bool
	dims       Dimensions
	geometry   Geometry
	tiles      []Tile
	state      *State
	camera     *Camera
	renderer   *Renderer
	controller *Controller
	driver     *FrameDriver
	listeners  []Listener
	profiler   *Profiler

	debug DebugState

	destroyOnce sync.Once
	destroyed   bool
}

// New validates opts and starts loading the images in the background
func New(opts Options) (*Wall, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid wall config: %w", err)
	}
	if len(opts.Descriptors) == 0 {
		return nil, catalog.ErrEmpty
	}
	if opts.Loader == nil {
		return nil, ErrNoLoader
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	id := uuid.NewString()

	ctx, cancel := context.WithCancel(context.Background())
	w := &Wall{
		id:      id,
		config:  opts.Config,
		logger:  logger.With("wall", id),
		onClick: opts.OnClick,
		onReady: opts.OnReady,
		cancel:  cancel,
		loaded:  make(chan []loader.Image, 1),
		started: time.Now(),
		debug:   DebugState{ShowOverlay: opts.Config.ShowDebug},
	}

	w.logger.Debug("loading images", "count", len(opts.Descriptors))
	opts.Loader.Load(ctx, opts.Descriptors, func(images []loader.Image) {
		w.loaded <- images
	})
	return w, nil
}

// ID returns the instance id used in logs
func (w *Wall) ID() string {
	return w.id
}

// Mounted reports whether the images have arrived and the wall is live
func (w *Wall) Mounted() bool {
	return w.mounted
}

// State returns a copy of the interaction state, zero before mount
func (w *Wall) State() State {
	if w.state == nil {
		return State{}
	}
	s := *w.state
	if s.Drag != nil {
		d := *s.Drag
		s.Drag = &d
	}
	return s
}

// Tiles returns a copy of the tiles, nil before mount
func (w *Wall) Tiles() []Tile {
	if w.tiles == nil {
		return nil
	}
	return append([]Tile(nil), w.tiles...)
}

// Update advances the wall one tick
func (w *Wall) Update() error {
	if w.destroyed {
		return ebiten.Termination
	}

	if !w.mounted {
		select {
		case images := <-w.loaded:
			if err := w.mount(images); err != nil {
				return err
			}
		default:
			return nil
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		w.debug.Toggle()
	}

	now := time.Since(w.started)
	router := w.router()
	if !ebiten.IsFocused() {
		// A release outside the window is never delivered
		router.CancelDrag()
	}
	for _, l := range w.listeners {
		l.Poll(now, router)
	}

	w.driver.Tick(w.state, w.tiles)

	if w.profiler != nil {
		w.profiler.Observe(ebiten.ActualFPS())
	}
	return nil
}

// Draw renders the wall, or a loading notice until it mounts
func (w *Wall) Draw(screen *ebiten.Image) {
	if !w.mounted || w.renderer == nil {
		screen.Fill(w.config.Background)
		ebitenutil.DebugPrintAt(screen, "loading...", 8, 8)
		return
	}

	w.renderer.Render(screen, w.tiles, w.state)

	if w.debug.ShowOverlay {
		drawDebugOverlay(screen, debugLines(w.id, w.geometry, len(w.tiles), w.state))
	}
}

// Layout returns the logical screen size
func (w *Wall) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.config.ScreenWidth, w.config.ScreenHeight
}

// Destroy stops loading, detaches the input listeners, ends any profile
// capture and releases GPU resources. The next Update ends the game. Calling it again does nothing.
func (w *Wall) Destroy() {
	w.destroyOnce.Do(func() {
		w.cancel()
		w.listeners = nil
		if w.renderer != nil {
			w.renderer.Dispose()
			w.renderer = nil
		}
		if w.profiler != nil {
			w.profiler.Stop()
		}
		w.destroyed = true
		w.logger.Debug("wall destroyed")
	})
}

// mount builds tiles, renderer and input handling from the loaded images
func (w *Wall) mount(images []loader.Image) error {
	if len(images) == 0 {
		return catalog.ErrEmpty
	}

	viewport := Vec2{X: float64(w.config.ScreenWidth), Y: float64(w.config.ScreenHeight)}
	w.dims = ResolveLayout(viewport.X)
	w.geometry = NewGeometry(len(images), w.dims)
	w.tiles = buildTiles(images, w.geometry)
	w.camera = NewCamera(w.geometry, viewport.X, viewport.Y)

	imgs := make([]image.Image, len(images))
	for i, img := range images {
		imgs[i] = img.Image
	}
	renderer, err := NewRenderer(w.camera, w.dims, imgs, w.config.Background)
	if err != nil {
		return err
	}
	w.renderer = renderer

	w.state = &State{}
	w.controller = NewController(w.state, w.config.Tuning, w.click)
	w.driver = NewFrameDriver(w.geometry, w.config.Tuning)
	w.listeners = defaultListeners(w.config.Tuning)

	if w.config.ProfileDir != "" {
		w.profiler, err = NewProfiler(w.config.ProfileDir, w.config.ProfileFPSThreshold, w.logger)
		if err != nil {
			w.logger.Warn("frame-drop profiling disabled", "err", err)
		}
	}

	w.mounted = true
	w.logger.Debug("wall mounted",
		"rows", w.geometry.Rows, "cols", w.geometry.Cols,
		"tile", fmt.Sprintf("%.0fx%.0f", w.dims.TileWidth, w.dims.TileHeight))

	if w.onReady != nil {
		w.onReady()
	}
	return nil
}

func (w *Wall) click(slug string) {
	w.logger.Info("tile clicked", "slug", slug)
	if w.onClick != nil {
		w.onClick(slug)
	}
}

func (w *Wall) router() *pointerRouter {
	return &pointerRouter{
		controller: w.controller,
		camera:     w.camera,
		tiles:      w.tiles,
		dims:       w.dims,
	}
}

// buildTiles lays the images out in grid order
func buildTiles(images []loader.Image, geometry Geometry) []Tile {
	tiles := make([]Tile, len(images))
	for i, img := range images {
		d := img.Descriptor
		tiles[i] = Tile{
			Index:       i,
			ID:          d.ID,
			Slug:        d.Slug,
			Name:        d.Name,
			Pos:         geometry.InitialPosition(i),
			Interactive: true,
		}
	}
	return tiles
}

// pointerRouter resolves the tile under a press before handing events to the controller
type pointerRouter struct {
	controller *Controller
	camera     *Camera
	tiles      []Tile
	dims       Dimensions
}

func (r *pointerRouter) PointerDown(at time.Duration, pos Vec2) {
	target := ""
	if t, ok := HitTest(r.tiles, r.camera.ScreenToContainer(pos), r.dims); ok {
		target = t.Slug
	}
	r.controller.PointerDown(at, pos, target)
}

func (r *pointerRouter) PointerMove(pos Vec2) { r.controller.PointerMove(pos) }
func (r *pointerRouter) TouchMove(touches []Vec2) { r.controller.TouchMove(touches) }
func (r *pointerRouter) CancelDrag() { r.controller.CancelDrag() }
func (r *pointerRouter) Wheel(delta Vec2) { r.controller.Wheel(delta) }
func (r *pointerRouter) PointerUp(at time.Duration, pos Vec2) {
	r.controller.PointerUp(at, pos)
}
