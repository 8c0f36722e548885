// Package loader fetches and decodes the images behind catalog descriptors.
//
// A batch never fails as a whole: any descriptor whose image cannot be
// fetched or decoded is given the fallback logo instead, and the batch
// callback fires once, with every entry in input order, after the last
// descriptor has resolved.
package loader

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"imagewall/catalog"
)

// Options configures fetching, caching and the fallback image
type Options struct {
	// Concurrency is the number of images fetched at once
	Concurrency int `toml:"concurrency"`

	// Timeout bounds a single HTTP request
	Timeout time.Duration `toml:"timeout"`

	// Attempts is how many times a transient failure is tried
	Attempts int `toml:"attempts"`

	// Backoff is the delay before the first retry, doubled after each one
	Backoff time.Duration `toml:"backoff"`

	// CacheDir stores fetched bytes, empty for ~/.cache/imagewall
	CacheDir string `toml:"cache_dir"`

	// CacheTTL expires cached bytes, 0 keeps them forever
	CacheTTL time.Duration `toml:"cache_ttl"`

	// NoCache disables the disk cache
	NoCache bool `toml:"no_cache"`

	// FallbackSVG replaces the built-in fallback logo
	FallbackSVG string `toml:"fallback_svg"`

	// FallbackSize is the edge length the fallback logo is rasterised at
	FallbackSize int `toml:"fallback_size"`
}

// DefaultOptions returns the loader defaults
func DefaultOptions() Options {
	return Options{
		Concurrency:  8,
		Timeout:      15 * time.Second,
		Attempts:     3,
		Backoff:      500 * time.Millisecond,
		CacheTTL:     7 * 24 * time.Hour,
		FallbackSize: defaultFallbackSize,
	}
}

// Image is a decoded descriptor
type Image struct {
	Descriptor catalog.Descriptor
	Image      image.Image

	// Fallback is true when Image is the fallback logo
	Fallback bool

	// Err is why the fallback was used, nil for descriptors without an image
	Err error
}

// Loader resolves descriptors to images
type Loader struct {
	opts     Options
	fetcher  *fetcher
	fallback image.Image
	logger   *log.Logger
}

// New creates a loader. logger may be nil.
func New(opts Options, logger *log.Logger) (*Loader, error) {
	if logger == nil {
		logger = log.Default()
	}

	fallback, err := loadFallback(opts.FallbackSVG, opts.FallbackSize)
	if err != nil {
		return nil, err
	}

	var cache *Cache
	if !opts.NoCache {
		cache, err = NewCache(opts.CacheDir, opts.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to open image cache: %w", err)
		}
	}

	return &Loader{
		opts:     opts,
		fetcher:  newFetcher(opts.Timeout, opts.Attempts, opts.Backoff, cache),
		fallback: fallback,
		logger:   logger,
	}, nil
}

// Fallback returns the image substituted for failed descriptors
func (l *Loader) Fallback() image.Image {
	return l.fallback
}

// Load resolves descs in the background and calls done exactly once with
// all of them, in input order.
func (l *Loader) Load(ctx context.Context, descs []catalog.Descriptor, done func([]Image)) {
	go func() {
		done(l.LoadAll(ctx, descs))
	}()
}

// LoadAll resolves descs and blocks until every one has an image
func (l *Loader) LoadAll(ctx context.Context, descs []catalog.Descriptor) []Image {
	out := make([]Image, len(descs))

	var g errgroup.Group
	g.SetLimit(max(l.opts.Concurrency, 1))
	for i, d := range descs {
		g.Go(func() error {
			out[i] = l.resolve(ctx, d)
			return nil
		})
	}
	_ = g.Wait()

	fallbacks := 0
	for _, img := range out {
		if img.Fallback {
			fallbacks++
		}
	}
	l.logger.Debug("images loaded", "count", len(out), "fallbacks", fallbacks)
	return out
}

func (l *Loader) resolve(ctx context.Context, d catalog.Descriptor) Image {
	if d.ImageURL == "" || d.ImageURL == catalog.FallbackURL {
		return Image{Descriptor: d, Image: l.fallback, Fallback: true}
	}

	data, cached, err := l.fetcher.fetch(ctx, d.ImageURL)
	if err == nil {
		var img image.Image
		img, _, err = decode(data)
		switch {
		case err == nil:
			if !cached {
				l.fetcher.store(d.ImageURL, data)
			}
			return Image{Descriptor: d, Image: img}
		case cached:
			l.fetcher.evict(d.ImageURL)
		}
	}

	if ctx.Err() != nil {
		// Cancelled batches fall back without a warning
		return Image{Descriptor: d, Image: l.fallback, Fallback: true, Err: ctx.Err()}
	}
	l.logger.Warn("using fallback image", "slug", d.Slug, "url", d.ImageURL, "err", err)
	return Image{Descriptor: d, Image: l.fallback, Fallback: true, Err: err}
}
