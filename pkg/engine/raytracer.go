package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"quadcheck/pkg/config"
	"quadcheck/pkg/geom"
	"quadcheck/pkg/quadric"
)

// Options is everything the frame driver needs besides the surface
type Options struct {
	Width      int
	Height     int
	Threads    int
	Focal      geom.Vector3
	Policy     quadric.Policy
	Shader     Shader
	Background Background
}

// DefaultFocal is the point all primary rays aim at
var DefaultFocal = geom.V(0, 100, 0)

// OptionsFromConfig resolves the render and shading sections
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	policy, err := quadric.ParsePolicy(cfg.Render.RootPolicy)
	if err != nil {
		return Options{}, err
	}
	falloff, err := ParseFalloff(cfg.Shading.Falloff)
	if err != nil {
		return Options{}, err
	}

	focal := DefaultFocal
	if f := cfg.Render.Focal; len(f) == 3 {
		focal = geom.V(f[0], f[1], f[2])
	} else if len(f) != 0 {
		return Options{}, fmt.Errorf("focal needs 3 coordinates, got %d", len(f))
	}

	var bg Background
	switch strings.ToLower(strings.TrimSpace(cfg.Shading.Background)) {
	case "", "checker":
		bg = Checker{Size: cfg.Shading.TileSize, Dark: uint8(cfg.Shading.Dark), Light: uint8(cfg.Shading.Light)}
	case "flat":
		bg = Flat(cfg.Shading.Flat)
	default:
		return Options{}, fmt.Errorf("unknown background %q", cfg.Shading.Background)
	}

	return Options{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Threads:    cfg.Render.Threads(),
		Focal:      focal,
		Policy:     policy,
		Shader:     Shader{Falloff: falloff, Scale: cfg.Shading.Scale},
		Background: bg,
	}, nil
}

// RayFor builds the primary ray for pixel (x, y) of a w×h image. Pixels
// sit on the y = -1 plane spanning [-1, 1] in x and z, with image rows
// running from +z down to -z.
func RayFor(x, y, w, h int, focal geom.Vector3) (geom.Ray, error) {
	origin := geom.V(
		2*(float64(x)/float64(w))-1,
		-1,
		1-2*(float64(y)/float64(h)),
	)
	ray, err := geom.NewRay(origin, focal.Sub(origin))
	if err != nil {
		return geom.Ray{}, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
	}
	return ray, nil
}

// Raytracer casts one ray per pixel against a single surface
type Raytracer struct {
	opts    Options
	surface quadric.Surface
	mutex   sync.Mutex
}

// NewRaytracer creates a new raytracer with the given options
func NewRaytracer(opts Options, surface quadric.Surface) (*Raytracer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid resolution %dx%d", opts.Width, opts.Height)
	}
	if surface == nil {
		return nil, fmt.Errorf("no surface to render")
	}
	if opts.Threads < 1 {
		opts.Threads = 1
	}
	if opts.Background == nil {
		opts.Background = Checker{Size: 10, Dark: 50, Light: 80}
	}
	return &Raytracer{opts: opts, surface: surface}, nil
}

// SetSurface swaps the surface used by later renders
func (rt *Raytracer) SetSurface(s quadric.Surface) {
	rt.mutex.Lock()
	defer rt.mutex.Unlock()
	rt.surface = s
}

// Surface returns the surface being rendered
func (rt *Raytracer) Surface() quadric.Surface {
	rt.mutex.Lock()
	defer rt.mutex.Unlock()
	return rt.surface
}

// Render traces the whole frame. Rows are split into contiguous bands,
// one per worker; every band writes its own slice of the buffer, so the
// result does not depend on the thread count.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, error) {
	rt.mutex.Lock()
	opts := rt.opts
	surface := rt.surface
	rt.mutex.Unlock()

	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid resolution %dx%d", opts.Width, opts.Height)
	}

	frame := NewFrame(opts.Width, opts.Height)
	isect := quadric.Intersector{Policy: opts.Policy}

	bands := opts.Threads
	if bands > opts.Height {
		bands = opts.Height
	}
	rowsPerBand := opts.Height / bands
	stats := make([]Stats, bands)

	g, ctx := errgroup.WithContext(ctx)
	for b := 0; b < bands; b++ {
		b := b
		startRow := b * rowsPerBand
		endRow := startRow + rowsPerBand
		if b == bands-1 {
			endRow = opts.Height
		}

		g.Go(func() error {
			st := &stats[b]
			for y := startRow; y < endRow; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				for x := 0; x < opts.Width; x++ {
					ray, err := RayFor(x, y, opts.Width, opts.Height, opts.Focal)
					if err != nil {
						return err
					}
					if t, ok := isect.Intersect(ray, surface); ok {
						st.hit(t)
						frame.SetGrey(x, y, opts.Shader.Grey(t))
					} else {
						st.miss()
						frame.SetGrey(x, y, opts.Background.Grey(x, y))
					}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, s := range stats {
		frame.Stats.merge(s)
	}
	return frame, nil
}
