package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"quadcheck/internal/logger"
	"quadcheck/internal/util"
	"quadcheck/pkg/config"
	"quadcheck/pkg/output"
	"quadcheck/pkg/publish"
	"quadcheck/pkg/quadric"
)

// Engine runs render jobs: trace a frame, save it, show it on every
// attached renderer and optionally publish it.
type Engine struct {
	config    *config.Config
	logger    *logger.Logger
	raytracer *Raytracer
	output    output.Options
	renderers []Renderer
	uploader  publish.Uploader
}

// Result describes one finished job
type Result struct {
	Kind  quadric.Kind
	Frame *Frame
	Path  string // empty when nothing was written
	Key   string // empty when nothing was uploaded
}

// NewEngine creates an engine from a validated configuration. The ASCII
// preview and the S3 publisher are attached when the config asks for
// them; other renderers can be added with AddRenderer.
func NewEngine(cfg *config.Config, log *logger.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	surface, err := cfg.Surface.Build()
	if err != nil {
		return nil, err
	}
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raytracer, err := NewRaytracer(opts, surface)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize raytracer: %w", err)
	}
	outOpts, err := output.OptionsFromConfig(cfg.Output)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		config:    cfg,
		logger:    log,
		raytracer: raytracer,
		output:    outOpts,
	}

	if cfg.Display.ASCII {
		ascii, err := NewASCIIRenderer(os.Stdout, cfg.Display.ASCIIWidth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize ASCII renderer: %w", err)
		}
		e.AddRenderer(ascii)
	}

	if cfg.Upload.Enabled {
		up, err := publish.NewS3Publisher(cfg.Upload)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize uploader: %w", err)
		}
		e.SetUploader(up)
	}

	log.Debugf("engine ready: %dx%d, %d threads, policy %s, %s falloff",
		opts.Width, opts.Height, opts.Threads, opts.Policy, opts.Shader.Falloff)
	return e, nil
}

// AddRenderer attaches a presenter that sees every frame
func (e *Engine) AddRenderer(r Renderer) {
	e.renderers = append(e.renderers, r)
}

// SetUploader replaces the uploader; nil disables publishing
func (e *Engine) SetUploader(u publish.Uploader) {
	e.uploader = u
}

// Run renders the configured surface to the configured path
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	return e.RunSurface(ctx, e.raytracer.Surface(), e.config.Output.Path)
}

// RunAll renders every built-in surface, each to the output path with
// the surface name appended.
func (e *Engine) RunAll(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, 0, len(quadric.Kinds))
	for _, kind := range quadric.Kinds {
		s, err := quadric.Named(kind)
		if err != nil {
			return results, err
		}
		path := e.config.Output.Path
		if path != "" {
			path = util.WithSuffix(path, string(kind))
		}
		res, err := e.RunSurface(ctx, s, path)
		if err != nil {
			return results, fmt.Errorf("%s: %w", kind, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// RunSurface renders s and passes the frame through save, preview and
// upload. An empty path skips writing the file.
func (e *Engine) RunSurface(ctx context.Context, s quadric.Surface, path string) (*Result, error) {
	e.raytracer.SetSurface(s)

	start := time.Now()
	frame, err := e.raytracer.Render(ctx)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	util.TimeTrack(e.logger, start, "render "+string(s.Kind()))
	e.logger.Infof("%s: %s", s.Kind(), frame.Stats)

	res := &Result{Kind: s.Kind(), Frame: frame}

	var data []byte
	format := e.output.Format
	if path != "" {
		if data, err = output.Save(path, frame.Image(), e.output); err != nil {
			return nil, err
		}
		if format == "" {
			format, _ = output.FormatFromPath(path)
		}
		res.Path = path
		e.logger.Infof("wrote %s (%d bytes)", path, len(data))
	}

	for _, r := range e.renderers {
		if err := r.Render(frame); err != nil {
			e.logger.Warnf("renderer failed: %v", err)
		}
	}

	if e.uploader != nil {
		if data == nil {
			if format == "" {
				format = output.PNG
			}
			var buf bytes.Buffer
			img := output.Upscale(frame.Image(), e.output.Upscale, e.output.Filter)
			if err := output.Encode(&buf, img, format); err != nil {
				return nil, err
			}
			data = buf.Bytes()
		}

		name := filepath.Base(path)
		if path == "" {
			name = fmt.Sprintf("%s.%s", s.Kind(), format)
		}
		key := publish.ObjectKey(e.config.Upload.Prefix, name)
		if err := e.uploader.Upload(ctx, key, data, format.ContentType()); err != nil {
			return nil, err
		}
		res.Key = key
		e.logger.Infof("uploaded %s (%d bytes)", key, len(data))
	}

	return res, nil
}

// Close releases every attached renderer
func (e *Engine) Close() {
	e.logger.Debug("shutting down engine")
	for _, r := range e.renderers {
		r.Close()
	}
}
