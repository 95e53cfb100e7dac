package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v2"
)

// Config represents the main configuration
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Surface SurfaceConfig `yaml:"surface"`
	Shading ShadingConfig `yaml:"shading"`
	Output  OutputConfig  `yaml:"output"`
	Display DisplayConfig `yaml:"display"`
	Upload  UploadConfig  `yaml:"upload"`
	Log     LogConfig     `yaml:"log"`
}

// RenderConfig contains the frame driver configuration
type RenderConfig struct {
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	NumThreads int       `yaml:"num_threads"` // 0 = one per CPU
	Focal      []float64 `yaml:"focal,flow"`  // point every ray aims at
	RootPolicy string    `yaml:"root_policy"` // nearest, near-only
}

// ShadingConfig controls how distances and misses become grey levels
type ShadingConfig struct {
	Falloff    string  `yaml:"falloff"`    // linear, power
	Scale      float64 `yaml:"scale"`      // multiplies t before the falloff
	Background string  `yaml:"background"` // checker, flat
	TileSize   int     `yaml:"tile_size"`
	Dark       int     `yaml:"dark"`
	Light      int     `yaml:"light"`
	Flat       int     `yaml:"flat"`
}

// OutputConfig describes the image file written after a render
type OutputConfig struct {
	Path    string `yaml:"path"`
	Format  string `yaml:"format"`  // png, bmp, tiff; empty = from extension
	Upscale int    `yaml:"upscale"` // integer magnification, 1 = none
	Filter  string `yaml:"filter"`  // nearest, bilinear
}

// DisplayConfig selects the optional presenters
type DisplayConfig struct {
	Window     bool   `yaml:"window"`
	Title      string `yaml:"title"`
	ASCII      bool   `yaml:"ascii"`
	ASCIIWidth int    `yaml:"ascii_width"`
}

// UploadConfig contains S3 publishing configuration
type UploadConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Endpoint       string `yaml:"endpoint"`
	Region         string `yaml:"region"`
	Bucket         string `yaml:"bucket"`
	Prefix         string `yaml:"prefix"`
	AccessKey      string `yaml:"access_key"`
	SecretKey      string `yaml:"secret_key"`
	ACL            string `yaml:"acl"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LogConfig contains logger configuration
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Width:      512,
			Height:     512,
			NumThreads: 4,
			Focal:      []float64{0, 100, 0},
			RootPolicy: "nearest",
		},
		Surface: SurfaceConfig{
			Kind: "tapered_cylinder",
		},
		Shading: ShadingConfig{
			Falloff:    "linear",
			Scale:      1,
			Background: "checker",
			TileSize:   10,
			Dark:       50,
			Light:      80,
			Flat:       50,
		},
		Output: OutputConfig{
			Path:    "out/quadric.png",
			Upscale: 1,
			Filter:  "nearest",
		},
		Display: DisplayConfig{
			Window:     false,
			Title:      "quadcheck",
			ASCII:      false,
			ASCIIWidth: 64,
		},
		Upload: UploadConfig{
			Enabled:        false,
			Region:         "us-east-1",
			Prefix:         "quadcheck",
			ACL:            "public-read",
			TimeoutSeconds: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the configuration from a file.
//
// A missing file is not fatal: the defaults are returned together with
// an error wrapping os.ErrNotExist so the caller can decide to warn.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("error parsing config %s: %w", filePath, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Threads resolves NumThreads, mapping 0 to the CPU count
func (r RenderConfig) Threads() int {
	if r.NumThreads <= 0 {
		return runtime.NumCPU()
	}
	return r.NumThreads
}

// Validate checks the values a render cannot work without
func (c *Config) Validate() error {
	var errs []error

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}
	if c.Render.NumThreads < 0 {
		errs = append(errs, fmt.Errorf("num_threads must be >= 0, got %d", c.Render.NumThreads))
	}
	if len(c.Render.Focal) != 3 {
		errs = append(errs, fmt.Errorf("focal needs 3 coordinates, got %d", len(c.Render.Focal)))
	} else if c.Render.Focal[1] == -1 && c.Render.Focal[0] >= -1 && c.Render.Focal[0] <= 1 &&
		c.Render.Focal[2] >= -1 && c.Render.Focal[2] <= 1 {
		// the image plane sits at y = -1; a focal point on it leaves
		// one pixel without a direction
		errs = append(errs, fmt.Errorf("focal point %v lies on the image plane", c.Render.Focal))
	}

	switch strings.ToLower(strings.TrimSpace(c.Shading.Falloff)) {
	case "linear", "power":
	default:
		errs = append(errs, fmt.Errorf("unknown falloff %q", c.Shading.Falloff))
	}
	switch strings.ToLower(strings.TrimSpace(c.Shading.Background)) {
	case "checker":
		if c.Shading.TileSize <= 0 {
			errs = append(errs, fmt.Errorf("tile_size must be positive, got %d", c.Shading.TileSize))
		}
	case "flat":
	default:
		errs = append(errs, fmt.Errorf("unknown background %q", c.Shading.Background))
	}
	for name, v := range map[string]int{"dark": c.Shading.Dark, "light": c.Shading.Light, "flat": c.Shading.Flat} {
		if v < 0 || v > 255 {
			errs = append(errs, fmt.Errorf("%s grey level must be in [0, 255], got %d", name, v))
		}
	}

	if c.Output.Upscale < 1 {
		errs = append(errs, fmt.Errorf("upscale must be >= 1, got %d", c.Output.Upscale))
	}

	if c.Upload.Enabled && c.Upload.Bucket == "" {
		errs = append(errs, errors.New("upload enabled without a bucket"))
	}

	if _, err := c.Surface.Build(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
