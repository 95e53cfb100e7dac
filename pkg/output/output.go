// Package output encodes rendered frames to image files.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"quadcheck/internal/util"
	"quadcheck/pkg/config"
)

// ErrUnknownFormat is returned for extensions and names we cannot encode
var ErrUnknownFormat = errors.New("unknown image format")

// Format names an image encoding
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// ParseFormat accepts a format name, with or without a leading dot
func ParseFormat(name string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".") {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// ContentType is the MIME type used when publishing
func (f Format) ContentType() string {
	switch f {
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// Options controls how Save writes a frame
type Options struct {
	// Format overrides the extension; empty means FormatFromPath.
	Format  Format
	Upscale int
	Filter  resize.InterpolationFunction
}

// OptionsFromConfig resolves the output section
func OptionsFromConfig(cfg config.OutputConfig) (Options, error) {
	opts := Options{Upscale: cfg.Upscale}
	if cfg.Format != "" {
		f, err := ParseFormat(cfg.Format)
		if err != nil {
			return Options{}, err
		}
		opts.Format = f
	}
	filter, err := ParseFilter(cfg.Filter)
	if err != nil {
		return Options{}, err
	}
	opts.Filter = filter
	return opts, nil
}

// ParseFilter maps a filter name to a resize interpolation
func ParseFilter(name string) (resize.InterpolationFunction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "nearest":
		return resize.NearestNeighbor, nil
	case "bilinear":
		return resize.Bilinear, nil
	case "bicubic":
		return resize.Bicubic, nil
	case "lanczos", "lanczos3":
		return resize.Lanczos3, nil
	default:
		return 0, fmt.Errorf("unknown upscale filter %q", name)
	}
}

// Upscale magnifies img by an integer factor. Factors below 2 return
// img unchanged.
func Upscale(img image.Image, factor int, filter resize.InterpolationFunction) image.Image {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	return resize.Resize(uint(b.Dx()*factor), uint(b.Dy()*factor), img, filter)
}

// Save upscales and encodes img, writes it to path and returns the
// encoded bytes so they can be published without re-encoding.
func Save(path string, img image.Image, opts Options) ([]byte, error) {
	f := opts.Format
	if f == "" {
		var err error
		if f, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, Upscale(img, opts.Upscale, opts.Filter), f); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := util.CreateDirIfNotExist(filepath.Dir(path)); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return buf.Bytes(), nil
}
