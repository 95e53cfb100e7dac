package engine

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Frame holds the result of one render: an RGBA8 buffer in row-major
// order plus statistics about the rays that produced it.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
	Stats  Stats
}

// Stats counts hits and misses and tracks the range of hit distances
type Stats struct {
	Hits   int
	Misses int
	MinT   float64
	MaxT   float64
}

// NewFrame allocates a black, fully transparent frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

func (f *Frame) offset(x, y int) int {
	return (y*f.Width + x) * 4
}

// SetGrey writes an opaque grey pixel
func (f *Frame) SetGrey(x, y int, v uint8) {
	i := f.offset(x, y)
	f.Pix[i] = v
	f.Pix[i+1] = v
	f.Pix[i+2] = v
	f.Pix[i+3] = 255
}

// At returns the pixel at (x, y)
func (f *Frame) At(x, y int) color.RGBA {
	i := f.offset(x, y)
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: f.Pix[i+3]}
}

// Image wraps the frame buffer without copying it. Writes through the
// image show up in the frame and vice versa.
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: f.Width * 4,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

func (s *Stats) hit(t float64) {
	if s.Hits == 0 || t < s.MinT {
		s.MinT = t
	}
	if s.Hits == 0 || t > s.MaxT {
		s.MaxT = t
	}
	s.Hits++
}

func (s *Stats) miss() {
	s.Misses++
}

func (s *Stats) merge(o Stats) {
	if o.Hits > 0 {
		if s.Hits == 0 {
			s.MinT, s.MaxT = o.MinT, o.MaxT
		} else {
			s.MinT = math.Min(s.MinT, o.MinT)
			s.MaxT = math.Max(s.MaxT, o.MaxT)
		}
	}
	s.Hits += o.Hits
	s.Misses += o.Misses
}

// Coverage is the fraction of rays that hit the surface
func (s Stats) Coverage() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func (s Stats) String() string {
	if s.Hits == 0 {
		return fmt.Sprintf("hits=0 misses=%d", s.Misses)
	}
	return fmt.Sprintf("hits=%d misses=%d coverage=%.1f%% t=[%.4f, %.4f]",
		s.Hits, s.Misses, 100*s.Coverage(), s.MinT, s.MaxT)
}
