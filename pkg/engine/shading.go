package engine

import (
	"fmt"
	"math"
	"strings"

	"quadcheck/internal/util"
)

// Falloff turns a hit distance into a grey level
type Falloff int

const (
	// FalloffLinear fades from white at t=0 to black at t=2
	FalloffLinear Falloff = iota
	// FalloffPower brightens with the fourth power of t
	FalloffPower
)

func (f Falloff) String() string {
	switch f {
	case FalloffLinear:
		return "linear"
	case FalloffPower:
		return "power"
	default:
		return fmt.Sprintf("Falloff(%d)", int(f))
	}
}

// ParseFalloff accepts "linear" and "power"
func ParseFalloff(name string) (Falloff, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return FalloffLinear, nil
	case "power", "pow":
		return FalloffPower, nil
	default:
		return 0, fmt.Errorf("unknown falloff %q", name)
	}
}

// Shader maps distances to grey levels. Scale multiplies t before the
// falloff is applied; zero means 1.
type Shader struct {
	Falloff Falloff
	Scale   float64
}

// Grey returns the grey level for a hit at distance t
func (s Shader) Grey(t float64) uint8 {
	if s.Scale != 0 {
		t *= s.Scale
	}
	var v float64
	switch s.Falloff {
	case FalloffPower:
		v = t * t * t * t * 255
	default:
		v = 255 - (t/2)*255
	}
	return toByte(v)
}

// toByte clamps to [0, 255] and rounds half to even, the way a canvas
// stores a float into a clamped byte array. NaN becomes 0.
func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.RoundToEven(util.Clamp(v, 0, 255)))
}

// Background supplies the grey level for rays that miss
type Background interface {
	Grey(x, y int) uint8
}

// Flat is a single-colour background
type Flat uint8

// Grey implements Background
func (f Flat) Grey(x, y int) uint8 { return uint8(f) }

// Checker is a checkerboard background. The first tile along each axis
// is Size pixels wide and every later one Size+1, matching a counter
// that is bumped before it is compared.
type Checker struct {
	Size  int
	Dark  uint8
	Light uint8
}

// Grey implements Background
func (c Checker) Grey(x, y int) uint8 {
	if (checkerFlips(x, c.Size)+checkerFlips(y, c.Size))%2 == 1 {
		return c.Light
	}
	return c.Dark
}

// checkerFlips is the number of tile changes at or before index i
func checkerFlips(i, size int) int {
	if size <= 0 || i < size {
		return 0
	}
	return (i-size)/(size+1) + 1
}
