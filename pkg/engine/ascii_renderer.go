package engine

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sync"

	"quadcheck/internal/util"
)

// asciiGradient runs from darkest to lightest
var asciiGradient = []byte{' ', '.', '\'', '`', ',', ':', ';', '"', '-', '+', '=', '*', '#', '%', '@', '$'}

// ASCIIRenderer prints a character-ramp preview of a frame
type ASCIIRenderer struct {
	out   io.Writer
	width int
	mutex sync.Mutex
}

// NewASCIIRenderer creates a preview printer that is width characters wide
func NewASCIIRenderer(out io.Writer, width int) (*ASCIIRenderer, error) {
	if out == nil {
		return nil, fmt.Errorf("ascii preview needs a writer")
	}
	if width <= 0 {
		return nil, fmt.Errorf("ascii width must be positive, got %d", width)
	}
	return &ASCIIRenderer{out: out, width: width}, nil
}

// Render writes the preview, one line per character row
func (r *ASCIIRenderer) Render(frame *Frame) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	cols, rows := r.gridFor(frame)
	w := bufio.NewWriter(r.out)
	for _, line := range frameToASCII(frame, cols, rows) {
		w.Write(line)
		w.WriteByte('\n')
	}
	return w.Flush()
}

// gridFor picks the character grid. Terminal cells are about twice as
// tall as they are wide, so rows are halved.
func (r *ASCIIRenderer) gridFor(frame *Frame) (cols, rows int) {
	if frame == nil || frame.Width == 0 || frame.Height == 0 {
		return 0, 0
	}
	cols = min(r.width, frame.Width)
	rows = int(math.Round(float64(cols) * float64(frame.Height) / float64(frame.Width) / 2))
	return cols, max(rows, 1)
}

// frameToASCII samples the frame with bilinear interpolation
func frameToASCII(frame *Frame, cols, rows int) [][]byte {
	lines := make([][]byte, rows)
	if cols == 0 || rows == 0 {
		return lines
	}

	scaleX := float64(frame.Width) / float64(cols)
	scaleY := float64(frame.Height) / float64(rows)

	for y := 0; y < rows; y++ {
		line := make([]byte, cols)
		for x := 0; x < cols; x++ {
			fx := float64(x) * scaleX
			fy := float64(y) * scaleY

			x0, y0 := int(fx), int(fy)
			x1, y1 := min(x0+1, frame.Width-1), min(y0+1, frame.Height-1)
			wx := fx - float64(x0)
			wy := fy - float64(y0)

			top := util.Lerp(grey(frame, x0, y0), grey(frame, x1, y0), wx)
			bottom := util.Lerp(grey(frame, x0, y1), grey(frame, x1, y1), wx)
			intensity := toneMap(util.Lerp(top, bottom, wy))

			idx := int(intensity * float64(len(asciiGradient)-1))
			line[x] = asciiGradient[min(max(idx, 0), len(asciiGradient)-1)]
		}
		lines[y] = line
	}
	return lines
}

func grey(frame *Frame, x, y int) float64 {
	return float64(frame.Pix[frame.offset(x, y)]) / 255
}

// toneMap lifts the mid tones a little so the background stays visible
func toneMap(intensity float64) float64 {
	if intensity <= 0 {
		return 0
	}
	return math.Pow(intensity, 1/1.2)
}

// Close implements Renderer
func (r *ASCIIRenderer) Close() {}
