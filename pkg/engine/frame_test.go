package engine

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
)

func TestFrameImageSharesBuffer(t *testing.T) {
	f := NewFrame(3, 2)
	f.SetGrey(2, 1, 77)
	img := f.Image()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if img.RGBAAt(2, 1) != (color.RGBA{R: 77, G: 77, B: 77, A: 255}) {
		t.Fatalf("got %v", img.RGBAAt(2, 1))
	}
	img.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	if f.At(0, 0) != (color.RGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Fatal("image writes must reach the frame")
	}
}

func TestStatsMerge(t *testing.T) {
	var a, b, total Stats
	a.hit(0.7)
	a.hit(0.5)
	a.miss()
	b.hit(1.2)
	b.miss()
	b.miss()

	total.merge(Stats{Misses: 4})
	total.merge(a)
	total.merge(b)
	if total.Hits != 3 || total.Misses != 7 || total.MinT != 0.5 || total.MaxT != 1.2 {
		t.Fatalf("%+v", total)
	}
	if c := total.Coverage(); c != 0.3 {
		t.Fatalf("coverage %v", c)
	}
	if (Stats{}).Coverage() != 0 {
		t.Fatal("empty coverage")
	}
	if !strings.Contains(total.String(), "hits=3") {
		t.Fatal(total.String())
	}
}

func TestASCIIRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewASCIIRenderer(&buf, 8)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	f := NewFrame(16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			f.SetGrey(x, y, 255)
		}
	}
	if err := r.Render(f); err != nil {
		t.Fatal(err)
	}
	want := strings.Repeat("$$$$$$$$\n", 4)
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}

	buf.Reset()
	if err := r.Render(NewFrame(4, 4)); err != nil {
		t.Fatal(err)
	}
	// narrower than the preview: one column per pixel
	if buf.String() != strings.Repeat("    \n", 2) {
		t.Fatalf("got %q", buf.String())
	}

	if _, err := NewASCIIRenderer(&buf, 0); err == nil {
		t.Fatal("zero width accepted")
	}
}
