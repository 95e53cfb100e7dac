package display

import "testing"

func TestLetterbox(t *testing.T) {
	cases := []struct {
		winW, winH, imgW, imgH int
		want                   Rect
	}{
		{512, 512, 512, 512, Rect{0, 0, 512, 512}},
		{800, 400, 200, 200, Rect{200, 0, 400, 400}},
		{400, 800, 200, 200, Rect{0, 200, 400, 400}},
		{640, 480, 320, 160, Rect{0, 80, 640, 320}},
		{0, 480, 320, 160, Rect{}},
	}
	for _, c := range cases {
		if got := Letterbox(c.winW, c.winH, c.imgW, c.imgH); got != c.want {
			t.Errorf("Letterbox(%d, %d, %d, %d) = %+v, want %+v", c.winW, c.winH, c.imgW, c.imgH, got, c.want)
		}
	}
}

func TestWindowSize(t *testing.T) {
	if w, h := WindowSize(512, 256, 1024, 1024); w != 512 || h != 256 {
		t.Fatalf("small frame resized to %dx%d", w, h)
	}
	if w, h := WindowSize(4096, 2048, 1024, 1024); w != 1024 || h != 512 {
		t.Fatalf("got %dx%d", w, h)
	}
	if w, h := WindowSize(100, 4000, 1024, 1024); w != 25 || h != 1024 {
		t.Fatalf("got %dx%d", w, h)
	}
}
