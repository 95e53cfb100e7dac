package display

// Rect is a viewport in window pixels, origin bottom-left
type Rect struct {
	X, Y, W, H int
}

// Letterbox fits an imgW×imgH picture into a winW×winH window without
// distorting it, centred, with bars on the spare axis.
func Letterbox(winW, winH, imgW, imgH int) Rect {
	if winW <= 0 || winH <= 0 || imgW <= 0 || imgH <= 0 {
		return Rect{}
	}
	// compare winW/winH with imgW/imgH without floating point
	if winW*imgH > winH*imgW {
		w := winH * imgW / imgH
		return Rect{X: (winW - w) / 2, Y: 0, W: w, H: winH}
	}
	h := winW * imgH / imgW
	return Rect{X: 0, Y: (winH - h) / 2, W: winW, H: h}
}

// WindowSize scales the image down until it fits within maxW×maxH
func WindowSize(imgW, imgH, maxW, maxH int) (int, int) {
	if imgW <= maxW && imgH <= maxH {
		return imgW, imgH
	}
	r := Letterbox(maxW, maxH, imgW, imgH)
	return max(r.W, 1), max(r.H, 1)
}
