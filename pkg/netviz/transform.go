package netviz

// Transform is the shared view state: a translation applied after scaling.
// Screen = canvas*scale + translation. All coordinate conversions between
// pointer space and canvas space go through here.
type Transform struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
}

const (
	minScale = 0.01
	maxScale = 10
)

func NewTransform() *Transform {
	return &Transform{Scale: 1}
}

func (t *Transform) CanvasToScreen(x, y float64) (float64, float64) {
	return x*t.Scale + t.TranslateX, y*t.Scale + t.TranslateY
}

func (t *Transform) ScreenToCanvas(x, y float64) (float64, float64) {
	return (x - t.TranslateX) / t.Scale, (y - t.TranslateY) / t.Scale
}

// ZoomAt multiplies the scale by factor, clamped to [0.01, 10], and
// recomputes the translation so the canvas point under the screen anchor
// stays put.
func (t *Transform) ZoomAt(factor, anchorX, anchorY float64) {
	newScale := t.Scale * factor
	if newScale < minScale {
		newScale = minScale
	}
	if newScale > maxScale {
		newScale = maxScale
	}
	cx, cy := t.ScreenToCanvas(anchorX, anchorY)
	t.Scale = newScale
	t.TranslateX = anchorX - cx*t.Scale
	t.TranslateY = anchorY - cy*t.Scale
}

func (t *Transform) Pan(dx, dy float64) {
	t.TranslateX += dx
	t.TranslateY += dy
}
