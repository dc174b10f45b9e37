package netviz

import (
	"math"
	"testing"
)

func TestTransformRoundTrip(t *testing.T) {
	tr := NewTransform()
	tr.Scale = 2.5
	tr.TranslateX = -40
	tr.TranslateY = 17

	sx, sy := tr.CanvasToScreen(123, -45)
	cx, cy := tr.ScreenToCanvas(sx, sy)
	if math.Abs(cx-123) > 1e-9 || math.Abs(cy+45) > 1e-9 {
		t.Errorf("round trip gave (%v, %v), want (123, -45)", cx, cy)
	}
}

func TestZoomKeepsAnchorFixed(t *testing.T) {
	tr := NewTransform()
	tr.Pan(30, -10)
	anchorX, anchorY := 200.0, 150.0
	cx, cy := tr.ScreenToCanvas(anchorX, anchorY)

	tr.ZoomAt(1.1, anchorX, anchorY)
	cx2, cy2 := tr.ScreenToCanvas(anchorX, anchorY)
	if math.Abs(cx2-cx) > 1e-9 || math.Abs(cy2-cy) > 1e-9 {
		t.Errorf("anchor drifted from (%v, %v) to (%v, %v)", cx, cy, cx2, cy2)
	}
}

func TestZoomInOutReciprocal(t *testing.T) {
	tr := NewTransform()
	tr.ZoomAt(math.Pow(1.1, 3), 100, 100)
	tr.ZoomAt(math.Pow(1.1, -3), 100, 100)
	if math.Abs(tr.Scale-1) > 1e-9 {
		t.Errorf("scale = %v after reciprocal zooms, want 1", tr.Scale)
	}
}

func TestZoomClampsScale(t *testing.T) {
	tr := NewTransform()
	tr.ZoomAt(1e6, 0, 0)
	if tr.Scale != 10 {
		t.Errorf("scale = %v, want clamp at 10", tr.Scale)
	}
	tr.ZoomAt(1e-9, 0, 0)
	if tr.Scale != 0.01 {
		t.Errorf("scale = %v, want clamp at 0.01", tr.Scale)
	}
}
