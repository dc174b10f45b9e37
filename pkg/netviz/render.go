package netviz

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// The rendering backend is a set of stateless draw routines over the
// current entity geometry. Shapes that have no vector primitive (rounded
// rect, ellipse, database cylinder, arrow head) are built as free
// functions from vector.Path; the rendering context type is never
// extended.

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

type Renderer struct {
	fontSource *text.GoTextFaceSource
	images     *ImageCache
}

func NewRenderer(images *ImageCache) (*Renderer, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &Renderer{fontSource: s, images: images}, nil
}

// MeasureText implements TextMeasurer for lazy node sizing.
func (r *Renderer) MeasureText(s string, size float64) (w, h float64) {
	face := &text.GoTextFace{Source: r.fontSource, Size: size}
	return text.Measure(s, face, size*1.3)
}

// DrawScene paints background, links, nodes and packages in that order so
// payload markers ride on top.
func (r *Renderer) DrawScene(dst *ebiten.Image, scene *Scene, tr *Transform, opts *Options) {
	bg := opts.Background
	dst.Fill(bg.Fill)
	if bg.StrokeWidth > 0 {
		vector.StrokeRect(dst, 0, 0, float32(opts.Width), float32(opts.Height),
			float32(bg.StrokeWidth), bg.Stroke, true)
	}

	for _, l := range scene.Links {
		r.drawLink(dst, l, tr)
	}
	for _, n := range scene.Nodes {
		r.drawNode(dst, n, scene, tr)
	}
	for _, p := range scene.Packages {
		r.drawPackage(dst, p, tr)
	}
}

func (r *Renderer) drawLink(dst *ebiten.Image, l *Link, tr *Transform) {
	x1, y1 := tr.CanvasToScreen(l.From.X, l.From.Y)
	x2, y2 := tr.CanvasToScreen(l.To.X, l.To.Y)
	width := float32(l.Width * tr.Scale)
	if width < 1 {
		width = 1
	}
	vector.StrokeLine(dst, float32(x1), float32(y1), float32(x2), float32(y2), width, l.Color, true)

	angle := math.Atan2(y2-y1, x2-x1)
	switch l.Style {
	case LinkArrow:
		// Head sits at the midpoint so it stays visible whatever shape
		// covers the endpoint.
		mx, my := (x1+x2)/2, (y1+y2)/2
		drawArrowHead(dst, mx, my, angle, arrowSize(l.Width)*tr.Scale, l.Color)
	case LinkMovingArrow:
		for _, phase := range l.Phases {
			px := x1 + (x2-x1)*phase
			py := y1 + (y2-y1)*phase
			drawArrowHead(dst, px, py, angle, arrowSize(l.Width)*tr.Scale, l.Color)
		}
	case LinkMovingDot:
		for _, phase := range l.Phases {
			px := x1 + (x2-x1)*phase
			py := y1 + (y2-y1)*phase
			radius := float32((l.Width + 3) * tr.Scale)
			vector.DrawFilledCircle(dst, float32(px), float32(py), radius, l.Color, true)
		}
	}
}

func arrowSize(width float64) float64 {
	return 5 + 2*width
}

func (r *Renderer) drawNode(dst *ebiten.Image, n *Node, scene *Scene, tr *Transform) {
	n.computeSize(r)
	left, top, w, h := n.Bounds()
	sx, sy := tr.CanvasToScreen(left, top)
	sw, sh := w*tr.Scale, h*tr.Scale
	cx, cy := tr.CanvasToScreen(n.X, n.Y)

	stroke := n.strokeColor(scene.Groups())
	fill := n.fillColor(scene.Groups())
	strokeWidth := 1.0
	if n.Selected {
		strokeWidth = 2.5
	}

	label := n.Text
	if label == "" {
		label = n.ID
	}

	switch n.Style {
	case NodeDot:
		radius := float32(n.Radius * tr.Scale)
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), radius, fill, true)
		vector.StrokeCircle(dst, float32(cx), float32(cy), radius, float32(strokeWidth), stroke, true)
		r.drawLabel(dst, label, cx, cy+float64(radius)+4, tr.Scale, color.RGBA{0, 0, 0, 255}, true)
	case NodeCircle:
		radius := float32(sw / 2)
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), radius, fill, true)
		vector.StrokeCircle(dst, float32(cx), float32(cy), radius, float32(strokeWidth), stroke, true)
		r.drawCenteredLabel(dst, label, cx, cy, tr.Scale, color.RGBA{0, 0, 0, 255})
	case NodeImage:
		if img := r.images.Get(n.Image); img != nil {
			bw, bh := img.Bounds().Dx(), img.Bounds().Dy()
			n.imageW, n.imageH = float64(bw), float64(bh)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(tr.Scale, tr.Scale)
			op.GeoM.Translate(cx-float64(bw)*tr.Scale/2, cy-float64(bh)*tr.Scale/2)
			dst.DrawImage(img, op)
			if n.Selected {
				vector.StrokeRect(dst, float32(cx-float64(bw)*tr.Scale/2), float32(cy-float64(bh)*tr.Scale/2),
					float32(float64(bw)*tr.Scale), float32(float64(bh)*tr.Scale), float32(strokeWidth), stroke, true)
			}
		} else {
			// Not loaded yet; show a dot placeholder until the image
			// callback triggers a redraw.
			vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(n.Radius*tr.Scale), fill, true)
		}
		r.drawLabel(dst, label, cx, cy+sh/2+4, tr.Scale, color.RGBA{0, 0, 0, 255}, true)
	case NodeText:
		r.drawCenteredLabel(dst, label, cx, cy, tr.Scale, stroke)
	case NodeDatabase:
		fillDatabase(dst, sx, sy, sw, sh, fill)
		strokeDatabase(dst, sx, sy, sw, sh, strokeWidth, stroke)
		r.drawCenteredLabel(dst, label, cx, cy, tr.Scale, color.RGBA{0, 0, 0, 255})
	default: // NodeRect
		radius := 4 * tr.Scale
		fillRoundRect(dst, sx, sy, sw, sh, radius, fill)
		strokeRoundRect(dst, sx, sy, sw, sh, radius, strokeWidth, stroke)
		r.drawCenteredLabel(dst, label, cx, cy, tr.Scale, color.RGBA{0, 0, 0, 255})
	}
}

func (r *Renderer) drawPackage(dst *ebiten.Image, p *Package, tr *Transform) {
	x, y := p.Position()
	sx, sy := tr.CanvasToScreen(x, y)
	switch p.Style {
	case PackageImage:
		if img := r.images.Get(p.Image); img != nil {
			bw, bh := img.Bounds().Dx(), img.Bounds().Dy()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(tr.Scale, tr.Scale)
			op.GeoM.Translate(sx-float64(bw)*tr.Scale/2, sy-float64(bh)*tr.Scale/2)
			dst.DrawImage(img, op)
			return
		}
		fallthrough
	default:
		vector.DrawFilledCircle(dst, float32(sx), float32(sy), float32(p.Radius*tr.Scale), p.Color, true)
		vector.StrokeCircle(dst, float32(sx), float32(sy), float32(p.Radius*tr.Scale), 1, darken(p.Color), true)
	}
}

func darken(c color.RGBA) color.RGBA {
	return color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A}
}

func (r *Renderer) drawLabel(dst *ebiten.Image, s string, x, y, scale float64, clr color.RGBA, centerX bool) {
	if s == "" {
		return
	}
	face := &text.GoTextFace{Source: r.fontSource, Size: nodeFontSize * scale}
	op := &text.DrawOptions{}
	op.LineSpacing = nodeFontSize * scale * 1.3
	if centerX {
		w, _ := text.Measure(s, face, op.LineSpacing)
		x -= w / 2
	}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

func (r *Renderer) drawCenteredLabel(dst *ebiten.Image, s string, cx, cy, scale float64, clr color.RGBA) {
	if s == "" {
		return
	}
	face := &text.GoTextFace{Source: r.fontSource, Size: nodeFontSize * scale}
	op := &text.DrawOptions{}
	op.LineSpacing = nodeFontSize * scale * 1.3
	w, h := text.Measure(s, face, op.LineSpacing)
	op.GeoM.Translate(cx-w/2, cy-h/2)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

// DrawPopup paints the hover tooltip near the cursor.
func (r *Renderer) DrawPopup(dst *ebiten.Image, p *Popup) {
	if !p.Visible || p.Text == "" {
		return
	}
	face := &text.GoTextFace{Source: r.fontSource, Size: nodeFontSize}
	lineSpacing := nodeFontSize * 1.3
	w, h := text.Measure(p.Text, face, lineSpacing)
	pad := 6.0
	x, y := p.X+10, p.Y+10
	fillRoundRect(dst, x, y, w+2*pad, h+2*pad, 4, color.RGBA{255, 255, 225, 255})
	strokeRoundRect(dst, x, y, w+2*pad, h+2*pad, 4, 1, color.RGBA{128, 128, 128, 255})
	op := &text.DrawOptions{}
	op.LineSpacing = lineSpacing
	op.GeoM.Translate(x+pad, y+pad)
	op.ColorScale.ScaleWithColor(color.RGBA{0, 0, 0, 255})
	text.Draw(dst, p.Text, face, op)
}

// DrawRubberBand paints the in-progress selection rectangle.
func (r *Renderer) DrawRubberBand(dst *ebiten.Image, x, y, w, h float64) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h),
		color.RGBA{43, 124, 233, 40}, true)
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), 1,
		color.RGBA{43, 124, 233, 255}, true)
}

// DrawSlider paints the time slider track and handle along the bottom.
func (r *Renderer) DrawSlider(dst *ebiten.Image, s *Slider, opts *Options) {
	if !s.Enabled() {
		return
	}
	margin := 20.0
	trackY := float64(opts.Height) - 16
	trackW := float64(opts.Width) - 2*margin
	vector.StrokeLine(dst, float32(margin), float32(trackY), float32(margin+trackW), float32(trackY),
		2, color.RGBA{169, 169, 169, 255}, true)
	hx := margin + trackW*s.Fraction()
	vector.DrawFilledCircle(dst, float32(hx), float32(trackY), 6, color.RGBA{43, 124, 233, 255}, true)
	vector.StrokeCircle(dst, float32(hx), float32(trackY), 6, 1, color.RGBA{0, 0, 139, 255}, true)
}

// --- shape primitives built on vector.Path ---

func fillPath(dst *ebiten.Image, p *vector.Path, clr color.RGBA) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	applyColor(vs, clr)
	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.FillRuleNonZero, AntiAlias: true}
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}

func strokePath(dst *ebiten.Image, p *vector.Path, width float64, clr color.RGBA) {
	sop := &vector.StrokeOptions{Width: float32(width)}
	vs, is := p.AppendVerticesAndIndicesForStroke(nil, nil, sop)
	applyColor(vs, clr)
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}

func applyColor(vs []ebiten.Vertex, clr color.RGBA) {
	cr := float32(clr.R) / 255
	cg := float32(clr.G) / 255
	cb := float32(clr.B) / 255
	ca := float32(clr.A) / 255
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = cr
		vs[i].ColorG = cg
		vs[i].ColorB = cb
		vs[i].ColorA = ca
	}
}

func roundRectPath(x, y, w, h, r float64) *vector.Path {
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}
	var p vector.Path
	p.MoveTo(float32(x+r), float32(y))
	p.LineTo(float32(x+w-r), float32(y))
	p.ArcTo(float32(x+w), float32(y), float32(x+w), float32(y+r), float32(r))
	p.LineTo(float32(x+w), float32(y+h-r))
	p.ArcTo(float32(x+w), float32(y+h), float32(x+w-r), float32(y+h), float32(r))
	p.LineTo(float32(x+r), float32(y+h))
	p.ArcTo(float32(x), float32(y+h), float32(x), float32(y+h-r), float32(r))
	p.LineTo(float32(x), float32(y+r))
	p.ArcTo(float32(x), float32(y), float32(x+r), float32(y), float32(r))
	p.Close()
	return &p
}

func fillRoundRect(dst *ebiten.Image, x, y, w, h, r float64, clr color.RGBA) {
	fillPath(dst, roundRectPath(x, y, w, h, r), clr)
}

func strokeRoundRect(dst *ebiten.Image, x, y, w, h, r, width float64, clr color.RGBA) {
	strokePath(dst, roundRectPath(x, y, w, h, r), width, clr)
}

// ellipseKappa is the cubic Bezier control-point factor approximating a
// quarter circle.
const ellipseKappa = 0.5522847498

func ellipsePath(cx, cy, rx, ry float64) *vector.Path {
	ox := rx * ellipseKappa
	oy := ry * ellipseKappa
	var p vector.Path
	p.MoveTo(float32(cx-rx), float32(cy))
	p.CubicTo(float32(cx-rx), float32(cy-oy), float32(cx-ox), float32(cy-ry), float32(cx), float32(cy-ry))
	p.CubicTo(float32(cx+ox), float32(cy-ry), float32(cx+rx), float32(cy-oy), float32(cx+rx), float32(cy))
	p.CubicTo(float32(cx+rx), float32(cy+oy), float32(cx+ox), float32(cy+ry), float32(cx), float32(cy+ry))
	p.CubicTo(float32(cx-ox), float32(cy+ry), float32(cx-rx), float32(cy+oy), float32(cx-rx), float32(cy))
	p.Close()
	return &p
}

func strokeEllipse(dst *ebiten.Image, cx, cy, rx, ry, width float64, clr color.RGBA) {
	strokePath(dst, ellipsePath(cx, cy, rx, ry), width, clr)
}

// databasePath outlines the classic cylinder: straight sides joined by a
// bottom half-ellipse, with the top ellipse drawn separately.
func databasePath(x, y, w, h float64) *vector.Path {
	ry := h / 8
	ox := (w / 2) * ellipseKappa
	oy := ry * ellipseKappa
	cx := x + w/2
	var p vector.Path
	p.MoveTo(float32(x), float32(y+ry))
	p.LineTo(float32(x), float32(y+h-ry))
	p.CubicTo(float32(x), float32(y+h-ry+oy), float32(cx-ox), float32(y+h), float32(cx), float32(y+h))
	p.CubicTo(float32(cx+ox), float32(y+h), float32(x+w), float32(y+h-ry+oy), float32(x+w), float32(y+h-ry))
	p.LineTo(float32(x+w), float32(y+ry))
	p.CubicTo(float32(x+w), float32(y+ry-oy), float32(cx+ox), float32(y), float32(cx), float32(y))
	p.CubicTo(float32(cx-ox), float32(y), float32(x), float32(y+ry-oy), float32(x), float32(y+ry))
	p.Close()
	return &p
}

func fillDatabase(dst *ebiten.Image, x, y, w, h float64, clr color.RGBA) {
	fillPath(dst, databasePath(x, y, w, h), clr)
}

func strokeDatabase(dst *ebiten.Image, x, y, w, h, width float64, clr color.RGBA) {
	strokePath(dst, databasePath(x, y, w, h), width, clr)
	// Seam ellipse under the top rim completes the cylinder look.
	ry := h / 8
	strokeEllipse(dst, x+w/2, y+ry, w/2, ry, width, clr)
}

// drawArrowHead paints a filled triangle pointing along angle.
func drawArrowHead(dst *ebiten.Image, x, y, angle, size float64, clr color.RGBA) {
	tipX := x + math.Cos(angle)*size
	tipY := y + math.Sin(angle)*size
	leftX := x + math.Cos(angle+2.5)*size*0.6
	leftY := y + math.Sin(angle+2.5)*size*0.6
	rightX := x + math.Cos(angle-2.5)*size*0.6
	rightY := y + math.Sin(angle-2.5)*size*0.6
	var p vector.Path
	p.MoveTo(float32(tipX), float32(tipY))
	p.LineTo(float32(leftX), float32(leftY))
	p.LineTo(float32(rightX), float32(rightY))
	p.Close()
	fillPath(dst, &p, clr)
}
