package netviz

import (
	"image/color"
	"math"
)

// NodeStyle selects the shape a node is drawn with. Dispatch happens in a
// single switch at draw time; entities never carry draw behavior.
type NodeStyle int

const (
	NodeRect NodeStyle = iota
	NodeCircle
	NodeDot
	NodeImage
	NodeText
	NodeDatabase
)

func parseNodeStyle(s string) NodeStyle {
	switch s {
	case "circle":
		return NodeCircle
	case "dot":
		return NodeDot
	case "image":
		return NodeImage
	case "text":
		return NodeText
	case "database":
		return NodeDatabase
	default:
		return NodeRect
	}
}

// TextMeasurer abstracts label measurement so geometry can be computed
// without a live rendering context.
type TextMeasurer interface {
	MeasureText(s string, size float64) (w, h float64)
}

// Node is a visual vertex. Position and velocity are in canvas space; a
// node with an explicitly supplied x or y is pinned on that axis and the
// simulation leaves it alone there.
type Node struct {
	ID    string
	Text  string
	Title string
	Group string
	Image string
	Style NodeStyle

	X, Y   float64
	XFixed bool
	YFixed bool

	Radius      float64
	RadiusFixed bool
	Value       float64
	HasValue    bool

	Timestamp    float64
	HasTimestamp bool

	Selected bool

	// Simulation state.
	VX, VY float64
	FX, FY float64

	// Cached draw geometry, computed lazily on first draw and dropped
	// whenever a property change invalidates it.
	width, height float64
	imageW        float64
	imageH        float64
	sized         bool

	groupStyle    GroupStyle
	hasGroupStyle bool
}

const nodeFontSize = 14

// apply merges the properties present in the row into the node.
func (n *Node) apply(row rowReader) {
	if s, ok := row.Str("text"); ok {
		n.Text = s
		n.sized = false
	}
	if s, ok := row.Str("title"); ok {
		n.Title = s
	}
	if s, ok := row.Str("group"); ok {
		n.Group = s
		n.hasGroupStyle = false
	}
	if s, ok := row.Str("image"); ok {
		n.Image = s
		n.sized = false
	}
	if s, ok := row.Str("style"); ok {
		n.Style = parseNodeStyle(s)
		n.sized = false
	}
	if v, ok := row.Num("x"); ok {
		n.X = v
		n.XFixed = true
	}
	if v, ok := row.Num("y"); ok {
		n.Y = v
		n.YFixed = true
	}
	if v, ok := row.Num("radius"); ok {
		n.Radius = v
		n.RadiusFixed = true
		n.sized = false
	}
	if v, ok := row.Num("value"); ok {
		n.Value = v
		n.HasValue = true
	}
	if v, ok := row.Num("timestamp"); ok {
		n.Timestamp = v
		n.HasTimestamp = true
	}
}

// rowReader is the subset of vistable.Row the entities consume.
type rowReader interface {
	Str(column string) (string, bool)
	Num(column string) (float64, bool)
}

// setScaledRadius applies a value-derived radius without marking it fixed.
func (n *Node) setScaledRadius(r float64) {
	n.Radius = r
	n.sized = false
}

// IsMoving reports whether the node still moves perceptibly: velocity above
// vmin on either axis, or a residual force above eps on an unpinned axis.
func (n *Node) IsMoving(vmin, eps float64) bool {
	if math.Abs(n.VX) > vmin || math.Abs(n.VY) > vmin {
		return true
	}
	if !n.XFixed && math.Abs(n.FX) > eps {
		return true
	}
	if !n.YFixed && math.Abs(n.FY) > eps {
		return true
	}
	return false
}

// computeSize fills the cached box for the node's current style.
func (n *Node) computeSize(m TextMeasurer) {
	if n.sized {
		return
	}
	label := n.Text
	if label == "" {
		label = n.ID
	}
	switch n.Style {
	case NodeDot:
		n.width = 2 * n.Radius
		n.height = 2 * n.Radius
	case NodeImage:
		if n.imageW > 0 && n.imageH > 0 {
			n.width = n.imageW
			n.height = n.imageH
		} else {
			n.width = 2 * n.Radius
			n.height = 2 * n.Radius
		}
	case NodeCircle:
		w, h := measure(m, label)
		d := math.Max(w, h) + 10
		n.width = d
		n.height = d
	case NodeDatabase:
		w, h := measure(m, label)
		s := math.Max(w+10, h*2)
		n.width = s
		n.height = s
	case NodeText:
		w, h := measure(m, label)
		n.width = w + 8
		n.height = h + 8
	default: // NodeRect
		w, h := measure(m, label)
		n.width = w + 16
		n.height = h + 8
	}
	n.sized = true
}

func measure(m TextMeasurer, label string) (float64, float64) {
	if m == nil || label == "" {
		return float64(len(label)) * nodeFontSize * 0.6, nodeFontSize
	}
	return m.MeasureText(label, nodeFontSize)
}

// Bounds returns the axis-aligned box around the node center in canvas
// space. Hit-testing uses this for every style.
func (n *Node) Bounds() (left, top, width, height float64) {
	w, h := n.width, n.height
	if w == 0 {
		w = 2 * n.Radius
	}
	if h == 0 {
		h = 2 * n.Radius
	}
	return n.X - w/2, n.Y - h/2, w, h
}

// Contains hit-tests a canvas-space point against the node's box.
func (n *Node) Contains(x, y float64) bool {
	left, top, w, h := n.Bounds()
	return x >= left && x <= left+w && y >= top && y <= top+h
}

// groupColors resolves (and memoizes) the node's palette entry.
func (n *Node) groupColors(groups *Groups) GroupStyle {
	if !n.hasGroupStyle {
		n.groupStyle = groups.Get(n.Group)
		n.hasGroupStyle = true
	}
	return n.groupStyle
}

// strokeColor is the node outline, heavier and darker when selected.
func (n *Node) strokeColor(groups *Groups) color.RGBA {
	return n.groupColors(groups).Stroke
}

func (n *Node) fillColor(groups *Groups) color.RGBA {
	gs := n.groupColors(groups)
	if n.Selected {
		return gs.Highlight
	}
	return gs.Fill
}
