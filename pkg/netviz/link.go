package netviz

import (
	"image/color"
	"math"
)

// LinkStyle selects how an edge is drawn. The moving styles carry phase
// state that the animation scheduler advances each tick.
type LinkStyle int

const (
	LinkLine LinkStyle = iota
	LinkArrow
	LinkMovingArrow
	LinkMovingDot
)

func parseLinkStyle(s string) LinkStyle {
	switch s {
	case "arrow":
		return LinkArrow
	case "arrow-end", "moving-arrow", "arrow-moving":
		return LinkMovingArrow
	case "dot-line", "moving-dot", "dot-moving":
		return LinkMovingDot
	default:
		return LinkLine
	}
}

// Link is an edge between two live nodes. It holds non-owning references to
// its endpoints for position lookup; the scene owns all entities.
type Link struct {
	ID    string
	HasID bool

	FromID string
	ToID   string
	From   *Node
	To     *Node

	Style LinkStyle
	Title string
	Color color.RGBA

	Width      float64
	WidthFixed bool

	// Length is the spring rest length used by the layout physics.
	Length      float64
	LengthFixed bool
	Stiffness   float64

	Value    float64
	HasValue bool

	Timestamp    float64
	HasTimestamp bool

	// Phases are the animation progress fractions in [0,1) of the moving
	// styles, advanced each tick and wrapped.
	Phases []float64
}

func (l *Link) apply(row rowReader) {
	if s, ok := row.Str("style"); ok {
		l.Style = parseLinkStyle(s)
		if l.Animated() && len(l.Phases) == 0 {
			l.Phases = []float64{0}
		}
	}
	if s, ok := row.Str("title"); ok {
		l.Title = s
	}
	if s, ok := row.Str("color"); ok {
		l.Color = parseColorOr(s, l.Color)
	}
	if v, ok := row.Num("width"); ok {
		l.Width = v
		l.WidthFixed = true
	}
	if v, ok := row.Num("length"); ok {
		l.Length = v
		l.LengthFixed = true
	}
	if v, ok := row.Num("value"); ok {
		l.Value = v
		l.HasValue = true
	}
	if v, ok := row.Num("timestamp"); ok {
		l.Timestamp = v
		l.HasTimestamp = true
	}
}

// Animated reports whether the link needs continuous redraws.
func (l *Link) Animated() bool {
	return l.Style == LinkMovingArrow || l.Style == LinkMovingDot
}

// AdvancePhases moves every animation fraction forward and wraps at 1.
func (l *Link) AdvancePhases(step float64) {
	for i := range l.Phases {
		l.Phases[i] += step
		for l.Phases[i] >= 1 {
			l.Phases[i] -= 1
		}
	}
}

// CurrentLength is the live distance between the endpoints.
func (l *Link) CurrentLength() float64 {
	dx := l.To.X - l.From.X
	dy := l.To.Y - l.From.Y
	return math.Hypot(dx, dy)
}

// DistanceTo returns the distance from a canvas-space point to the link
// segment, treating the edge as straight regardless of how it is drawn.
func (l *Link) DistanceTo(px, py float64) float64 {
	return pointSegmentDistance(px, py, l.From.X, l.From.Y, l.To.X, l.To.Y)
}

func pointSegmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}

// setScaledWidth applies a value-derived width without marking it fixed.
func (l *Link) setScaledWidth(w float64) {
	l.Width = w
}
