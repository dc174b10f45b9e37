package netviz

import "image/color"

// PackageStyle selects how a traveling payload marker is drawn.
type PackageStyle int

const (
	PackageDot PackageStyle = iota
	PackageImage
)

func parsePackageStyle(s string) PackageStyle {
	if s == "image" {
		return PackageImage
	}
	return PackageDot
}

// Package is a transient marker moving from one node to another along the
// straight line between them. It rides on top of the layout physics and
// never influences it.
type Package struct {
	ID    string
	HasID bool

	FromID string
	ToID   string
	From   *Node
	To     *Node

	Style PackageStyle
	Image string
	Title string
	Color color.RGBA

	Radius      float64
	RadiusFixed bool

	Value    float64
	HasValue bool

	Timestamp    float64
	HasTimestamp bool

	// Progress is the traversal fraction in [0,1]. AutoProgress holds
	// unless a progress value was supplied explicitly, in which case the
	// embedder drives the package itself.
	Progress     float64
	AutoProgress bool

	// Duration is the seconds a full traversal takes under auto-progress.
	Duration float64
}

func (p *Package) apply(row rowReader) {
	if s, ok := row.Str("style"); ok {
		p.Style = parsePackageStyle(s)
	}
	if s, ok := row.Str("image"); ok {
		p.Image = s
	}
	if s, ok := row.Str("title"); ok {
		p.Title = s
	}
	if s, ok := row.Str("color"); ok {
		p.Color = parseColorOr(s, p.Color)
	}
	if v, ok := row.Num("radius"); ok {
		p.Radius = v
		p.RadiusFixed = true
	}
	if v, ok := row.Num("value"); ok {
		p.Value = v
		p.HasValue = true
	}
	if v, ok := row.Num("timestamp"); ok {
		p.Timestamp = v
		p.HasTimestamp = true
	}
	if v, ok := row.Num("duration"); ok && v > 0 {
		p.Duration = v
	}
	if v, ok := row.Num("progress"); ok {
		p.Progress = clamp01(v)
		p.AutoProgress = false
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Advance moves an auto-progress package forward by interval seconds.
func (p *Package) Advance(interval float64) {
	if !p.AutoProgress {
		return
	}
	p.Progress += interval / p.Duration
	if p.Progress > 1 {
		p.Progress = 1
	}
}

// Finished reports whether the package completed its traversal and should
// be removed. Packages with pinned progress are never auto-removed.
func (p *Package) Finished() bool {
	return p.AutoProgress && p.Progress >= 1
}

// Position interpolates the package's canvas position between endpoints.
func (p *Package) Position() (x, y float64) {
	x = p.From.X + (p.To.X-p.From.X)*p.Progress
	y = p.From.Y + (p.To.Y-p.From.Y)*p.Progress
	return x, y
}

// Contains hit-tests a canvas-space point against the package's box.
func (p *Package) Contains(x, y float64) bool {
	cx, cy := p.Position()
	return x >= cx-p.Radius && x <= cx+p.Radius && y >= cy-p.Radius && y <= cy+p.Radius
}

func (p *Package) setScaledRadius(r float64) {
	p.Radius = r
}
