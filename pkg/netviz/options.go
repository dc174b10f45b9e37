package netviz

import (
	"fmt"
	"image/color"
)

// Background describes the canvas background: a fill plus an optional
// border stroke.
type Background struct {
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64
}

// Physics bundles the simulation constants. Zero values are replaced by
// the defaults below, so embedders only override what they care about.
type Physics struct {
	Gravity       float64 // pull toward canvas center
	MinDistance   float64 // dmin of the repulsion falloff
	Stiffness     float64 // spring constant for links
	Damping       float64
	Mass          float64
	Interval      float64 // simulation tick length in seconds
	MinVelocity   float64 // below this a node counts as settled
	ForceEpsilon  float64 // residual force below this is ignored
	MaxIterations int     // stabilization cap
}

// Options is the construction-time configuration of a Viewer. All shared
// constants live here; nothing is ambient.
type Options struct {
	Width      int
	Height     int
	Stabilize  bool
	Selectable bool
	Background Background

	LinksDefaultLength float64

	NodeRadiusMin    float64
	NodeRadiusMax    float64
	LinkWidthMin     float64
	LinkWidthMax     float64
	PackageRadiusMin float64
	PackageRadiusMax float64

	// PackageDuration is the default seconds-to-traverse for packages
	// that do not carry their own duration column.
	PackageDuration float64

	// LinkAnimationSpeed is the per-tick phase advance for moving-arrow
	// and moving-dot link styles, as a fraction of the full edge.
	LinkAnimationSpeed float64

	// HoverDelay is the idle time in seconds before a tooltip shows.
	HoverDelay float64

	// LinkHitThreshold is the point-to-segment distance in pixels within
	// which a pointer counts as touching a link.
	LinkHitThreshold float64

	Physics Physics
}

func DefaultOptions() Options {
	return Options{
		Width:      600,
		Height:     500,
		Stabilize:  true,
		Selectable: true,
		Background: Background{
			Fill:        color.RGBA{255, 255, 255, 255},
			Stroke:      color.RGBA{211, 211, 211, 255},
			StrokeWidth: 1,
		},
		LinksDefaultLength: 100,
		NodeRadiusMin:      5,
		NodeRadiusMax:      20,
		LinkWidthMin:       1,
		LinkWidthMax:       15,
		PackageRadiusMin:   5,
		PackageRadiusMax:   10,
		PackageDuration:    1.0,
		LinkAnimationSpeed: 0.02,
		HoverDelay:         0.3,
		LinkHitThreshold:   10,
		Physics: Physics{
			Gravity:       0.01,
			MinDistance:   100,
			Stiffness:     0.05,
			Damping:       0.5,
			Mass:          50,
			Interval:      0.05,
			MinVelocity:   0.01,
			ForceEpsilon:  0.001,
			MaxIterations: 1000,
		},
	}
}

// applyDefaults overlays the default constants onto zero-valued fields so
// an Options literal only needs the fields it overrides. Boolean fields
// are left alone; false is a meaningful setting there.
func (o *Options) applyDefaults() {
	d := DefaultOptions()
	if o.Background == (Background{}) {
		o.Background = d.Background
	}
	if o.LinksDefaultLength == 0 {
		o.LinksDefaultLength = d.LinksDefaultLength
	}
	if o.NodeRadiusMin == 0 {
		o.NodeRadiusMin = d.NodeRadiusMin
	}
	if o.NodeRadiusMax == 0 {
		o.NodeRadiusMax = d.NodeRadiusMax
	}
	if o.LinkWidthMin == 0 {
		o.LinkWidthMin = d.LinkWidthMin
	}
	if o.LinkWidthMax == 0 {
		o.LinkWidthMax = d.LinkWidthMax
	}
	if o.PackageRadiusMin == 0 {
		o.PackageRadiusMin = d.PackageRadiusMin
	}
	if o.PackageRadiusMax == 0 {
		o.PackageRadiusMax = d.PackageRadiusMax
	}
	if o.PackageDuration == 0 {
		o.PackageDuration = d.PackageDuration
	}
	if o.LinkAnimationSpeed == 0 {
		o.LinkAnimationSpeed = d.LinkAnimationSpeed
	}
	if o.HoverDelay == 0 {
		o.HoverDelay = d.HoverDelay
	}
	if o.LinkHitThreshold == 0 {
		o.LinkHitThreshold = d.LinkHitThreshold
	}
	p, dp := &o.Physics, d.Physics
	if p.Gravity == 0 {
		p.Gravity = dp.Gravity
	}
	if p.MinDistance == 0 {
		p.MinDistance = dp.MinDistance
	}
	if p.Stiffness == 0 {
		p.Stiffness = dp.Stiffness
	}
	if p.Damping == 0 {
		p.Damping = dp.Damping
	}
	if p.Mass == 0 {
		p.Mass = dp.Mass
	}
	if p.Interval == 0 {
		p.Interval = dp.Interval
	}
	if p.MinVelocity == 0 {
		p.MinVelocity = dp.MinVelocity
	}
	if p.ForceEpsilon == 0 {
		p.ForceEpsilon = dp.ForceEpsilon
	}
	if p.MaxIterations == 0 {
		p.MaxIterations = dp.MaxIterations
	}
}

// SetBackground applies a background configuration value: either a color
// string ("white", "#1a1d23") or a map with fill/stroke/strokeWidth keys.
func (o *Options) SetBackground(value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		c, ok := ParseColor(v)
		if !ok {
			return &InvalidArgumentError{Reason: fmt.Sprintf("unknown background color %q", v)}
		}
		o.Background.Fill = c
		return nil
	case map[string]any:
		for key, raw := range v {
			switch key {
			case "fill", "stroke":
				s, ok := raw.(string)
				if !ok {
					return &InvalidArgumentError{Reason: fmt.Sprintf("background %s must be a color string", key)}
				}
				c, ok := ParseColor(s)
				if !ok {
					return &InvalidArgumentError{Reason: fmt.Sprintf("unknown background color %q", s)}
				}
				if key == "fill" {
					o.Background.Fill = c
				} else {
					o.Background.Stroke = c
				}
			case "strokeWidth":
				w, ok := raw.(float64)
				if !ok {
					return &InvalidArgumentError{Reason: "background strokeWidth must be a number"}
				}
				o.Background.StrokeWidth = w
			default:
				return &InvalidArgumentError{Reason: fmt.Sprintf("unknown background key %q", key)}
			}
		}
		return nil
	default:
		return &InvalidArgumentError{Reason: fmt.Sprintf("background must be a string or object, got %T", value)}
	}
}
