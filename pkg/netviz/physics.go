package netviz

import "math"

// The layout physics: every tick accumulates gravity, pairwise repulsion
// and spring forces into each node, then integrates with semi-implicit
// Euler and damping. Repulsion visits every unordered node pair, so the
// simulation is O(n²) per tick and intended for scenes up to a few
// hundred nodes.

// CalculateForces overwrites each node's force accumulator for the current
// layout.
func (s *Scene) CalculateForces() {
	p := &s.opts.Physics
	centerX := float64(s.opts.Width) / 2
	centerY := float64(s.opts.Height) / 2

	// Gravity: a small constant pull toward the canvas center.
	for _, n := range s.Nodes {
		dx := centerX - n.X
		dy := centerY - n.Y
		angle := math.Atan2(dy, dx)
		n.FX = math.Cos(angle) * p.Gravity
		n.FY = math.Sin(angle) * p.Gravity
	}

	// Repulsion: exponential falloff between every unordered pair.
	dmin2 := p.MinDistance * p.MinDistance
	for i := 0; i < len(s.Nodes); i++ {
		for j := i + 1; j < len(s.Nodes); j++ {
			a, b := s.Nodes[i], s.Nodes[j]
			dx := b.X - a.X
			dy := b.Y - a.Y
			d2 := dx*dx + dy*dy
			f := 2 * math.Exp(-5*d2/dmin2)
			angle := math.Atan2(dy, dx)
			fx := math.Cos(angle) * f
			fy := math.Sin(angle) * f
			a.FX -= fx
			a.FY -= fy
			b.FX += fx
			b.FY += fy
		}
	}

	// Springs: Hooke's law toward each link's rest length.
	for _, l := range s.Links {
		length := l.CurrentLength()
		f := l.Stiffness * (l.Length - length)
		angle := math.Atan2(l.To.Y-l.From.Y, l.To.X-l.From.X)
		fx := math.Cos(angle) * f
		fy := math.Sin(angle) * f
		l.From.FX -= fx
		l.From.FY -= fy
		l.To.FX += fx
		l.To.FY += fy
	}
}

// DiscreteStep integrates one tick. Pinned axes are skipped and their
// velocity zeroed so a released node does not fly off.
func (s *Scene) DiscreteStep() {
	p := &s.opts.Physics
	for _, n := range s.Nodes {
		if n.XFixed {
			n.VX = 0
		} else {
			dampingX := -p.Damping * n.VX
			ax := (n.FX + dampingX) / p.Mass
			n.VX += ax * p.Interval
			n.X += n.VX * p.Interval
		}
		if n.YFixed {
			n.VY = 0
		} else {
			dampingY := -p.Damping * n.VY
			ay := (n.FY + dampingY) / p.Mass
			n.VY += ay * p.Interval
			n.Y += n.VY * p.Interval
		}
	}
}

// IsMoving reports whether any node still moves perceptibly.
func (s *Scene) IsMoving() bool {
	p := &s.opts.Physics
	for _, n := range s.Nodes {
		if n.IsMoving(p.MinVelocity, p.ForceEpsilon) {
			return true
		}
	}
	return false
}

// Stabilize runs the simulation before first display until the layout
// settles or the iteration cap is hit, and returns the iterations used.
// Hitting the cap is not an error, just a truncated layout.
func (s *Scene) Stabilize() int {
	max := s.opts.Physics.MaxIterations
	for i := 0; i < max; i++ {
		s.CalculateForces()
		s.DiscreteStep()
		if !s.IsMoving() {
			return i + 1
		}
	}
	return max
}
