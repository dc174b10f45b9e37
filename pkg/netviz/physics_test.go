package netviz

import (
	"math"
	"testing"

	"github.com/rdvisser/socionet/pkg/vistable"
)

func twoNodeScene(t *testing.T, opts *Options, linkLength float64) *Scene {
	t.Helper()
	s := NewScene(opts)
	nodes := vistable.New()
	nodes.AddRow(vistable.Row{"id": 1.0, "x": 100.0, "y": 250.0})
	nodes.AddRow(vistable.Row{"id": 2.0, "x": 500.0, "y": 250.0})
	if err := s.SetNodes(nodes); err != nil {
		t.Fatalf("SetNodes: %v", err)
	}
	// Unpin so the simulation may move them.
	for _, n := range s.Nodes {
		n.XFixed = false
		n.YFixed = false
	}
	links := vistable.New()
	links.AddRow(vistable.Row{"from": 1.0, "to": 2.0, "length": linkLength})
	if err := s.SetLinks(links); err != nil {
		t.Fatalf("SetLinks: %v", err)
	}
	return s
}

func TestSpringForcesPullTowardRestLength(t *testing.T) {
	opts := DefaultOptions()
	s := twoNodeScene(t, &opts, 100)

	s.CalculateForces()
	// The nodes sit 400 apart with a rest length of 100, so the spring
	// pulls them toward each other.
	if s.Nodes[0].FX <= 0 {
		t.Errorf("left node FX = %v, want > 0 (pull right)", s.Nodes[0].FX)
	}
	if s.Nodes[1].FX >= 0 {
		t.Errorf("right node FX = %v, want < 0 (pull left)", s.Nodes[1].FX)
	}
}

func TestRepulsionPushesApart(t *testing.T) {
	opts := DefaultOptions()
	s := NewScene(&opts)
	nodes := vistable.New()
	nodes.AddRow(vistable.Row{"id": 1.0, "x": 295.0, "y": 250.0})
	nodes.AddRow(vistable.Row{"id": 2.0, "x": 305.0, "y": 250.0})
	if err := s.SetNodes(nodes); err != nil {
		t.Fatalf("SetNodes: %v", err)
	}

	s.CalculateForces()
	// 10 apart with no link: repulsion dominates the tiny gravity pull.
	if s.Nodes[0].FX >= 0 {
		t.Errorf("left node FX = %v, want < 0 (push left)", s.Nodes[0].FX)
	}
	if s.Nodes[1].FX <= 0 {
		t.Errorf("right node FX = %v, want > 0 (push right)", s.Nodes[1].FX)
	}
}

func TestPinnedAxesDoNotMove(t *testing.T) {
	opts := DefaultOptions()
	s := twoNodeScene(t, &opts, 100)
	n := s.Nodes[0]
	n.XFixed = true
	n.YFixed = true
	x, y := n.X, n.Y

	for i := 0; i < 50; i++ {
		s.CalculateForces()
		s.DiscreteStep()
	}
	if n.X != x || n.Y != y {
		t.Errorf("pinned node moved from (%v, %v) to (%v, %v)", x, y, n.X, n.Y)
	}
	if n.VX != 0 || n.VY != 0 {
		t.Errorf("pinned node has velocity (%v, %v), want zero", n.VX, n.VY)
	}
}

func TestStabilizeConverges(t *testing.T) {
	opts := DefaultOptions()
	opts.Physics.MaxIterations = 100000
	s := twoNodeScene(t, &opts, 100)

	iters := s.Stabilize()
	if iters >= opts.Physics.MaxIterations {
		t.Fatalf("layout did not settle within %d iterations", opts.Physics.MaxIterations)
	}
	if s.IsMoving() {
		t.Fatal("scene still moving after Stabilize returned early")
	}

	// The settled distance sits near the rest length. Gravity compresses
	// the spring a little, so allow a generous band.
	d := math.Hypot(s.Nodes[1].X-s.Nodes[0].X, s.Nodes[1].Y-s.Nodes[0].Y)
	if d < 50 || d > 150 {
		t.Errorf("settled distance = %v, want near rest length 100", d)
	}
}

func TestStabilizeCapIsNotAnError(t *testing.T) {
	opts := DefaultOptions()
	opts.Physics.MaxIterations = 3
	s := twoNodeScene(t, &opts, 100)

	if iters := s.Stabilize(); iters != 3 {
		t.Errorf("Stabilize() = %d iterations, want the cap 3", iters)
	}
}

func TestGravityPullsTowardCenter(t *testing.T) {
	opts := DefaultOptions()
	s := NewScene(&opts)
	nodes := vistable.New()
	nodes.AddRow(vistable.Row{"id": 1.0, "x": 0.0, "y": 0.0})
	if err := s.SetNodes(nodes); err != nil {
		t.Fatalf("SetNodes: %v", err)
	}

	s.CalculateForces()
	n := s.Nodes[0]
	if n.FX <= 0 || n.FY <= 0 {
		t.Errorf("force = (%v, %v), want a pull toward the canvas center", n.FX, n.FY)
	}
	mag := math.Hypot(n.FX, n.FY)
	if math.Abs(mag-opts.Physics.Gravity) > 1e-9 {
		t.Errorf("gravity magnitude = %v, want %v", mag, opts.Physics.Gravity)
	}
}
