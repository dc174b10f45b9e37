package netviz

import (
	"testing"

	"github.com/rdvisser/socionet/pkg/vistable"
)

func TestSchedulerStartIdempotent(t *testing.T) {
	opts := DefaultOptions()
	s := NewScene(&opts)
	sched := NewScheduler(s, &opts)

	sched.Start()
	sched.Start()
	sched.Start()
	if !sched.Running() {
		t.Fatal("scheduler not running after Start")
	}
	sched.Stop()
	if sched.Running() {
		t.Fatal("scheduler still running after Stop")
	}
}

func TestSchedulerRunsUntilSettled(t *testing.T) {
	opts := DefaultOptions()
	s := twoNodeScene(t, &opts, 100)
	sched := NewScheduler(s, &opts)

	sched.Start()
	if !sched.Running() {
		t.Fatal("stretched link should leave the scheduler running")
	}

	const maxTicks = 200000
	ticks := 0
	for sched.Running() && ticks < maxTicks {
		sched.Tick()
		ticks++
	}
	if sched.Running() {
		t.Fatalf("scheduler still running after %d ticks", maxTicks)
	}
	if s.IsMoving() {
		t.Fatal("scheduler went idle while nodes still move")
	}

	// Ticks while idle are no-ops.
	x := s.Nodes[0].X
	sched.Tick()
	if s.Nodes[0].X != x {
		t.Error("idle tick moved a node")
	}
}

func TestSchedulerRemovesFinishedPackages(t *testing.T) {
	opts := DefaultOptions()
	s := NewScene(&opts)
	nodes := vistable.New()
	nodes.AddRow(vistable.Row{"id": 1.0, "x": 0.0, "y": 0.0})
	nodes.AddRow(vistable.Row{"id": 2.0, "x": 100.0, "y": 0.0})
	if err := s.SetNodes(nodes); err != nil {
		t.Fatalf("SetNodes: %v", err)
	}
	pkgs := vistable.New()
	pkgs.AddRow(vistable.Row{"from": 1.0, "to": 2.0, "duration": 0.2})
	if err := s.SetPackages(pkgs); err != nil {
		t.Fatalf("SetPackages: %v", err)
	}

	sched := NewScheduler(s, &opts)
	sched.Start()

	// duration 0.2s at a 0.05s interval: gone after four ticks.
	for i := 0; i < 4; i++ {
		if len(s.Packages) != 1 {
			t.Fatalf("tick %d: package removed early", i)
		}
		sched.Tick()
	}
	if len(s.Packages) != 0 {
		t.Fatalf("package not removed, progress = %v", s.Packages[0].Progress)
	}
	if sched.Running() {
		t.Error("scheduler should idle once the last package finishes")
	}
}

func TestSchedulerKeepsPinnedProgressPackages(t *testing.T) {
	opts := DefaultOptions()
	s := NewScene(&opts)
	nodes := vistable.New()
	nodes.AddRow(vistable.Row{"id": 1.0, "x": 0.0, "y": 0.0})
	nodes.AddRow(vistable.Row{"id": 2.0, "x": 100.0, "y": 0.0})
	if err := s.SetNodes(nodes); err != nil {
		t.Fatalf("SetNodes: %v", err)
	}
	pkgs := vistable.New()
	pkgs.AddRow(vistable.Row{"from": 1.0, "to": 2.0, "progress": 1.0})
	if err := s.SetPackages(pkgs); err != nil {
		t.Fatalf("SetPackages: %v", err)
	}

	sched := NewScheduler(s, &opts)
	sched.Start()
	for i := 0; i < 10; i++ {
		sched.Tick()
	}
	if len(s.Packages) != 1 {
		t.Fatal("package with embedder-driven progress was removed")
	}
}

func TestSchedulerKeepsRunningForAnimatedLinks(t *testing.T) {
	opts := DefaultOptions()
	s := NewScene(&opts)
	nodes := vistable.New()
	nodes.AddRow(vistable.Row{"id": 1.0, "x": 0.0, "y": 0.0})
	nodes.AddRow(vistable.Row{"id": 2.0, "x": 100.0, "y": 0.0})
	if err := s.SetNodes(nodes); err != nil {
		t.Fatalf("SetNodes: %v", err)
	}
	links := vistable.New()
	links.AddRow(vistable.Row{"from": 1.0, "to": 2.0, "style": "moving-dot"})
	if err := s.SetLinks(links); err != nil {
		t.Fatalf("SetLinks: %v", err)
	}

	sched := NewScheduler(s, &opts)
	sched.Start()
	for i := 0; i < 100; i++ {
		sched.Tick()
		if !sched.Running() {
			t.Fatal("animated link must keep the scheduler running")
		}
	}
	for _, phase := range s.Links[0].Phases {
		if phase < 0 || phase >= 1 {
			t.Errorf("phase %v outside [0, 1)", phase)
		}
	}
}

func TestConsumeRedraw(t *testing.T) {
	opts := DefaultOptions()
	s := NewScene(&opts)
	sched := NewScheduler(s, &opts)

	// A fresh scheduler owes the first paint.
	if !sched.ConsumeRedraw() {
		t.Fatal("first ConsumeRedraw should report dirty")
	}
	if sched.ConsumeRedraw() {
		t.Fatal("flag should clear after consumption")
	}
	sched.RequestRedraw()
	if !sched.ConsumeRedraw() {
		t.Fatal("RequestRedraw should mark dirty")
	}
}
