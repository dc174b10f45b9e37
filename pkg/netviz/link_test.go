package netviz

import (
	"math"
	"testing"
)

func TestPointSegmentDistance(t *testing.T) {
	tests := []struct {
		name           string
		px, py         float64
		x1, y1, x2, y2 float64
		want           float64
	}{
		{"above midpoint", 50, 10, 0, 0, 100, 0, 10},
		{"on segment", 25, 0, 0, 0, 100, 0, 0},
		{"beyond end clamps to endpoint", 110, 0, 0, 0, 100, 0, 10},
		{"before start clamps to endpoint", -3, 4, 0, 0, 100, 0, 5},
		{"degenerate segment", 3, 4, 0, 0, 0, 0, 5},
		{"diagonal", 0, 0, -10, 10, 10, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pointSegmentDistance(tt.px, tt.py, tt.x1, tt.y1, tt.x2, tt.y2)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("pointSegmentDistance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLinkStyleAliases(t *testing.T) {
	tests := []struct {
		in   string
		want LinkStyle
	}{
		{"line", LinkLine},
		{"", LinkLine},
		{"arrow", LinkArrow},
		{"moving-arrow", LinkMovingArrow},
		{"arrow-end", LinkMovingArrow},
		{"moving-dot", LinkMovingDot},
		{"dot-line", LinkMovingDot},
		{"something-else", LinkLine},
	}
	for _, tt := range tests {
		if got := parseLinkStyle(tt.in); got != tt.want {
			t.Errorf("parseLinkStyle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAdvancePhasesWraps(t *testing.T) {
	l := &Link{Style: LinkMovingDot, Phases: []float64{0.95, 0.5}}
	l.AdvancePhases(0.1)
	if math.Abs(l.Phases[0]-0.05) > 1e-9 {
		t.Errorf("phase 0 = %v, want wrap to 0.05", l.Phases[0])
	}
	if math.Abs(l.Phases[1]-0.6) > 1e-9 {
		t.Errorf("phase 1 = %v, want 0.6", l.Phases[1])
	}
}
