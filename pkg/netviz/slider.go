package netviz

import "sort"

// Slider is the playback control bound to the timestamp range of the
// loaded tables. Stepping or dragging it re-filters the visible entity
// sets at the chosen cutoff.
type Slider struct {
	timestamps []float64
	index      int
	playing    bool

	// ticks between auto-play steps, derived from the play rate.
	stepTicks int
	tickCount int

	// OnChange is invoked with the new cutoff after every step or drag.
	OnChange func(ts float64)
}

func NewSlider(timestamps []float64) *Slider {
	ts := append([]float64(nil), timestamps...)
	sort.Float64s(ts)
	return &Slider{timestamps: ts, stepTicks: 10}
}

// Enabled reports whether there is anything to slide over.
func (s *Slider) Enabled() bool { return len(s.timestamps) > 1 }

func (s *Slider) Range() (start, end float64, ok bool) {
	if len(s.timestamps) == 0 {
		return 0, 0, false
	}
	return s.timestamps[0], s.timestamps[len(s.timestamps)-1], true
}

func (s *Slider) Current() float64 {
	if len(s.timestamps) == 0 {
		return 0
	}
	return s.timestamps[s.index]
}

// Fraction is the slider handle position in [0,1].
func (s *Slider) Fraction() float64 {
	if len(s.timestamps) < 2 {
		return 1
	}
	return float64(s.index) / float64(len(s.timestamps)-1)
}

// SetTimestamp jumps to the latest timestamp at or before ts. A ts
// earlier than every loaded timestamp clamps to the first one; the
// cutoff never moves below the earliest data point.
func (s *Slider) SetTimestamp(ts float64) {
	idx := 0
	for i, v := range s.timestamps {
		if v <= ts {
			idx = i
		}
	}
	s.moveTo(idx)
}

// SetFraction positions the handle from a drag, snapping to the nearest
// distinct timestamp.
func (s *Slider) SetFraction(f float64) {
	if len(s.timestamps) < 2 {
		return
	}
	idx := int(clamp01(f)*float64(len(s.timestamps)-1) + 0.5)
	s.moveTo(idx)
}

// Step advances to the next timestamp, wrapping to the start when playing
// past the end.
func (s *Slider) Step() {
	if len(s.timestamps) == 0 {
		return
	}
	s.moveTo((s.index + 1) % len(s.timestamps))
}

func (s *Slider) StepBack() {
	if len(s.timestamps) == 0 {
		return
	}
	idx := s.index - 1
	if idx < 0 {
		idx = len(s.timestamps) - 1
	}
	s.moveTo(idx)
}

func (s *Slider) moveTo(idx int) {
	if idx == s.index {
		return
	}
	s.index = idx
	if s.OnChange != nil {
		s.OnChange(s.timestamps[idx])
	}
}

func (s *Slider) Play()         { s.playing = true }
func (s *Slider) StopPlayback() { s.playing = false }
func (s *Slider) Playing() bool { return s.playing }

// Tick drives auto-play; one step every stepTicks animation periods.
func (s *Slider) Tick() {
	if !s.playing || !s.Enabled() {
		return
	}
	s.tickCount++
	if s.tickCount >= s.stepTicks {
		s.tickCount = 0
		s.Step()
	}
}
