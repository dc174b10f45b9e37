package netviz

import "testing"

func TestSliderDisabledWithFewTimestamps(t *testing.T) {
	if NewSlider(nil).Enabled() {
		t.Error("empty slider should be disabled")
	}
	if NewSlider([]float64{5}).Enabled() {
		t.Error("single-timestamp slider should be disabled")
	}
	if !NewSlider([]float64{1, 2}).Enabled() {
		t.Error("two timestamps should enable the slider")
	}
}

func TestSliderStepWraps(t *testing.T) {
	var seen []float64
	s := NewSlider([]float64{1, 2, 3})
	s.OnChange = func(ts float64) { seen = append(seen, ts) }

	s.Step()
	s.Step()
	s.Step() // wraps back to the first timestamp
	want := []float64{2, 3, 1}
	if len(seen) != len(want) {
		t.Fatalf("OnChange fired %d times, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("step %d reached %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestSliderStepBack(t *testing.T) {
	s := NewSlider([]float64{1, 2, 3})
	s.StepBack()
	if s.Current() != 3 {
		t.Errorf("StepBack from the start = %v, want wrap to 3", s.Current())
	}
}

func TestSliderSetTimestamp(t *testing.T) {
	s := NewSlider([]float64{10, 20, 30})
	s.SetTimestamp(25)
	if s.Current() != 20 {
		t.Errorf("SetTimestamp(25) = %v, want the latest at or before, 20", s.Current())
	}
	s.SetTimestamp(5)
	if s.Current() != 10 {
		t.Errorf("SetTimestamp(5) = %v, want clamp to first", s.Current())
	}
}

func TestSliderSetFractionSnaps(t *testing.T) {
	s := NewSlider([]float64{0, 10, 20, 30})
	s.SetFraction(0.4) // nearest index is 1
	if s.Current() != 10 {
		t.Errorf("SetFraction(0.4) = %v, want 10", s.Current())
	}
	s.SetFraction(2.0) // out of range clamps to the end
	if s.Current() != 30 {
		t.Errorf("SetFraction(2.0) = %v, want 30", s.Current())
	}
	if s.Fraction() != 1 {
		t.Errorf("Fraction() = %v, want 1 at the end", s.Fraction())
	}
}

func TestSliderUnsortedInput(t *testing.T) {
	s := NewSlider([]float64{30, 10, 20})
	start, end, ok := s.Range()
	if !ok || start != 10 || end != 30 {
		t.Errorf("Range() = (%v, %v, %v), want (10, 30, true)", start, end, ok)
	}
}

func TestSliderAutoPlay(t *testing.T) {
	steps := 0
	s := NewSlider([]float64{1, 2, 3})
	s.OnChange = func(float64) { steps++ }

	// Not playing: ticks do nothing.
	for i := 0; i < 30; i++ {
		s.Tick()
	}
	if steps != 0 {
		t.Fatalf("slider stepped %d times while stopped", steps)
	}

	s.Play()
	if !s.Playing() {
		t.Fatal("Playing() false after Play")
	}
	for i := 0; i < 30; i++ {
		s.Tick()
	}
	if steps != 3 {
		t.Errorf("30 ticks at 10 ticks/step gave %d steps, want 3", steps)
	}
	s.StopPlayback()
	for i := 0; i < 30; i++ {
		s.Tick()
	}
	if steps != 3 {
		t.Error("slider kept stepping after StopPlayback")
	}
}
