package schedule

import "testing"

func TestPlanBasic(t *testing.T) {
	s := Plan(1.0, 20, 0, 0)

	if s.FrameCount != 20 {
		t.Errorf("FrameCount = %d, want 20", s.FrameCount)
	}
	if s.FrameDurationMS != 50 {
		t.Errorf("FrameDurationMS = %d, want 50", s.FrameDurationMS)
	}
	if len(s.Samples) != s.FrameCount {
		t.Fatalf("len(Samples) = %d, want %d", len(s.Samples), s.FrameCount)
	}
	if first := s.Samples[0]; first.Progress != 0 || first.Phase != PhaseActive {
		t.Errorf("first sample = %+v, want progress 0, active", first)
	}
	if last := s.Samples[len(s.Samples)-1]; last.Progress != 1.0 {
		t.Errorf("last active progress = %v, want exactly 1.0", last.Progress)
	}
}

func TestPlanMinimumFrameFloor(t *testing.T) {
	// floor(0.2 * 20) = 4 raw frames, clamped up to the floor of 10.
	s := Plan(0.2, 20, 0, 0)
	if s.FrameCount != 10 {
		t.Errorf("FrameCount = %d, want 10", s.FrameCount)
	}
}

func TestPlanDelayFloor(t *testing.T) {
	tests := []struct {
		name    string
		length  float64
		fps     int
		delayMS int
	}{
		{"20fps hits floor exactly", 1.0, 20, 50},
		{"30fps clamped up to floor", 3.0, 30, 50},
		{"5fps above floor", 2.0, 5, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Plan(tt.length, tt.fps, 0, 0)
			if s.FrameDurationMS != tt.delayMS {
				t.Errorf("FrameDurationMS = %d, want %d", s.FrameDurationMS, tt.delayMS)
			}
		})
	}
}

func TestPlanPhases(t *testing.T) {
	s := Plan(1.0, 20, 0.5, 0.5)

	if s.FrameCount != 40 {
		t.Fatalf("FrameCount = %d, want 40", s.FrameCount)
	}

	var leadIn, active, leadOut int
	for i, sm := range s.Samples {
		switch sm.Phase {
		case PhaseLeadIn:
			leadIn++
			if sm.Progress != 0 {
				t.Errorf("sample %d: lead-in progress = %v, want 0", i, sm.Progress)
			}
		case PhaseActive:
			active++
		case PhaseLeadOut:
			leadOut++
			if sm.Progress != 1 {
				t.Errorf("sample %d: lead-out progress = %v, want 1", i, sm.Progress)
			}
		}
	}
	if leadIn != 10 || active != 20 || leadOut != 10 {
		t.Errorf("phase split = %d/%d/%d, want 10/20/10", leadIn, active, leadOut)
	}

	// Phases appear in order.
	prev := PhaseLeadIn
	for i, sm := range s.Samples {
		if sm.Phase < prev {
			t.Errorf("sample %d: phase %v after %v", i, sm.Phase, prev)
		}
		prev = sm.Phase
	}
}

func TestPlanActiveProgressMonotone(t *testing.T) {
	s := Plan(1.65, 20, 0.3, 0)
	prev := -1.0
	lastActive := -1
	for i, sm := range s.Samples {
		if sm.Phase != PhaseActive {
			continue
		}
		if sm.Progress < prev {
			t.Errorf("sample %d: progress %v decreased from %v", i, sm.Progress, prev)
		}
		prev = sm.Progress
		lastActive = i
	}
	if lastActive < 0 {
		t.Fatal("no active samples")
	}
	if s.Samples[lastActive].Progress != 1.0 {
		t.Errorf("final active progress = %v, want exactly 1.0", s.Samples[lastActive].Progress)
	}
}

func TestPlanZeroLength(t *testing.T) {
	s := Plan(0, 20, 0, 0)

	if s.FrameCount != 10 {
		t.Errorf("FrameCount = %d, want 10", s.FrameCount)
	}
	for i, sm := range s.Samples {
		if sm.Progress != 0 {
			t.Errorf("sample %d: progress = %v, want 0", i, sm.Progress)
		}
	}
}

func TestPlanFrameCountMonotone(t *testing.T) {
	lengths := []float64{0.1, 0.5, 1.0, 1.65, 3.0, 10.0}
	rates := []int{5, 10, 20, 30}

	for _, fps := range rates {
		prev := 0
		for _, l := range lengths {
			s := Plan(l, fps, 0, 0)
			if s.FrameCount < 10 {
				t.Errorf("Plan(%v, %d): FrameCount %d below floor", l, fps, s.FrameCount)
			}
			if s.FrameCount < prev {
				t.Errorf("Plan(%v, %d): FrameCount %d decreased (prev %d)", l, fps, s.FrameCount, prev)
			}
			prev = s.FrameCount
		}
	}
	for _, l := range lengths {
		prev := 0
		for _, fps := range rates {
			s := Plan(l, fps, 0, 0)
			if s.FrameCount < prev {
				t.Errorf("Plan(%v, %d): FrameCount %d decreased in fps (prev %d)", l, fps, s.FrameCount, prev)
			}
			prev = s.FrameCount
		}
	}
}
