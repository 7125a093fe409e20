package arrivals

import (
	"math/rand"
	"testing"
	"time"
)

func testSynthesizer(seed int64, now time.Time) *Synthesizer {
	return &Synthesizer{
		rng: rand.New(rand.NewSource(seed)),
		now: func() time.Time { return now },
	}
}

func TestSynthesizerBounds(t *testing.T) {
	now := time.Unix(1700000000, 0)
	lines := []string{"1", "2", "3"}

	for seed := int64(0); seed < 20; seed++ {
		s := testSynthesizer(seed, now)
		got := s.ForLines(lines)

		perLine := map[string]int{}
		for _, a := range got {
			perLine[a.Line]++

			if !a.Realtime {
				t.Fatalf("seed %d: generated arrival must look realtime: %+v", seed, a)
			}
			lead := a.Time.Sub(now)
			if lead < 2*time.Minute || lead > 32*time.Minute {
				t.Fatalf("seed %d: lead %v outside 2m..32m", seed, lead)
			}
			if a.DelaySeconds != 0 && (a.DelaySeconds < 60 || a.DelaySeconds > 300) {
				t.Fatalf("seed %d: delay %d outside 0 or 60..300", seed, a.DelaySeconds)
			}
			if a.Direction != "N" && a.Direction != "S" {
				t.Fatalf("seed %d: bad direction %q", seed, a.Direction)
			}
			if a.Color != ColorFor(a.Line) {
				t.Fatalf("seed %d: color mismatch for %s: %q", seed, a.Line, a.Color)
			}
			if a.TrainID == "" || a.Destination == "" {
				t.Fatalf("seed %d: incomplete arrival %+v", seed, a)
			}
		}
		for _, line := range lines {
			if n := perLine[line]; n < 2 || n > 5 {
				t.Fatalf("seed %d: %d arrivals on line %s, want 2..5", seed, n, line)
			}
		}
		for i := 1; i < len(got); i++ {
			if got[i].Time.Before(got[i-1].Time) {
				t.Fatalf("seed %d: output not sorted at %d", seed, i)
			}
		}
	}
}

func TestSynthesizerMostlyOnTimeAndAssigned(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := testSynthesizer(42, now)

	var total, onTime, assigned int
	for i := 0; i < 200; i++ {
		for _, a := range s.ForLines([]string{"6"}) {
			total++
			if a.DelaySeconds == 0 {
				onTime++
			}
			if a.Assigned {
				assigned++
			}
		}
	}

	// 70% and 80% targets; allow generous slack for a fixed seed.
	if ratio := float64(onTime) / float64(total); ratio < 0.6 || ratio > 0.8 {
		t.Errorf("on-time ratio %.2f outside 0.6..0.8", ratio)
	}
	if ratio := float64(assigned) / float64(total); ratio < 0.7 || ratio > 0.9 {
		t.Errorf("assigned ratio %.2f outside 0.7..0.9", ratio)
	}
}

func TestSynthesizerUnknownLine(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := testSynthesizer(7, now)

	got := s.ForLines([]string{"X9"})
	if len(got) < 2 || len(got) > 5 {
		t.Fatalf("expected 2..5 arrivals, got %d", len(got))
	}
	for _, a := range got {
		if a.Destination != "Terminal" {
			t.Errorf("expected placeholder destination, got %q", a.Destination)
		}
		if a.Color != defaultColor {
			t.Errorf("expected neutral color, got %q", a.Color)
		}
	}
}
