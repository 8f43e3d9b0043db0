package splice

import (
	"testing"
	"time"
)

func TestMemStatsSamplerStopThenRead(t *testing.T) {
	var m MemStats
	stop := make(chan struct{})
	m.StartSampler(time.Millisecond, stop)
	time.Sleep(5 * time.Millisecond)
	close(stop)
	// Reading after the sampler has been told to stop must never panic or
	// race, regardless of whether the goroutine has actually exited yet.
	m.Refresh()
	_ = m.String()
}

func TestRunStatsMerge(t *testing.T) {
	a := RunStats{HalvesRead: 10, CandidatesMatched: 3, LoadDuration: time.Second}
	b := RunStats{HalvesRead: 5, CandidatesMatched: 2, CandidatesPrinted: 1, LoadDuration: 2 * time.Second}
	sum := a.Merge(b)
	if sum.HalvesRead != 15 || sum.CandidatesMatched != 5 || sum.CandidatesPrinted != 1 {
		t.Fatalf("unexpected merge result: %+v", sum)
	}
	if sum.LoadDuration != 3*time.Second {
		t.Fatalf("expected durations to sum, got %v", sum.LoadDuration)
	}
}

func TestHalfStatsSummaryEmpty(t *testing.T) {
	s := NewHalfStats()
	if got := s.Summary(); got != "no half-length data" {
		t.Fatalf("expected the empty-table message, got %q", got)
	}
}

func TestHalfStatsSummaryAggregates(t *testing.T) {
	s := NewHalfStats()
	// key1 ranges 10-20, key2 ranges 30-30.
	s.Update(1, 10)
	s.Update(1, 20)
	s.Update(2, 30)

	got := s.Summary()
	want := "min 20.0 avg, range 10-30; max 25.0 avg, range 20-30"
	if got != want {
		t.Fatalf("Summary() = %q, want %q", got, want)
	}
}
