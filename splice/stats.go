package splice

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// MemStats tracks the high-water mark of the process's memory usage,
// refreshed on demand or from a background sampler. Safe for concurrent use.
type MemStats struct {
	mu sync.Mutex

	alloc      uint64
	totalAlloc uint64
	sys        uint64
	heapSys    uint64
}

// Refresh takes one synchronous reading, independent of any running sampler.
func (m *MemStats) Refresh() { m.update() }

func (m *MemStats) update() {
	var s runtime.MemStats
	runtime.ReadMemStats(&s)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.alloc < s.Alloc {
		m.alloc = s.Alloc
	}
	if m.totalAlloc < s.TotalAlloc {
		m.totalAlloc = s.TotalAlloc
	}
	if m.sys < s.Sys {
		m.sys = s.Sys
	}
	if m.heapSys < s.HeapSys {
		m.heapSys = s.HeapSys
	}
}

func (m *MemStats) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("Alloc: %v TotalAlloc: %v Sys: %v HeapSys: %v", m.alloc, m.totalAlloc, m.sys, m.heapSys)
}

// StartSampler launches a background goroutine that refreshes m every
// interval until stop is closed. The caller owns the stop channel's
// lifetime; closing it is the only way to end the goroutine.
func (m *MemStats) StartSampler(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.update()
			case <-stop:
				return
			}
		}
	}()
}

// RunStats summarizes one pipeline run: input volumes, per-phase candidate
// counts, and the outcome of clustering. Each phase sets its own fields
// directly; Merge combines two RunStats, such as partial counts from
// separate runs.
type RunStats struct {
	HalvesRead     int
	GenesRead      int
	BoundariesRead int

	CandidatesMatched int
	CandidatesPrinted int
	CandidatesNovel   int
	CandidatesUnknown int
	ReadErrors        int

	InternedStrings   int
	HalfLengthSummary string

	LoadDuration    time.Duration
	MatchDuration   time.Duration
	ClusterDuration time.Duration
	EmitDuration    time.Duration
}

// Merge sums the counters and durations of two RunStats. InternedStrings
// takes the larger of the two values, and HalfLengthSummary keeps s's value
// unless it is empty.
func (s RunStats) Merge(o RunStats) RunStats {
	s.HalvesRead += o.HalvesRead
	s.GenesRead += o.GenesRead
	s.BoundariesRead += o.BoundariesRead
	s.CandidatesMatched += o.CandidatesMatched
	s.CandidatesPrinted += o.CandidatesPrinted
	s.CandidatesNovel += o.CandidatesNovel
	s.CandidatesUnknown += o.CandidatesUnknown
	s.ReadErrors += o.ReadErrors
	if o.InternedStrings > s.InternedStrings {
		s.InternedStrings = o.InternedStrings
	}
	if s.HalfLengthSummary == "" {
		s.HalfLengthSummary = o.HalfLengthSummary
	}
	s.LoadDuration += o.LoadDuration
	s.MatchDuration += o.MatchDuration
	s.ClusterDuration += o.ClusterDuration
	s.EmitDuration += o.EmitDuration
	return s
}

func (s RunStats) String() string {
	return fmt.Sprintf(
		"halves=%d genes=%d boundaries=%d candidates=%d printed=%d novel=%d unknownGene=%d readErrors=%d internedStrings=%d "+
			"halfLengths: %s; durations: load=%v match=%v cluster=%v emit=%v",
		s.HalvesRead, s.GenesRead, s.BoundariesRead, s.CandidatesMatched,
		s.CandidatesPrinted, s.CandidatesNovel, s.CandidatesUnknown, s.ReadErrors, s.InternedStrings,
		s.HalfLengthSummary, s.LoadDuration, s.MatchDuration, s.ClusterDuration, s.EmitDuration)
}

// SummarizeCandidates fills in the candidate-derived fields of s from a
// final, clustered candidate slice. It overwrites any prior values of these
// fields rather than adding to them, so it is safe to call more than once
// as a junction's derived flags (e.g. Novel) become available.
func SummarizeCandidates(s RunStats, candidates []Candidate) RunStats {
	s.CandidatesMatched = len(candidates)
	s.CandidatesPrinted = 0
	s.CandidatesNovel = 0
	s.CandidatesUnknown = 0
	for _, c := range candidates {
		if !c.Print {
			continue
		}
		s.CandidatesPrinted++
		if c.Novel {
			s.CandidatesNovel++
		}
		if c.GeneUnknown {
			s.CandidatesUnknown++
		}
	}
	return s
}
