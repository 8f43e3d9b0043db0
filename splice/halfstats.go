package splice

import "fmt"

// HalfStats tracks the minimum and maximum observed piece length for every
// half-key seen during half-alignment ingest. It is populated during
// ingest and read-only thereafter.
type HalfStats struct {
	byKey map[Handle]*HalfRange
}

// NewHalfStats returns an empty HalfStats table.
func NewHalfStats() *HalfStats {
	return &HalfStats{byKey: make(map[Handle]*HalfRange)}
}

// Update folds one observed piece length into the range for halfKey.
func (s *HalfStats) Update(halfKey Handle, length int) {
	r, ok := s.byKey[halfKey]
	if !ok {
		s.byKey[halfKey] = &HalfRange{MinLength: length, MaxLength: length}
		return
	}
	if length < r.MinLength {
		r.MinLength = length
	}
	if length > r.MaxLength {
		r.MaxLength = length
	}
}

// Lookup returns the range recorded for halfKey, if any.
func (s *HalfStats) Lookup(halfKey Handle) (HalfRange, bool) {
	r, ok := s.byKey[halfKey]
	if !ok {
		return HalfRange{}, false
	}
	return *r, true
}

// Len returns the number of distinct half-keys tracked.
func (s *HalfStats) Len() int {
	return len(s.byKey)
}

// Summary reports the average and range of the per-half-key minimum and
// maximum piece lengths observed, across every half-key tracked.
func (s *HalfStats) Summary() string {
	if len(s.byKey) == 0 {
		return "no half-length data"
	}
	var minTotal, maxTotal int
	minMin, minMax := -1, -1
	maxMin, maxMax := -1, -1
	for _, r := range s.byKey {
		minTotal += r.MinLength
		maxTotal += r.MaxLength
		if minMin == -1 || r.MinLength < minMin {
			minMin = r.MinLength
		}
		if r.MinLength > minMax {
			minMax = r.MinLength
		}
		if maxMin == -1 || r.MaxLength < maxMin {
			maxMin = r.MaxLength
		}
		if r.MaxLength > maxMax {
			maxMax = r.MaxLength
		}
	}
	n := float64(len(s.byKey))
	return fmt.Sprintf("min %.1f avg, range %d-%d; max %.1f avg, range %d-%d",
		float64(minTotal)/n, minMin, minMax, float64(maxTotal)/n, maxMin, maxMax)
}
