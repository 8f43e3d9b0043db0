package splice

import "sort"

// SortByCoordinate orders halves by (chromosome, split position), the
// precondition for ClusterSupport's half scans.
func SortByCoordinate(halves []Half) {
	sort.SliceStable(halves, func(i, j int) bool {
		a, b := halves[i], halves[j]
		if a.Chrom != b.Chrom {
			return a.Chrom < b.Chrom
		}
		return a.SplitPos < b.SplitPos
	})
}

// SortCandidatesByCoordinate orders candidates by (chromosome,
// positionSmaller), the precondition for ClusterSupport.
func SortCandidatesByCoordinate(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Chrom != b.Chrom {
			return a.Chrom < b.Chrom
		}
		return a.PositionSmaller < b.PositionSmaller
	})
}

type checkResult int

const (
	checkBreak   checkResult = -1
	checkNoMatch checkResult = 0
	checkMatch   checkResult = 1
)

// checkHalf compares candidate sp1 against half h, checking its small end
// (smallEnd) or large end. It returns checkBreak once h has passed sp1's
// position (the scan should stop advancing for this sp1), checkNoMatch if
// h isn't an orphan match, or checkMatch if it is: same chromosome, same
// position, same strand, and the complementary half was never seen long
// enough to rule out this one being orphaned.
func checkHalf(sp1 *Candidate, h Half, stats *HalfStats, smallEnd bool) checkResult {
	if sp1.Chrom != h.Chrom {
		if sp1.Chrom < h.Chrom {
			return checkBreak
		}
		return checkNoMatch
	}
	var p int64
	if smallEnd {
		p = sp1.PositionSmaller - h.SplitPos
	} else {
		p = sp1.PositionLarger - h.SplitPos
	}
	switch {
	case p < 0:
		return checkBreak
	case p > 0:
		return checkNoMatch
	}
	if sp1.Dir != h.Dir {
		return checkNoMatch
	}
	other, ok := stats.Lookup(h.OtherHalfKey)
	if !ok || other.MaxLength < h.TotalLen-h.Length {
		return checkMatch
	}
	return checkNoMatch
}

// ClusterSupport is the Support Clusterer: candidates and halves must
// already be sorted by coordinate (SortCandidatesByCoordinate,
// SortByCoordinate respectively). It mutates candidates in place, filling
// in the support counters and the Print/AlreadyReported flags, and
// propagating AlreadyReported to every candidate absorbed into a printed
// cluster.
func ClusterSupport(candidates []Candidate, halves []Half, stats *HalfStats, opts Options) {
	// iSmall is the only index that persists across outer iterations,
	// mirroring the reference implementation's single monotonic cursor.
	iSmall := 0

	for sp1idx := range candidates {
		sp1 := &candidates[sp1idx]
		if sp1.AlreadyReported {
			continue
		}

		supportedReads := map[Handle]struct{}{sp1.ReadID: {}}
		supportedBoth := map[Handle]struct{}{sp1.ReadID: {}}
		supportedHalves := map[Handle]struct{}{}
		supportedSplices := map[int]struct{}{sp1idx: {}}

		spliceLen := abs64(sp1.PositionLarger - sp1.PositionSmaller)

		// Sub-scan A: full-pair support growth.
		for sp2idx := sp1idx; sp2idx < len(candidates); sp2idx++ {
			sp2 := &candidates[sp2idx]
			if sp2.Chrom != sp1.Chrom {
				break
			}
			if sp2.PositionSmaller > sp1.PositionSmaller+opts.SupportPosTolerance {
				break
			}
			if abs64(sp2.PositionLarger-sp2.PositionSmaller) != spliceLen {
				continue
			}
			if sp2.ReadID == sp1.ReadID {
				supportedSplices[sp2idx] = struct{}{}
				continue
			}
			supportedReads[sp2.ReadID] = struct{}{}
			supportedBoth[sp2.ReadID] = struct{}{}
			supportedSplices[sp2idx] = struct{}{}
			if sp2.PositionSmaller < sp1.MinSmallSupport {
				sp1.MinSmallSupport = sp2.PositionSmaller
			}
			if sp2.PositionLarger > sp1.MaxLargeSupport {
				sp1.MaxLargeSupport = sp2.PositionLarger
			}
		}

		// Sub-scan B: orphan halves at the small end.
		for ; iSmall < len(halves); iSmall++ {
			res := checkHalf(sp1, halves[iSmall], stats, true)
			if res == checkBreak {
				break
			}
			if res == checkMatch {
				supportedHalves[halves[iSmall].ID] = struct{}{}
				supportedBoth[halves[iSmall].ID] = struct{}{}
			}
		}

		// Sub-scan C: orphan halves at the large end, restarting from
		// iSmall's current position without advancing it further.
		for iData := iSmall; iData < len(halves); iData++ {
			res := checkHalf(sp1, halves[iData], stats, false)
			if res == checkBreak {
				break
			}
			if res == checkMatch {
				supportedHalves[halves[iData].ID] = struct{}{}
				supportedBoth[halves[iData].ID] = struct{}{}
			}
		}

		if len(supportedBoth) >= opts.MinSupportingReads {
			sp1.Print = true
			sp1.AlreadyReported = true
			sp1.NumSupport = len(supportedReads)
			sp1.NumSupportHalves = len(supportedHalves)
			sp1.NumSupportTotal = len(supportedBoth)
			for idx := range supportedSplices {
				candidates[idx].AlreadyReported = true
			}
		}
	}
}
