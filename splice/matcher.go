package splice

import "sort"

// SortByIdentity orders halves by (id, direction, chromosome, position),
// the precondition for MatchCandidates.
func SortByIdentity(halves []Half) {
	sort.SliceStable(halves, func(i, j int) bool {
		a, b := halves[i], halves[j]
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		if a.Dir != b.Dir {
			return a.Dir < b.Dir
		}
		if a.Chrom != b.Chrom {
			return a.Chrom < b.Chrom
		}
		return a.Position < b.Position
	})
}

// MatchCandidates is the Pair Matcher: it performs a windowed double scan
// over halves (which must already be sorted by SortByIdentity) and emits
// one Candidate Junction per unique (read, chromosome, positionSmaller,
// positionLarger) tuple that passes the pairing predicates.
func MatchCandidates(halves []Half, genes []Gene, opts Options, in *Interner) []Candidate {
	var out []Candidate

	alreadySeen := func(readID, chrom Handle, small, large int64) bool {
		for i := range out {
			c := &out[i]
			if c.ReadID == readID && c.Chrom == chrom && c.PositionSmaller == small && c.PositionLarger == large {
				return true
			}
		}
		return false
	}

	for left := 0; left < len(halves); left++ {
		l := halves[left]
		for right := left + 1; right < len(halves); right++ {
			r := halves[right]

			// Rule 1: the sort guarantees no later right will match once any
			// of these differ.
			if r.ID != l.ID || r.Dir != l.Dir || r.Chrom != l.Chrom {
				break
			}
			// Rule 2.
			if r.Position-l.Position > opts.MaxDistance {
				break
			}
			// Rule 3.
			if l.Side == r.Side {
				continue
			}
			// Rule 4.
			if l.Length+r.Length != l.TotalLen {
				continue
			}

			// Rule 5: canonical ordering and splice length.
			first, second := l, r
			if !isUpstream(l.Side, l.Dir) {
				first, second = r, l
			}
			endSmaller := first.Position + int64(first.Length)
			endLarger := second.Position
			spliceLength := endLarger - endSmaller

			// Rule 6.
			if spliceLength > opts.MaxDistance || spliceLength < opts.MinSpliceLength {
				continue
			}

			// Rule 7: dedup.
			if alreadySeen(l.ID, l.Chrom, endSmaller, endLarger) {
				continue
			}

			// Rule 8: gene containment, against the two halves' own
			// positions (not the derived endpoints).
			geneName, geneUnknown := annotateGene(genes, l.Chrom, l.Position, r.Position, in)

			// Rule 9: emit.
			out = append(out, Candidate{
				ReadID:          l.ID,
				Chrom:           l.Chrom,
				Dir:             l.Dir,
				PositionSmaller: endSmaller,
				PositionLarger:  endLarger,
				MinSmallSupport: endSmaller,
				MaxLargeSupport: endLarger,
				Gene:            geneName,
				GeneUnknown:     geneUnknown,
				LeftLength:      l.Length,
			})
		}
	}
	return out
}
