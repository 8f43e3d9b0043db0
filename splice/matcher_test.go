package splice

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestMatchCandidatesMinimumPair(t *testing.T) {
	in := NewInterner()
	chr1 := in.Intern("chr1")
	id := in.Intern("r1")
	halves := []Half{
		{ID: id, Side: SideL, Length: 20, TotalLen: 40, Dir: StrandPlus, Chrom: chr1, Position: 100},
		{ID: id, Side: SideR, Length: 20, TotalLen: 40, Dir: StrandPlus, Chrom: chr1, Position: 200},
	}
	opts := Options{MinSpliceLength: 2, MaxDistance: 10000}
	candidates := MatchCandidates(halves, nil, opts, in)
	expect.EQ(t, len(candidates), 1)
	expect.EQ(t, candidates[0].PositionSmaller, int64(120))
	expect.EQ(t, candidates[0].PositionLarger, int64(200))
	expect.EQ(t, candidates[0].SpliceLength(), int64(80))
}

func TestMatchCandidatesLengthMismatch(t *testing.T) {
	in := NewInterner()
	chr1 := in.Intern("chr1")
	id := in.Intern("r1")
	halves := []Half{
		{ID: id, Side: SideL, Length: 19, TotalLen: 40, Dir: StrandPlus, Chrom: chr1, Position: 100},
		{ID: id, Side: SideR, Length: 20, TotalLen: 40, Dir: StrandPlus, Chrom: chr1, Position: 200},
	}
	opts := Options{MinSpliceLength: 2, MaxDistance: 10000}
	candidates := MatchCandidates(halves, nil, opts, in)
	expect.EQ(t, len(candidates), 0)
}

func TestMatchCandidatesSpliceLengthBoundaries(t *testing.T) {
	in := NewInterner()
	chr1 := in.Intern("chr1")

	newHalves := func(id Handle, rPos int64) []Half {
		return []Half{
			{ID: id, Side: SideL, Length: 20, TotalLen: 40, Dir: StrandPlus, Chrom: chr1, Position: 100},
			{ID: id, Side: SideR, Length: 20, TotalLen: 40, Dir: StrandPlus, Chrom: chr1, Position: rPos},
		}
	}
	opts := Options{MinSpliceLength: 80, MaxDistance: 10000}

	// spliceLength == minSpliceLength is kept.
	at := MatchCandidates(newHalves(in.Intern("atMin"), 200), nil, opts, in)
	expect.EQ(t, len(at), 1)

	// spliceLength one below minSpliceLength is dropped.
	below := MatchCandidates(newHalves(in.Intern("belowMin"), 199), nil, opts, in)
	expect.EQ(t, len(below), 0)

	// Half positions exactly maxDistance apart are kept; one above is dropped.
	optsMax := Options{MinSpliceLength: 2, MaxDistance: 100}
	atMax := MatchCandidates(newHalves(in.Intern("atMax"), 200), nil, optsMax, in)
	expect.EQ(t, len(atMax), 1)

	aboveMax := MatchCandidates(newHalves(in.Intern("aboveMax"), 201), nil, optsMax, in)
	expect.EQ(t, len(aboveMax), 0)
}

func TestMatchCandidatesGeneAnnotation(t *testing.T) {
	in := NewInterner()
	chrX := in.Intern("chrX")
	id := in.Intern("r1")
	halves := []Half{
		{ID: id, Side: SideL, Length: 10, TotalLen: 20, Dir: StrandPlus, Chrom: chrX, Position: 50},
		{ID: id, Side: SideR, Length: 10, TotalLen: 20, Dir: StrandPlus, Chrom: chrX, Position: 60},
	}
	opts := Options{MinSpliceLength: 0, MaxDistance: 10000}

	genes := []Gene{{ID1: in.Intern("GENEA"), Chrom: chrX, Pos1: 40, Pos2: 80}}
	withGene := MatchCandidates(halves, genes, opts, in)
	expect.EQ(t, len(withGene), 1)
	expect.EQ(t, withGene[0].Gene, "GENEA")
	expect.EQ(t, withGene[0].GeneUnknown, false)

	withoutGene := MatchCandidates(halves, nil, opts, in)
	expect.EQ(t, len(withoutGene), 1)
	expect.EQ(t, withoutGene[0].Gene, UnfoundGene)
	expect.EQ(t, withoutGene[0].GeneUnknown, true)
}
