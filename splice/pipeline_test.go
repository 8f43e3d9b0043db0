package splice

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
)

// TestEmitComputesNovelTallyAfterWriters confirms that RunStats.CandidatesNovel
// reflects the Novel flags WriteResults computes, not a snapshot taken before
// emission. Cluster must not tally Novel/unknown-gene counts on its own,
// since Novel is unset at that point.
func TestEmitComputesNovelTallyAfterWriters(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	opts := DefaultOptions
	opts.ResultsBaseName = filepath.Join(tempDir, "run1")
	opts.SupportPosTolerance = 5

	p := NewPipeline(opts)
	chr1 := p.Interner.Intern("chr1")
	p.Candidates = []Candidate{{
		Chrom: chr1, Gene: "GENEA", Print: true,
		PositionSmaller: 10000, PositionLarger: 10500,
		MinSmallSupport: 9998, MaxLargeSupport: 10503,
		NumSupport: 3, NumSupportTotal: 3,
	}}
	p.Boundaries = nil // no matching boundary record: the candidate is novel.

	p.Stat.CandidatesMatched = 1
	p.Stat.CandidatesPrinted = 1
	// Simulate what Cluster leaves behind: no novel/unknown tally yet.
	expect.EQ(t, p.Stat.CandidatesNovel, 0)

	expect.NoError(t, p.Emit(context.Background()))

	expect.EQ(t, p.Candidates[0].Novel, true)
	expect.EQ(t, p.Stat.CandidatesNovel, 1)
}
