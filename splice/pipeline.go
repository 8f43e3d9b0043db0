package splice

import (
	"context"
	"time"

	"github.com/grailbio/base/log"
)

// Pipeline bundles the shared state for one run: the string table, the
// half-length statistics it feeds, and the record collections each phase
// produces. Phase functions take a *Pipeline explicitly rather than reach
// for package-level state, so multiple runs can coexist in one process.
type Pipeline struct {
	Interner *Interner
	Stats    *HalfStats

	Halves     []Half
	Genes      []Gene
	Boundaries []Boundary
	Candidates []Candidate

	Opts Options
	Stat RunStats
	Errs Accumulator
}

// NewPipeline returns an empty Pipeline configured with opts.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{
		Interner: NewInterner(),
		Stats:    NewHalfStats(),
		Opts:     opts,
	}
}

// LoadInputs runs the Half-Alignment Reader, Gene Table Reader, and Boundary
// Table Reader phases in sequence, populating the Pipeline's record
// collections. The gene and boundary tables are optional: an empty path
// skips that reader. The half-alignment file is always read.
func (p *Pipeline) LoadInputs(ctx context.Context) error {
	start := time.Now()
	halves, err := ReadHalves(ctx, p.Opts.SampleDataFile, p.Opts.LrunzipPath, p.Interner, p.Stats, &p.Errs)
	if err != nil {
		return err
	}
	p.Halves = halves
	p.Stat.HalvesRead = len(halves)
	log.Printf("read %d half-alignment records, total time elapsed %v", len(halves), time.Since(start))

	if p.Opts.GeneTableFile != "" {
		genes, err := ReadGenes(ctx, p.Opts.GeneTableFile, p.Opts.LrunzipPath, p.Interner, &p.Errs)
		if err != nil {
			return err
		}
		p.Genes = genes
		p.Stat.GenesRead = len(genes)
		log.Printf("read %d gene table records, total time elapsed %v", len(genes), time.Since(start))
	}

	if p.Opts.BoundaryTableFile != "" {
		boundaries, err := ReadBoundaries(ctx, p.Opts.BoundaryTableFile, p.Opts.LrunzipPath, p.Interner, &p.Errs)
		if err != nil {
			return err
		}
		p.Boundaries = boundaries
		p.Stat.BoundariesRead = len(boundaries)
		log.Printf("read %d boundary table records, total time elapsed %v", len(boundaries), time.Since(start))
	}

	p.Stat.ReadErrors = p.Errs.Count()
	if n := p.Errs.Count(); n > 0 {
		log.Printf("skipped %d unparsable record(s) while loading inputs; first error: %v", n, p.Errs.Err())
	}

	p.Stat.HalfLengthSummary = p.Stats.Summary()
	log.Printf("half lengths: %s", p.Stat.HalfLengthSummary)

	p.Stat.LoadDuration = time.Since(start)
	log.Printf("done loading inputs, total time elapsed %v", p.Stat.LoadDuration)
	return nil
}

// Match runs the Pair Matcher phase: halves must already be loaded. It
// sorts them in place by identity and fills in Candidates.
func (p *Pipeline) Match() {
	start := time.Now()
	SortByIdentity(p.Halves)
	p.Candidates = MatchCandidates(p.Halves, p.Genes, p.Opts, p.Interner)
	p.Stat.MatchDuration = time.Since(start)
	log.Printf("matched %d candidate junctions, total time elapsed %v", len(p.Candidates), p.Stat.MatchDuration)
}

// Cluster runs the Support Clusterer phase: candidates and halves are
// sorted by coordinate in place, then ClusterSupport fills in the support
// counters and Print flags. The Novel and GeneUnknown-derived tallies are
// filled in later by Emit, once Novel has actually been computed against
// the boundary table; only the counts Cluster itself produces are logged
// here.
func (p *Pipeline) Cluster() {
	start := time.Now()
	SortCandidatesByCoordinate(p.Candidates)
	SortByCoordinate(p.Halves)
	ClusterSupport(p.Candidates, p.Halves, p.Stats, p.Opts)
	p.Stat.CandidatesMatched = len(p.Candidates)
	printed := 0
	for i := range p.Candidates {
		if p.Candidates[i].Print {
			printed++
		}
	}
	p.Stat.CandidatesPrinted = printed
	p.Stat.ClusterDuration = time.Since(start)
	log.Printf("clustered %d candidates, %d printed, total time elapsed %v",
		p.Stat.CandidatesMatched, p.Stat.CandidatesPrinted, p.Stat.ClusterDuration)
}

// Emit writes the three result streams rooted at Opts.ResultsBaseName.
// WriteResults computes each candidate's Novel flag against the boundary
// table as it writes, so the final novel/unknown-gene tallies are only
// accurate once it has run; SummarizeCandidates is therefore called here,
// after both writers finish, rather than in Cluster.
func (p *Pipeline) Emit(ctx context.Context) error {
	start := time.Now()
	p.Stat.InternedStrings = p.Interner.Len()
	if err := WriteResults(ctx, p.Opts.ResultsBaseName, p.Candidates, p.Interner, p.Boundaries, p.Opts.SupportPosTolerance); err != nil {
		return err
	}
	if err := WriteSplitPairs(ctx, p.Opts.ResultsBaseName, p.Candidates, p.Halves, p.Stats, p.Interner); err != nil {
		return err
	}
	p.Stat = SummarizeCandidates(p.Stat, p.Candidates)
	p.Stat.EmitDuration = time.Since(start)
	log.Printf("done saving results, total time elapsed %v", p.Stat.EmitDuration)
	return nil
}

// Run executes the full pipeline: load, match, cluster, emit.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.LoadInputs(ctx); err != nil {
		return err
	}
	p.Match()
	p.Cluster()
	return p.Emit(ctx)
}

// LoadCandidateDump replaces LoadInputs+Match+Cluster: it reads a previously
// persisted candidate set (written by CandidateWriter), plus the boundary
// table named in its recorded options for the novelty check, so a run can
// jump straight to emission.
func (p *Pipeline) LoadCandidateDump(ctx context.Context, path string) error {
	r, err := NewCandidateReader(ctx, path, p.Interner)
	if err != nil {
		return err
	}
	candidates, err := r.ReadAll()
	if err != nil {
		return err
	}
	p.Candidates = candidates
	p.Opts = r.Opts()
	if p.Opts.BoundaryTableFile != "" {
		boundaries, err := ReadBoundaries(ctx, p.Opts.BoundaryTableFile, p.Opts.LrunzipPath, p.Interner, &p.Errs)
		if err != nil {
			return err
		}
		p.Boundaries = boundaries
		p.Stat.BoundariesRead = len(boundaries)
	}
	p.Stat = SummarizeCandidates(p.Stat, candidates)
	log.Printf("loaded %d candidates from %s", len(candidates), path)
	return nil
}

// DumpCandidates persists the current candidate set to path for a later
// LoadCandidateDump.
func (p *Pipeline) DumpCandidates(ctx context.Context, path string) error {
	w, err := NewCandidateWriter(ctx, path, p.Interner, p.Opts)
	if err != nil {
		return err
	}
	if err := w.WriteAll(p.Candidates); err != nil {
		return err
	}
	return w.Close()
}
