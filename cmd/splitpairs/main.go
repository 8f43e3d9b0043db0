// Command splitpairs discovers candidate RNA splice junctions from a file
// of half-alignment records: reads that were split into a left and right
// piece before alignment because the full read straddles a splice.
//
// Example: run from an options file
//
//    splitpairs -options run.cfg
//
// Example: override the options-file results base name and run low priority
//
//    splitpairs -options run.cfg -results-base ./out/run1
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"golang.org/x/sys/unix"

	"github.com/BaiLab/splitpairs/splice"
)

func main() {
	var (
		optionsPath       string
		sampleDataFile    string
		geneTableFile     string
		boundaryTableFile string
		resultsBaseName   string
		maxDistance       int64
		minSpliceLength   int64
		supportTolerance  int64
		minSupportReads   int
		lrunzipPath       string
		dumpCandidates    string
		loadCandidates    string
	)
	flag.StringVar(&optionsPath, "options", "", "Path to a nine-line options file; may also be given as the single positional argument. Without one, the built-in defaults are used and -sample-data (or -load-candidates) must be set.")
	flag.StringVar(&sampleDataFile, "sample-data", "", "Half-alignment input file. Overrides the options file.")
	flag.StringVar(&geneTableFile, "gene-table", "", "Known-gene table file. Overrides the options file.")
	flag.StringVar(&boundaryTableFile, "boundary-table", "", "Intron/exon boundary table file. Overrides the options file.")
	flag.StringVar(&resultsBaseName, "results-base", "", "Base path for .results/.results.unknown/.results.splitPairs. Overrides the options file.")
	flag.Int64Var(&maxDistance, "max-distance", 0, "Upper bound on read-pair separation and splice length. 0 keeps the options file value.")
	flag.Int64Var(&minSpliceLength, "min-splice-length", 0, "Lower bound on splice length. 0 keeps the options file value.")
	flag.Int64Var(&supportTolerance, "support-tolerance", -1, "Position tolerance for clustering and novelty matching. -1 keeps the options file value.")
	flag.IntVar(&minSupportReads, "min-supporting-reads", 0, "Minimum distinct supporting reads for a junction to be printed. 0 keeps the options file value.")
	flag.StringVar(&lrunzipPath, "lrunzip", "", "Path to the lrunzip binary for .lrz inputs. Empty keeps the options file/default value.")
	flag.StringVar(&dumpCandidates, "dump-candidates", "", "If set, persist the clustered candidate set to this recordio file after matching and clustering.")
	flag.StringVar(&loadCandidates, "load-candidates", "", "If set, skip half-alignment ingest, matching, and clustering, and resume from a recordio file written by -dump-candidates.")
	flag.Parse()
	if optionsPath == "" && flag.NArg() > 0 {
		optionsPath = flag.Arg(0)
	}

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	lowerPriority(unix.Setpriority)

	opts := splice.DefaultOptions
	if optionsPath != "" {
		fileOpts, err := splice.LoadOptions(optionsPath)
		if err != nil {
			log.Fatalf("%v", err)
		}
		opts = fileOpts
	}
	if sampleDataFile != "" {
		opts.SampleDataFile = sampleDataFile
	}
	if geneTableFile != "" {
		opts.GeneTableFile = geneTableFile
	}
	if boundaryTableFile != "" {
		opts.BoundaryTableFile = boundaryTableFile
	}
	if resultsBaseName != "" {
		opts.ResultsBaseName = resultsBaseName
	}
	if maxDistance != 0 {
		opts.MaxDistance = maxDistance
	}
	if minSpliceLength != 0 {
		opts.MinSpliceLength = minSpliceLength
	}
	if supportTolerance >= 0 {
		opts.SupportPosTolerance = supportTolerance
	}
	if minSupportReads != 0 {
		opts.MinSupportingReads = minSupportReads
	}
	if lrunzipPath != "" {
		opts.LrunzipPath = lrunzipPath
	}
	if opts.SampleDataFile == "" && loadCandidates == "" {
		log.Fatal("no input: set -sample-data, an -options file, or -load-candidates")
	}

	var mem splice.MemStats
	stop := make(chan struct{})
	mem.StartSampler(500*time.Millisecond, stop)
	defer close(stop)

	p := splice.NewPipeline(opts)

	if loadCandidates != "" {
		if err := p.LoadCandidateDump(ctx, loadCandidates); err != nil {
			log.Fatalf("%v", err)
		}
	} else {
		if err := p.LoadInputs(ctx); err != nil {
			log.Fatalf("%v", err)
		}
		p.Match()
		p.Cluster()
		if dumpCandidates != "" {
			if err := p.DumpCandidates(ctx, dumpCandidates); err != nil {
				log.Fatalf("dump candidates: %v", err)
			}
		}
	}

	if err := p.Emit(ctx); err != nil {
		log.Fatalf("emit results: %v", err)
	}

	mem.Refresh()
	log.Printf("Stats: %s", p.Stat)
	log.Printf("MemStats: %s", mem.String())
	log.Printf("All done")
}

// lowerPriority drops this process's scheduling priority so other processes
// on the same host get preference, matching the original tool's
// setpriority(0, 0, 20) call. setter is injected so platform failures (e.g.
// an unprivileged container forbidding renice) can be exercised in tests.
// Failure is logged, not fatal.
func lowerPriority(setter func(which, who, prio int) error) {
	if err := setter(unix.PRIO_PROCESS, os.Getpid(), 20); err != nil {
		log.Printf("setpriority: %v (continuing at default priority)", err)
	}
}
