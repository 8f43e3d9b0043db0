package splice

import (
	"bufio"
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

const resultsHeader = "GeneName\tChromosome\t# supporting reads\t# supporting halves\t# supporting total\tsplice length\trange of supporting reads\tNovel or not (*)\n"
const splitPairsHeader = "Id\tGene\tChr\t# Supporting reads\t# Supporting halves\t# Supporting total\tLength\tSplice region\tSupporting splice range\tLeft side length\n"

type output struct {
	ctx context.Context
	f   file.File
	w   *bufio.Writer
}

func createOutput(ctx context.Context, path string) (*output, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &output{ctx: ctx, f: f, w: bufio.NewWriter(f.Writer(ctx))}, nil
}

func (o *output) Close() error {
	once := errors.Once{}
	once.Set(o.w.Flush())
	once.Set(o.f.Close(o.ctx))
	return once.Err()
}

// WriteResults writes the known-gene and unknown-gene result streams,
// <base>.results and <base>.results.unknown, one line per surviving
// (Print == true) junction in the caller's sort order. Each junction's
// Novel flag is computed here against boundaries, at emission time.
func WriteResults(ctx context.Context, base string, candidates []Candidate, in *Interner, boundaries []Boundary, tolerance int64) error {
	known, err := createOutput(ctx, base+".results")
	if err != nil {
		return err
	}
	unknown, err := createOutput(ctx, base+".results.unknown")
	if err != nil {
		known.Close()
		return err
	}
	once := errors.Once{}
	once.Set(writeString(known.w, resultsHeader))
	once.Set(writeString(unknown.w, resultsHeader))

	for i := range candidates {
		c := &candidates[i]
		if !c.Print {
			continue
		}
		c.Novel = Novel(*c, boundaries, tolerance)
		novel := "*"
		if c.Novel {
			novel = "Novel"
		}
		line := fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%d\t%d--%d\t%s\n",
			c.Gene, in.String(c.Chrom), c.NumSupport, c.NumSupportHalves, c.NumSupportTotal,
			c.SpliceLength(), c.MinSmallSupport, c.MaxLargeSupport, novel)
		target := known.w
		if c.GeneUnknown {
			target = unknown.w
		}
		once.Set(writeString(target, line))
	}
	once.Set(known.Close())
	once.Set(unknown.Close())
	return once.Err()
}

// WriteSplitPairs writes the detailed <base>.results.splitPairs dump: a
// joint scan across every candidate, regardless of Print, and the
// alignment halves sorted by (chromosome, split position), interleaving a
// line per candidate with a line per orphan half (a half whose
// complementary partner was never seen long enough). Every candidate is
// guaranteed to appear even after the half index is exhausted.
func WriteSplitPairs(ctx context.Context, base string, candidates []Candidate, halves []Half, stats *HalfStats, in *Interner) error {
	out, err := createOutput(ctx, base+".results.splitPairs")
	if err != nil {
		return err
	}
	if err := writeString(out.w, splitPairsHeader); err != nil {
		out.Close()
		return err
	}

	writeCandidate := func(c *Candidate) error {
		return writeString(out.w, fmt.Sprintf("%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d-%d\t%d-%d\t%d\n",
			in.String(c.ReadID), c.Gene, in.String(c.Chrom),
			c.NumSupport, c.NumSupportHalves, c.NumSupportTotal,
			c.SpliceLength(), c.PositionSmaller, c.PositionLarger,
			c.MinSmallSupport, c.MaxLargeSupport, c.LeftLength))
	}

	k, iData := 0, 0
	for k < len(candidates) && iData < len(halves) {
		c := &candidates[k]
		h := halves[iData]
		if c.Chrom < h.Chrom || (c.Chrom == h.Chrom && c.PositionSmaller < h.SplitPos) {
			if err := writeCandidate(c); err != nil {
				out.Close()
				return err
			}
			k++
			continue
		}
		other, ok := stats.Lookup(h.OtherHalfKey)
		if !ok || other.MaxLength < h.TotalLen-h.Length {
			line := fmt.Sprintf("%s\t???\t%s\t0\t0\t0\t0\t%d-%d\t0-0\t%d %s %s\n",
				in.String(h.ID), in.String(h.Chrom), h.Position, h.SplitPos, h.Length, h.Side, h.Dir)
			if err := writeString(out.w, line); err != nil {
				out.Close()
				return err
			}
		}
		iData++
	}
	for ; k < len(candidates); k++ {
		if err := writeCandidate(&candidates[k]); err != nil {
			out.Close()
			return err
		}
	}
	return out.Close()
}

func writeString(w *bufio.Writer, s string) error {
	_, err := w.WriteString(s)
	return err
}
