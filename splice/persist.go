package splice

// This file defines CandidateWriter and CandidateReader. CandidateWriter
// dumps a matched-and-clustered candidate set to a recordio file, and
// CandidateReader reads it back. This lets a later run skip straight to
// novelty annotation and emission instead of re-scanning half-alignment input.

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/recordio"
	"github.com/grailbio/base/recordio/recordiozstd"
)

const (
	candidateFileVersionHeader = "splitpairsversion"
	candidateFileVersion       = "SPLITPAIRS_V1"
)

// candidateRecord is the wire form of a Candidate: Handles are resolved to
// strings so the file is self-contained and independent of any particular
// Interner's numbering.
type candidateRecord struct {
	ReadID string
	Chrom  string
	Dir    string

	PositionSmaller int64
	PositionLarger  int64
	MinSmallSupport int64
	MaxLargeSupport int64

	NumSupport       int
	NumSupportHalves int
	NumSupportTotal  int

	Gene        string
	GeneUnknown bool
	Novel       bool

	AlreadyReported bool
	Print           bool

	LeftLength int
}

// candidateFileTrailer is the recordio trailer: the options that produced
// the candidates, for provenance.
type candidateFileTrailer struct {
	Opts Options
}

// CandidateWriter appends Candidates to a recordio file for later reload by
// CandidateReader.
type CandidateWriter struct {
	ctx  context.Context
	out  file.File
	w    recordio.Writer
	in   *Interner
	opts Options
}

// NewCandidateWriter creates path and prepares it to receive candidates.
func NewCandidateWriter(ctx context.Context, path string, in *Interner, opts Options) (*CandidateWriter, error) {
	recordiozstd.Init()
	out, err := file.Create(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	w := recordio.NewWriter(out.Writer(ctx), recordio.WriterOpts{
		Transformers: []string{recordiozstd.Name},
	})
	w.AddHeader(candidateFileVersionHeader, candidateFileVersion)
	w.AddHeader(recordio.KeyTrailer, true)
	return &CandidateWriter{ctx: ctx, out: out, w: w, in: in, opts: opts}, nil
}

// Write appends one candidate.
func (w *CandidateWriter) Write(c Candidate) error {
	rec := candidateRecord{
		ReadID:           w.in.String(c.ReadID),
		Chrom:            w.in.String(c.Chrom),
		Dir:              c.Dir.String(),
		PositionSmaller:  c.PositionSmaller,
		PositionLarger:   c.PositionLarger,
		MinSmallSupport:  c.MinSmallSupport,
		MaxLargeSupport:  c.MaxLargeSupport,
		NumSupport:       c.NumSupport,
		NumSupportHalves: c.NumSupportHalves,
		NumSupportTotal:  c.NumSupportTotal,
		Gene:             c.Gene,
		GeneUnknown:      c.GeneUnknown,
		Novel:            c.Novel,
		AlreadyReported:  c.AlreadyReported,
		Print:            c.Print,
		LeftLength:       c.LeftLength,
	}
	b := bytes.NewBuffer(nil)
	if err := gob.NewEncoder(b).Encode(rec); err != nil {
		return err
	}
	w.w.Append(b.Bytes())
	return nil
}

// WriteAll writes every candidate in order.
func (w *CandidateWriter) WriteAll(candidates []Candidate) error {
	for _, c := range candidates {
		if err := w.Write(c); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes the trailer and closes the underlying file. It must be
// called exactly once, after every Write.
func (w *CandidateWriter) Close() error {
	b := bytes.NewBuffer(nil)
	if err := gob.NewEncoder(b).Encode(candidateFileTrailer{Opts: w.opts}); err != nil {
		return err
	}
	w.w.SetTrailer(b.Bytes())
	if err := w.w.Finish(); err != nil {
		return err
	}
	return w.out.Close(w.ctx)
}

// CandidateReader reads a recordio file written by CandidateWriter, interning
// strings against the Interner supplied at construction.
type CandidateReader struct {
	ctx  context.Context
	in   file.File
	r    recordio.Scanner
	intr *Interner

	opts Options
	cur  Candidate
}

// NewCandidateReader opens path for reading.
func NewCandidateReader(ctx context.Context, path string, intr *Interner) (*CandidateReader, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	recordiozstd.Init()
	r := recordio.NewScanner(in.Reader(ctx), recordio.ScannerOpts{})
	found := false
	for _, kv := range r.Header() {
		if kv.Key == candidateFileVersionHeader {
			if kv.Value.(string) != candidateFileVersion {
				return nil, fmt.Errorf("%s: version mismatch: got %v, want %v", path, kv.Value, candidateFileVersion)
			}
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%s: missing %s header", path, candidateFileVersionHeader)
	}
	var trailer candidateFileTrailer
	if err := gob.NewDecoder(bytes.NewReader(r.Trailer())).Decode(&trailer); err != nil {
		return nil, fmt.Errorf("%s: trailer: %w", path, err)
	}
	return &CandidateReader{ctx: ctx, in: in, r: r, intr: intr, opts: trailer.Opts}, nil
}

// Opts returns the options recorded alongside the candidates.
func (r *CandidateReader) Opts() Options { return r.opts }

// Scan reads the next candidate, reporting whether one was available.
func (r *CandidateReader) Scan() bool {
	if !r.r.Scan() {
		return false
	}
	var rec candidateRecord
	if err := gob.NewDecoder(bytes.NewReader(r.r.Get().([]byte))).Decode(&rec); err != nil {
		return false
	}
	dir, _ := ParseStrand(rec.Dir)
	r.cur = Candidate{
		ReadID:           r.intr.Intern(rec.ReadID),
		Chrom:            r.intr.Intern(rec.Chrom),
		Dir:              dir,
		PositionSmaller:  rec.PositionSmaller,
		PositionLarger:   rec.PositionLarger,
		MinSmallSupport:  rec.MinSmallSupport,
		MaxLargeSupport:  rec.MaxLargeSupport,
		NumSupport:       rec.NumSupport,
		NumSupportHalves: rec.NumSupportHalves,
		NumSupportTotal:  rec.NumSupportTotal,
		Gene:             rec.Gene,
		GeneUnknown:      rec.GeneUnknown,
		Novel:            rec.Novel,
		AlreadyReported:  rec.AlreadyReported,
		Print:            rec.Print,
		LeftLength:       rec.LeftLength,
	}
	return true
}

// Get returns the candidate from the most recent successful Scan.
func (r *CandidateReader) Get() Candidate { return r.cur }

// Err reports any error encountered by Scan, beyond ordinary end of file.
func (r *CandidateReader) Err() error { return r.r.Err() }

// ReadAll drains the reader into a slice and closes it.
func (r *CandidateReader) ReadAll() ([]Candidate, error) {
	var out []Candidate
	for r.Scan() {
		out = append(out, r.Get())
	}
	if err := r.Err(); err != nil {
		r.Close()
		return nil, err
	}
	return out, r.Close()
}

// Close closes the underlying file. It must be called exactly once.
func (r *CandidateReader) Close() error {
	return r.in.Close(r.ctx)
}
