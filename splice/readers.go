package splice

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
)

// maxLineLength bounds a single input line; on a longer line the owning
// reader returns an error wrapped with the file path, discarding the records
// read so far.
const maxLineLength = 1 << 20

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return sc
}

// ReadHalves reads a half-alignment file, interning ids and chromosomes,
// computing each record's split position and half-keys, and folding piece
// lengths into stats. A line with fewer than 10 tab-separated fields
// terminates the read gracefully (the rest of the file is assumed to be a
// truncated trailer) rather than failing. A structurally valid line with an
// unparsable field is skipped and recorded in errs rather than aborting the
// read.
func ReadHalves(ctx context.Context, path, lrunzipPath string, in *Interner, stats *HalfStats, errs *Accumulator) ([]Half, error) {
	r, err := OpenInput(ctx, path, lrunzipPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var halves []Half
	sc := newLineScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Split(sc.Text(), "\t")
		if len(fields) < 10 {
			log.Printf("%s: stopping at line %d (%d fields, need 10)", path, lineNo, len(fields))
			break
		}
		id := in.Intern(fields[0])
		side, err := ParseSide(fields[1])
		if err != nil {
			errs.Add(fmt.Errorf("%s:%d: %w", path, lineNo, err))
			continue
		}
		length, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			errs.Add(fmt.Errorf("%s:%d: piece length: %w", path, lineNo, err))
			continue
		}
		totalLen, err := strconv.Atoi(strings.TrimSpace(fields[3]))
		if err != nil {
			errs.Add(fmt.Errorf("%s:%d: total read length: %w", path, lineNo, err))
			continue
		}
		dir, err := ParseStrand(fields[4])
		if err != nil {
			errs.Add(fmt.Errorf("%s:%d: %w", path, lineNo, err))
			continue
		}
		chrom := in.Intern(fields[5])
		position, err := strconv.ParseInt(strings.TrimSpace(fields[6]), 10, 64)
		if err != nil {
			errs.Add(fmt.Errorf("%s:%d: position: %w", path, lineNo, err))
			continue
		}

		h := Half{
			ID:       id,
			Side:     side,
			Length:   length,
			TotalLen: totalLen,
			Dir:      dir,
			Chrom:    chrom,
			Position: position,
		}
		if isUpstream(h.Side, h.Dir) {
			h.SplitPos = h.Position + int64(h.Length)
		} else {
			h.SplitPos = h.Position
		}
		h.HalfKey = in.Intern(fields[0] + h.Side.String())
		h.OtherHalfKey = in.Intern(fields[0] + h.Side.Opposite().String())
		stats.Update(h.HalfKey, h.Length)
		halves = append(halves, h)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return halves, nil
}

// ReadGenes reads the known-gene table. A line with fewer than 11 fields
// terminates the read gracefully. Position1/Position2 are normalized so
// Position1 <= Position2. A structurally valid line with an unparsable field
// is skipped and recorded in errs rather than aborting the read.
func ReadGenes(ctx context.Context, path, lrunzipPath string, in *Interner, errs *Accumulator) ([]Gene, error) {
	r, err := OpenInput(ctx, path, lrunzipPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var genes []Gene
	sc := newLineScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Split(sc.Text(), "\t")
		if len(fields) < 11 {
			log.Printf("%s: stopping at line %d (%d fields, need 11)", path, lineNo, len(fields))
			break
		}
		strand, err := ParseStrand(fields[3])
		if err != nil {
			errs.Add(fmt.Errorf("%s:%d: %w", path, lineNo, err))
			continue
		}
		pos1, err := strconv.ParseInt(strings.TrimSpace(fields[4]), 10, 64)
		if err != nil {
			errs.Add(fmt.Errorf("%s:%d: position1: %w", path, lineNo, err))
			continue
		}
		pos2, err := strconv.ParseInt(strings.TrimSpace(fields[5]), 10, 64)
		if err != nil {
			errs.Add(fmt.Errorf("%s:%d: position2: %w", path, lineNo, err))
			continue
		}
		if pos1 > pos2 {
			pos1, pos2 = pos2, pos1
		}
		genes = append(genes, Gene{
			ID1:    in.Intern(fields[0]),
			ID2:    in.Intern(fields[1]),
			Chrom:  in.Intern(fields[2]),
			Strand: strand,
			Pos1:   pos1,
			Pos2:   pos2,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return genes, nil
}

// ReadBoundaries reads the intron/exon boundary table. A line with fewer
// than 13 fields terminates the read gracefully. Column 12 is an "A--B"
// string; a missing "--" separator yields positions (0, 0). A structurally
// valid line with an unparsable field is skipped and recorded in errs rather
// than aborting the read.
func ReadBoundaries(ctx context.Context, path, lrunzipPath string, in *Interner, errs *Accumulator) ([]Boundary, error) {
	r, err := OpenInput(ctx, path, lrunzipPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var boundaries []Boundary
	sc := newLineScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Split(sc.Text(), "\t")
		if len(fields) < 13 {
			log.Printf("%s: stopping at line %d (%d fields, need 13)", path, lineNo, len(fields))
			break
		}
		strand, err := ParseStrand(fields[3])
		if err != nil {
			errs.Add(fmt.Errorf("%s:%d: %w", path, lineNo, err))
			continue
		}
		length, err := strconv.ParseInt(strings.TrimSpace(fields[11]), 10, 64)
		if err != nil {
			errs.Add(fmt.Errorf("%s:%d: length: %w", path, lineNo, err))
			continue
		}
		pos1, pos2 := parseBoundaryRange(fields[12])
		boundaries = append(boundaries, Boundary{
			ID1:    in.Intern(fields[0]),
			ID2:    in.Intern(fields[1]),
			Chrom:  in.Intern(fields[2]),
			Strand: strand,
			Length: length,
			Pos1:   pos1,
			Pos2:   pos2,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return boundaries, nil
}

// parseBoundaryRange parses a "A--B" cell into (A, B). A missing "--"
// separator yields (0, 0).
func parseBoundaryRange(cell string) (int64, int64) {
	i := strings.Index(cell, "--")
	if i < 0 {
		return 0, 0
	}
	a, err1 := strconv.ParseInt(strings.TrimSpace(cell[:i]), 10, 64)
	b, err2 := strconv.ParseInt(strings.TrimSpace(cell[i+2:]), 10, 64)
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return a, b
}
