package splice

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Options holds the run configuration, loaded from a nine-line options file
// and optionally overridden by command-line flags.
type Options struct {
	SampleDataFile string
	MaxDistance    int64

	// SampleLength is read from field 3 of the options file for backward
	// compatibility but is otherwise unused.
	SampleLength int64

	GeneTableFile     string
	BoundaryTableFile string

	MinSpliceLength     int64
	SupportPosTolerance int64
	ResultsBaseName     string
	MinSupportingReads  int

	// LrunzipPath is the external decompressor invoked for .lrz inputs. Not
	// part of the nine-line file; defaults to "lrunzip" on PATH and can be
	// overridden by flag.
	LrunzipPath string
}

// DefaultOptions is the built-in configuration used when the process is
// invoked with no options-file argument.
var DefaultOptions = Options{
	SampleDataFile:      "",
	MaxDistance:         500000,
	SampleLength:        0,
	GeneTableFile:       "",
	BoundaryTableFile:   "",
	MinSpliceLength:     20,
	SupportPosTolerance: 5,
	ResultsBaseName:     "splitpairs",
	MinSupportingReads:  2,
	LrunzipPath:         "lrunzip",
}

// LoadOptions reads a nine-line options file. Each line is one field, in
// order: sample data file, maxDistance, an ignored legacy sample-length
// field, gene table path, boundary table path, minSpliceLength,
// supportPosTolerance, results base name, minSupportingReads.
//
// A missing file or fewer than nine lines is a fatal error.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("open options file %s: %w", path, err)
	}
	lines := strings.Split(string(data), "\n")
	// Tolerate a single trailing blank line from a final newline without
	// counting it toward the nine required fields.
	if len(lines) > 9 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 9 {
		return Options{}, fmt.Errorf("options file %s: expected 9 lines, got %d", path, len(lines))
	}

	parseInt := func(field string, name string) (int64, error) {
		v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("options file %s: field %s: %w", path, name, err)
		}
		return v, nil
	}

	o := DefaultOptions
	o.SampleDataFile = strings.TrimSpace(lines[0])
	if o.MaxDistance, err = parseInt(lines[1], "maxDistance"); err != nil {
		return Options{}, err
	}
	if o.SampleLength, err = parseInt(lines[2], "sampleLength"); err != nil {
		return Options{}, err
	}
	o.GeneTableFile = strings.TrimSpace(lines[3])
	o.BoundaryTableFile = strings.TrimSpace(lines[4])
	if o.MinSpliceLength, err = parseInt(lines[5], "minSpliceLength"); err != nil {
		return Options{}, err
	}
	if o.SupportPosTolerance, err = parseInt(lines[6], "supportPosTolerance"); err != nil {
		return Options{}, err
	}
	o.ResultsBaseName = strings.TrimSpace(lines[7])
	minSupport, err := parseInt(lines[8], "minSupportingReads")
	if err != nil {
		return Options{}, err
	}
	o.MinSupportingReads = int(minSupport)
	return o, nil
}
