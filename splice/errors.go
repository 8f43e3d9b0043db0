package splice

import "github.com/grailbio/base/errors"

// Accumulator collects non-fatal per-record errors encountered while a
// reader tolerates a structurally valid but unparsable line, without
// aborting the reader. The first error is preserved for diagnostics; the
// count is reported in the end-of-phase summary log line.
type Accumulator struct {
	once  errors.Once
	count int
}

// Add records err, if non-nil, and increments the count.
func (a *Accumulator) Add(err error) {
	if err == nil {
		return
	}
	a.count++
	a.once.Set(err)
}

// Count returns the number of errors recorded.
func (a *Accumulator) Count() int { return a.count }

// Err returns the first error recorded, or nil.
func (a *Accumulator) Err() error { return a.once.Err() }
