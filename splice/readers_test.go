package splice

import (
	"context"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
)

func TestReadHalvesStopsOnShortLine(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	// Two well-formed records followed by two short trailing lines.
	path := testWriteFile(t, tempDir,
		"r1\tL\t20\t40\t+\tchr1\t100\tAAAA\tIIII\tMAPQ\n"+
			"r2\tR\t20\t40\t+\tchr1\t200\tAAAA\tIIII\tMAPQ\n"+
			"short1\tL\n"+
			"short2\tR\n")

	ctx := context.Background()
	in := NewInterner()
	stats := NewHalfStats()
	var acc Accumulator
	halves, err := ReadHalves(ctx, path, "", in, stats, &acc)
	expect.NoError(t, err)
	expect.EQ(t, len(halves), 2)
	expect.EQ(t, acc.Count(), 0)
}

func TestErrorAccumulatorCountsUnparsableFields(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	lines := []string{
		"r1\tL\t20\t40\t+\tchr1\t100\tAAAA\tIIII\tMAPQ",
		"bad1\tL\tnotanumber\t40\t+\tchr1\t100\tAAAA\tIIII\tMAPQ",
		"bad2\tL\t20\tnotanumber\t+\tchr1\t100\tAAAA\tIIII\tMAPQ",
		"r2\tR\t20\t40\t+\tchr1\t200\tAAAA\tIIII\tMAPQ",
	}
	data := ""
	for _, l := range lines {
		data += l + "\n"
	}
	path := testWriteFile(t, tempDir, data)

	ctx := context.Background()
	in := NewInterner()
	stats := NewHalfStats()

	var acc Accumulator
	// Two structurally valid lines have an unparsable numeric field; both
	// are skipped and recorded rather than aborting the read, so the two
	// good lines on either side of them still come through.
	halves, err := ReadHalves(ctx, path, "", in, stats, &acc)
	expect.NoError(t, err)
	expect.EQ(t, len(halves), 2)
	expect.EQ(t, acc.Count(), 2)
	if acc.Err() == nil {
		t.Fatal("expected the accumulator to retain the first error")
	}
}
