package splice

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
)

func TestWriteResultsNovelAndGeneDispatch(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	ctx := context.Background()
	in := NewInterner()
	chr1 := in.Intern("chr1")

	candidates := []Candidate{
		{
			Chrom: chr1, Gene: "GENEA", GeneUnknown: false, Print: true,
			PositionSmaller: 10000, PositionLarger: 10500,
			MinSmallSupport: 10000, MaxLargeSupport: 10500,
			NumSupport: 3, NumSupportHalves: 1, NumSupportTotal: 4,
		},
		{
			Chrom: chr1, Gene: UnfoundGene, GeneUnknown: true, Print: true,
			PositionSmaller: 20000, PositionLarger: 20500,
			MinSmallSupport: 20000, MaxLargeSupport: 20500,
			NumSupport: 2, NumSupportHalves: 0, NumSupportTotal: 2,
		},
		{
			// Not printed: must not appear in either stream.
			Chrom: chr1, Gene: "GENEB", Print: false,
			PositionSmaller: 30000, PositionLarger: 30500,
		},
	}
	boundaries := []Boundary{{Length: 500, Pos1: 10000, Pos2: 10500}}

	base := filepath.Join(tempDir, "run1")
	expect.NoError(t, WriteResults(ctx, base, candidates, in, boundaries, 5))

	known, err := ioutil.ReadFile(base + ".results")
	expect.NoError(t, err)
	unknown, err := ioutil.ReadFile(base + ".results.unknown")
	expect.NoError(t, err)

	knownBody := string(known)
	unknownBody := string(unknown)

	if !strings.Contains(knownBody, "GENEA\tchr1\t3\t1\t4\t500\t10000--10500\t*") {
		t.Fatalf("known results missing expected line:\n%s", knownBody)
	}
	if !strings.Contains(unknownBody, "UNFOUND_\tchr1\t2\t0\t2\t500\t20000--20500\tNovel") {
		t.Fatalf("unknown results missing expected line:\n%s", unknownBody)
	}
	if strings.Contains(knownBody, "30000") || strings.Contains(unknownBody, "30000") {
		t.Fatal("an unprinted candidate must not appear in either results stream")
	}
}

func TestWriteResultsDeterministic(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	ctx := context.Background()
	in := NewInterner()
	chr1 := in.Intern("chr1")
	candidates := []Candidate{{
		Chrom: chr1, Gene: "GENEA", Print: true,
		PositionSmaller: 100, PositionLarger: 200,
		MinSmallSupport: 100, MaxLargeSupport: 200,
		NumSupport: 2, NumSupportTotal: 2,
	}}

	base1 := filepath.Join(tempDir, "run1")
	base2 := filepath.Join(tempDir, "run2")
	expect.NoError(t, WriteResults(ctx, base1, candidates, in, nil, 5))
	expect.NoError(t, WriteResults(ctx, base2, candidates, in, nil, 5))

	b1, err := ioutil.ReadFile(base1 + ".results")
	expect.NoError(t, err)
	b2, err := ioutil.ReadFile(base2 + ".results")
	expect.NoError(t, err)
	expect.EQ(t, string(b1), string(b2))
}
