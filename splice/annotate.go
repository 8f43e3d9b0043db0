package splice

// annotateGene returns the name of the first gene table row on chromosome
// chrom whose [Pos1, Pos2] interval contains both posLeft and posRight (the
// two half records' own positions, not the derived splice endpoints), or
// the UnfoundGene sentinel if none does. The gene table is scanned
// linearly; the first match wins.
func annotateGene(genes []Gene, chrom Handle, posLeft, posRight int64, in *Interner) (name string, unknown bool) {
	for _, g := range genes {
		if g.Chrom != chrom {
			continue
		}
		if g.Pos1 <= posLeft && g.Pos1 <= posRight && g.Pos2 >= posLeft && g.Pos2 >= posRight {
			return in.String(g.ID1), false
		}
	}
	return UnfoundGene, true
}

// Novel reports whether a junction is novel: true unless some boundary
// record, on any chromosome, has exactly matching splice length and
// endpoints within tolerance of the junction's supporting range. The
// boundary table carries no chromosome filter here, matching the reference
// implementation's length-and-position-only comparison.
func Novel(c Candidate, boundaries []Boundary, tolerance int64) bool {
	spliceLength := c.SpliceLength()
	for _, b := range boundaries {
		if b.Length != spliceLength {
			continue
		}
		if abs64(c.MinSmallSupport-b.Pos1) <= tolerance && abs64(c.MaxLargeSupport-b.Pos2) <= tolerance {
			return false
		}
	}
	return true
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
