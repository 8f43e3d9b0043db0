package splice

// Handle is a stable, borrowed reference to an interned string. Two handles
// compare equal iff the underlying strings are equal.
type Handle int32

// Interner is a process-wide set of strings returning a stable Handle for
// any string. Interning is idempotent: interning the same string twice
// returns the same handle.
//
// Interner is append-only during the read phases and read-only afterwards;
// per the single-threaded phased execution model it requires no locking.
type Interner struct {
	ids  map[string]Handle
	strs []string
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[string]Handle)}
}

// Intern returns the stable handle for s, interning it if this is the first
// occurrence.
func (in *Interner) Intern(s string) Handle {
	if h, ok := in.ids[s]; ok {
		return h
	}
	h := Handle(len(in.strs))
	in.strs = append(in.strs, s)
	in.ids[s] = h
	return h
}

// String returns the string that h refers to.
func (in *Interner) String(h Handle) string {
	return in.strs[h]
}

// Len returns the number of distinct interned strings.
func (in *Interner) Len() int {
	return len(in.strs)
}
