package diag

// Ranger wraps the Range method.
type Ranger interface {
	// Range returns the range associated with the value.
	Range() Ranging
}

// Ranging is a range [From, To) of byte offsets in a source. Structs embed it
// to satisfy Ranger.
type Ranging struct {
	From int
	To   int
}

// NoRanging is the Ranging of values that don't come from any source.
var NoRanging = Ranging{-1, -1}

// Range returns the Ranging itself.
func (r Ranging) Range() Ranging { return r }

// Covers reports whether p is within the range. The end offset counts as
// within, so that a cursor right after a token is considered to be on it.
func (r Ranging) Covers(p int) bool {
	return r != NoRanging && r.From <= p && p <= r.To
}
