package vals

// Quoting is a set of quoting flags, carried from the prefix characters that
// precede an atom or a list in source.
type Quoting uint8

// Quoting flags. They are independent of each other.
const (
	// Quote is written as ' and suppresses evaluation.
	Quote Quoting = 1 << iota
	// QuasiQuote is written as ` and suppresses evaluation except for
	// elements marked with Unquote.
	QuasiQuote
	// Unquote is written as , and marks an element of a quasi-quoted list for
	// evaluation.
	Unquote
)

var quotingPrefixes = []struct {
	flag Quoting
	r    rune
}{{Quote, '\''}, {QuasiQuote, '`'}, {Unquote, ','}}

// QuotingOf returns the flag corresponding to a prefix character, or 0 if r is
// not a prefix character.
func QuotingOf(r rune) Quoting {
	for _, p := range quotingPrefixes {
		if p.r == r {
			return p.flag
		}
	}
	return 0
}

// Has reports whether all the flags in f are set in q.
func (q Quoting) Has(f Quoting) bool { return q&f == f }

// Suppresses reports whether q suppresses plain evaluation, i.e. whether it
// contains Quote or QuasiQuote.
func (q Quoting) Suppresses() bool { return q&(Quote|QuasiQuote) != 0 }

// Prefix returns the source prefix that produces q.
func (q Quoting) Prefix() string {
	var buf []rune
	for _, p := range quotingPrefixes {
		if q.Has(p.flag) {
			buf = append(buf, p.r)
		}
	}
	return string(buf)
}
