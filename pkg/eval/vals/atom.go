package vals

import "src.rambutan.dev/pkg/diag"

// Atom is a symbol. An Atom created by the reader knows the List it appears
// in, which is used to tell whether it is in the head position of a form.
type Atom struct {
	Name    string
	Quoting Quoting
	// Where the atom appears in source. Src is nil for atoms created at
	// runtime.
	Src *diag.Source
	diag.Ranging

	parent *List
}

// NewAtom creates an Atom that is not part of any source.
func NewAtom(name string) *Atom {
	return &Atom{Name: name, Ranging: diag.NoRanging}
}

// Parent returns the List the atom was read in, or nil.
func (a *Atom) Parent() *List { return a.parent }

// IsHead reports whether the atom is the first element of its parent List.
func (a *Atom) IsHead() bool {
	return a.parent != nil && len(a.parent.Elems) > 0 && a.parent.Elems[0] == Value(a)
}

// Unquoted returns the atom without quoting flags. It returns a itself if it
// has none.
func (a *Atom) Unquoted() *Atom {
	if a.Quoting == 0 {
		return a
	}
	b := *a
	b.Quoting = 0
	return &b
}
