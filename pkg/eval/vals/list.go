package vals

import "src.rambutan.dev/pkg/diag"

// List is an ordered sequence of values. Lists created by the reader are
// forms: they know their source, their parent List, and the elements they own
// point back at them.
type List struct {
	Elems   []Value
	Quoting Quoting
	// Where the list appears in source. Src is nil for lists created at
	// runtime.
	Src *diag.Source
	diag.Ranging

	parent *List
}

// MakeList creates a data list from the given elements. Unlike Adopt, it does
// not touch the parent links of the elements, which may belong to other
// forms.
func MakeList(elems ...Value) *List {
	return &List{Elems: elems, Ranging: diag.NoRanging}
}

// Adopt appends v to the list and makes the list the parent of v if v is an
// Atom or a List. It is used when building forms.
func (l *List) Adopt(v Value) {
	switch v := v.(type) {
	case *Atom:
		v.parent = l
	case *List:
		v.parent = l
	}
	l.Elems = append(l.Elems, v)
}

// Parent returns the List this list is an element of, or nil.
func (l *List) Parent() *List { return l.parent }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.Elems) }

// Head returns the first element, or Nil if the list is empty.
func (l *List) Head() Value {
	if len(l.Elems) == 0 {
		return Nil
	}
	return l.Elems[0]
}

// Tail returns all elements but the first.
func (l *List) Tail() []Value {
	if len(l.Elems) == 0 {
		return nil
	}
	return l.Elems[1:]
}

// Unquoted returns the list without quoting flags. It returns l itself if it
// has none. The elements are shared with l.
func (l *List) Unquoted() *List {
	if l.Quoting == 0 {
		return l
	}
	m := *l
	m.Quoting = 0
	return &m
}
