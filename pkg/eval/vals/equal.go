package vals

// Equal returns whether two values are equal.
//
// Numbers, strings and booleans are equal if they have the same value. Atoms
// are equal if they have the same name and quoting flags, and lists are equal
// if they have the same quoting flags and pairwise equal elements. Functions
// are only equal to themselves. Nil and false are different values.
func Equal(x, y Value) bool {
	if x == nil {
		x = Nil
	}
	if y == nil {
		y = Nil
	}
	switch x := x.(type) {
	case NilValue, Bool, Num, Str:
		return x == y
	case *Atom:
		if y, ok := y.(*Atom); ok {
			return x.Name == y.Name && x.Quoting == y.Quoting
		}
		return false
	case *List:
		if y, ok := y.(*List); ok {
			return equalList(x, y)
		}
		return false
	case Fn:
		return x == y
	default:
		panic("unknown value variant")
	}
}

func equalList(x, y *List) bool {
	if x == y {
		return true
	}
	if x.Quoting != y.Quoting || len(x.Elems) != len(y.Elems) {
		return false
	}
	for i := range x.Elems {
		if !Equal(x.Elems[i], y.Elems[i]) {
			return false
		}
	}
	return true
}
