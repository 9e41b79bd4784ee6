package diag

// Source describes a piece of source code.
type Source struct {
	// Name of the source, like a file name or "[tty 3]".
	Name string
	// The source code.
	Code string
	// Whether the source comes from a file.
	IsFile bool
}

// NewContext is a shorthand for creating a Context for a range of the source.
func (src *Source) NewContext(r Ranger) *Context {
	return NewContext(src.Name, src.Code, r)
}
