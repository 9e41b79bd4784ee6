package store

import (
	"path/filepath"

	"src.rambutan.dev/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file for testing. The
// Store is closed when the test ends.
func MustTempStore(c testutil.TempDirer) DBStore {
	st, err := NewStore(filepath.Join(c.TempDir(), "db"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { st.Close() })
	return st
}
