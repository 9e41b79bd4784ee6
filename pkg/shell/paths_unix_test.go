//go:build !windows

package shell

import (
	"os"
	"path/filepath"
	"testing"

	"src.rambutan.dev/pkg/testutil"
)

func TestPaths_XDG(t *testing.T) {
	home := testutil.TempHome(t)

	config, err := ConfigPath()
	if want := filepath.Join(home, ".config", "rambutan", "rc.yaml"); err != nil || config != want {
		t.Errorf("ConfigPath() -> %q, %v, want %q", config, err, want)
	}

	db, err := DBPath()
	want := filepath.Join(home, ".local", "share", "rambutan", "db.bolt")
	if err != nil || db != want {
		t.Errorf("DBPath() -> %q, %v, want %q", db, err, want)
	}
	if _, err := os.Stat(filepath.Dir(db)); err != nil {
		t.Errorf("data directory not created: %v", err)
	}
}

func TestPaths_HomeFallback(t *testing.T) {
	home := testutil.TempHome(t)
	testutil.Unsetenv(t, "XDG_CONFIG_HOME")
	testutil.Unsetenv(t, "XDG_DATA_HOME")

	config, _ := ConfigPath()
	if want := filepath.Join(home, ".config", "rambutan", "rc.yaml"); config != want {
		t.Errorf("ConfigPath() -> %q, want %q", config, want)
	}
	db, _ := DBPath()
	if want := filepath.Join(home, ".local", "share", "rambutan", "db.bolt"); db != want {
		t.Errorf("DBPath() -> %q, want %q", db, want)
	}
}
