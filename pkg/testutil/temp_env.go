package testutil

import (
	"os"
	"path/filepath"
)

// Setenv sets the value of an environment variable for the duration of a test.
// It returns value.
func Setenv(c Cleanuper, name, value string) string {
	SaveEnv(c, name)
	os.Setenv(name, value)
	return value
}

// Unsetenv unsets an environment variable for the duration of a test.
func Unsetenv(c Cleanuper, name string) {
	SaveEnv(c, name)
	os.Unsetenv(name)
}

// SaveEnv saves the current value of an environment variable so that it will be
// restored after a test has finished.
func SaveEnv(c Cleanuper, name string) {
	oldValue, existed := os.LookupEnv(name)
	if existed {
		c.Cleanup(func() { os.Setenv(name, oldValue) })
	} else {
		c.Cleanup(func() { os.Unsetenv(name) })
	}
}

// TempHome points HOME and the XDG base directories at a fresh temporary
// directory for the duration of a test, and returns that directory.
func TempHome(c TempDirer) string {
	home := c.TempDir()
	Setenv(c, "HOME", home)
	Setenv(c, "XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	Setenv(c, "XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	return home
}
