//go:build !windows

package shell

import (
	"os"
	"path/filepath"
)

func configHome() (string, error) {
	return xdgHome("XDG_CONFIG_HOME", ".config")
}

func dataHome() (string, error) {
	return xdgHome("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgHome(envName, fallback string) (string, error) {
	if dir := os.Getenv(envName); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback), nil
}
