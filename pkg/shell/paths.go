package shell

import (
	"os"
	"path/filepath"
)

// ConfigPath returns the default path of rc.yaml.
func ConfigPath() (string, error) {
	dir, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rambutan", "rc.yaml"), nil
}

// DBPath returns the default path of the store database, creating its
// directory if needed.
func DBPath() (string, error) {
	dir, err := dataHome()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "rambutan")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "db.bolt"), nil
}
