package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnsureUserConfig makes sure dataDir holds a config.yml, seeding it
// from defaultPath when one ships alongside the binary, or from the
// built-in defaults otherwise. Returns the user config path.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		// No shipped default; write the built-in one.
		b, err := yaml.Marshal(Default())
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(userPath, b, 0o644); err != nil {
			return "", err
		}
		return userPath, nil
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}
