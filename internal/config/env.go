package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnvFiles sets variables from env files without overriding anything
// already in the environment, so the first file that sets a variable wins.
//
// Resolution order:
//  1. <projectDir>/.env.local  (per-checkout override, usually ignored by VCS)
//  2. <projectDir>/.env
//  3. <config dir>/env         (global fallback)
//
// Missing files are skipped.
func LoadEnvFiles(projectDir string) error {
	paths := []string{
		filepath.Join(projectDir, ".env.local"),
		filepath.Join(projectDir, ".env"),
	}
	if global := Locate().EnvFile(); global != "" {
		paths = append(paths, global)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("reading env file %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading env file %s: %w", path, err)
		}
	}
	return nil
}
