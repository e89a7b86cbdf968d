package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/doctags/internal/export"
)

// FileName is the name of the settings file in the project directory and in
// the config directory.
const FileName = "doctags.yaml"

// Settings are the resolved doctags options.
type Settings struct {
	OutputDirectory string `yaml:"output_directory" json:"output_directory"`
	IncludeCaptions bool   `yaml:"include_captions" json:"include_captions"`
	Collisions      string `yaml:"collisions"       json:"collisions"`
	LogLevel        string `yaml:"log_level"        json:"log_level"`
	Unexported      bool   `yaml:"unexported"       json:"unexported"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Settings {
	return Settings{
		Collisions: string(export.CollisionAllow),
		LogLevel:   "warn",
	}
}

// Load resolves settings for a project directory.
//
// Later sources override earlier ones key by key:
//  1. Defaults
//  2. <config dir>/doctags.yaml
//  3. <projectDir>/doctags.yaml
//  4. DOCTAGS_OUTPUT_DIR, DOCTAGS_CAPTIONS, DOCTAGS_COLLISIONS, DOCTAGS_LOG_LEVEL
//
// Missing files are skipped. Command-line flags are applied by the caller.
func Load(projectDir string) (Settings, error) {
	settings := Defaults()

	if global := Locate().SettingsFile(); global != "" {
		if err := mergeFile(&settings, global); err != nil {
			return Settings{}, err
		}
	}
	if err := mergeFile(&settings, filepath.Join(projectDir, FileName)); err != nil {
		return Settings{}, err
	}
	if err := mergeEnv(&settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// mergeFile decodes path over settings. Keys absent from the file keep their
// current value; unknown keys are an error. An empty file changes nothing.
func mergeFile(settings *Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(settings); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func mergeEnv(settings *Settings) error {
	if v := os.Getenv("DOCTAGS_OUTPUT_DIR"); v != "" {
		settings.OutputDirectory = v
	}
	if v := os.Getenv("DOCTAGS_CAPTIONS"); v != "" {
		captions, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DOCTAGS_CAPTIONS: %w", err)
		}
		settings.IncludeCaptions = captions
	}
	if v := os.Getenv("DOCTAGS_COLLISIONS"); v != "" {
		settings.Collisions = v
	}
	if v := os.Getenv("DOCTAGS_LOG_LEVEL"); v != "" {
		settings.LogLevel = v
	}
	return nil
}

// ExportConfig converts settings to exporter options, validating the
// collision policy.
func (s Settings) ExportConfig() (export.Config, error) {
	policy, err := export.ParseCollisionPolicy(s.Collisions)
	if err != nil {
		return export.Config{}, err
	}
	return export.Config{
		OutputDirectory: s.OutputDirectory,
		IncludeCaptions: s.IncludeCaptions,
		Collisions:      policy,
	}, nil
}
