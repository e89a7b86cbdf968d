// Package config resolves doctags settings from config files, the
// environment, and defaults.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// EnvFileName is the global env file inside the config directory.
const EnvFileName = "env"

// Location is the resolved config directory and what selected it.
type Location struct {
	Dir string `json:"dir"`
	// Origin names the variable that chose Dir, or "home" for the default.
	Origin string `json:"origin"`
}

// Locate finds the config directory. The first match wins:
// DOCTAGS_CONFIG_HOME as is, then doctags under XDG_CONFIG_HOME, under
// APPDATA on Windows, and under ~/.config. Dir is empty when none applies.
func Locate() Location {
	if dir := os.Getenv("DOCTAGS_CONFIG_HOME"); dir != "" {
		return Location{Dir: dir, Origin: "DOCTAGS_CONFIG_HOME"}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return Location{Dir: filepath.Join(xdg, "doctags"), Origin: "XDG_CONFIG_HOME"}
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return Location{Dir: filepath.Join(appData, "doctags"), Origin: "APPDATA"}
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Location{}
	}
	return Location{Dir: filepath.Join(home, ".config", "doctags"), Origin: "home"}
}

// Dir returns the config directory, or "" when it cannot be determined.
func Dir() string {
	return Locate().Dir
}

// SettingsFile is the global doctags.yaml, or "" without a directory.
func (l Location) SettingsFile() string {
	return l.file(FileName)
}

// EnvFile is the global env file, or "" without a directory.
func (l Location) EnvFile() string {
	return l.file(EnvFileName)
}

func (l Location) file(name string) string {
	if l.Dir == "" {
		return ""
	}
	return filepath.Join(l.Dir, name)
}
