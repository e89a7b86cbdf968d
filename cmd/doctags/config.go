package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/doctags/internal/config"
)

// configFile is one settings source and whether it exists.
type configFile struct {
	Scope string `json:"scope"`
	Path  string `json:"path"`
	Found bool   `json:"found"`
}

// configReport is the JSON form of the config command.
type configReport struct {
	Location config.Location `json:"location"`
	Files    []configFile    `json:"files"`
	Settings config.Settings `json:"settings"`
}

// newConfigCmd creates the config command.
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved settings and where they come from",
		Long: `Show the config directory, the settings and env files doctags reads, and
the settings that result for the current directory.

Files are listed in the order they are applied; later files override
earlier ones, and DOCTAGS_* variables override both.`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}
}

func runConfig(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	settings, err := loadSettings(cmd, nil)
	if err != nil {
		printer.Error(err)
		return err
	}

	loc := config.Locate()
	report := configReport{Location: loc, Settings: settings}
	for _, f := range []struct{ scope, path string }{
		{"global", loc.SettingsFile()},
		{"project", config.FileName},
		{"env", ".env.local"},
		{"env", ".env"},
		{"global env", loc.EnvFile()},
	} {
		if f.path == "" {
			continue
		}
		report.Files = append(report.Files, configFile{Scope: f.scope, Path: f.path, Found: exists(f.path)})
	}

	if printer.IsJSON() {
		return printer.WriteJSON(report)
	}

	dir := loc.Dir
	if dir == "" {
		dir = printer.Failure("unknown")
	}
	printer.KeyValue("config dir", dir+" "+printer.Muted("("+loc.Origin+")"))

	printer.Section("Files")
	rows := make([][]string, 0, len(report.Files))
	for _, f := range report.Files {
		status := printer.Muted("missing")
		if f.Found {
			status = "found"
		}
		rows = append(rows, []string{f.Scope, filepath.Clean(f.Path), status})
	}
	printer.Table([]string{"SCOPE", "PATH", "STATUS"}, rows)

	printer.Section("Settings")
	out := settings.OutputDirectory
	if out == "" {
		out = printer.Muted("(current directory)")
	}
	printer.KeyValue("output_directory", out)
	printer.KeyValue("include_captions", strconv.FormatBool(settings.IncludeCaptions))
	printer.KeyValue("collisions", settings.Collisions)
	printer.KeyValue("log_level", settings.LogLevel)
	printer.KeyValue("unexported", strconv.FormatBool(settings.Unexported))
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
