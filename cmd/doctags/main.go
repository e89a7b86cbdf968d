// Package main provides the entry point for the doctags CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/doctags/internal/config"
	"github.com/gorewood/doctags/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// colorMode reads the --color persistent flag. The value is validated before
// any command runs, so a bad value here falls back to auto.
func colorMode(cmd *cobra.Command) output.ColorMode {
	flag := cmd.Root().PersistentFlags().Lookup("color")
	if flag == nil {
		return output.ColorAuto
	}
	mode, err := output.ParseColorMode(flag.Value.String())
	if err != nil {
		return output.ColorAuto
	}
	return mode
}

// newPrinter builds the printer every command writes through. Human-mode
// errors and warnings go to stderr.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), colorMode(cmd).Enabled(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the doctags CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctags",
		Short: "Export documentation comments as tagged AsciiDoc blocks",
		Long: `doctags - Export documentation comments as tagged AsciiDoc blocks.

doctags reads a symbol tree and writes one AsciiDoc file per type and per
package, mirroring the namespace as directories. Every documented symbol
becomes a block between "// tag::<name>[]" and "// end::<name>[]" markers
that other documents pull in with include::file.adoc[tag=<name>].

Inputs are symbol dumps in YAML or JSON (a flat "classes" list or a nested
"elements" tree) or a Go source directory.

Settings come from flags, DOCTAGS_* environment variables (also read from
.env.local and .env), ./doctags.yaml and the doctags.yaml in the config
directory, in that order.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'doctags --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Load .env.local, .env and the global env file so DOCTAGS_* settings
	// can live next to the project. Variables already set take precedence.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if _, err := output.ParseColorMode(cmd.Root().PersistentFlags().Lookup("color").Value.String()); err != nil {
			return output.NewUserErrorWithCause(err.Error(), err)
		}
		if err := config.LoadEnvFiles("."); err != nil {
			return output.NewUserErrorWithCause(err.Error(), err)
		}
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", string(output.ColorAuto), "Color output: auto, always or never (auto honors NO_COLOR)")
	cmd.PersistentFlags().String("log-level", "", "Diagnostic log level: debug, info, warn or error (default from settings)")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newExportCmd(), "core")
	addGroupedCommand(cmd, newWatchCmd(), "core")
	addGroupedCommand(cmd, newCleanCmd(), "core")
	addGroupedCommand(cmd, newInspectCmd(), "core")
	addGroupedCommand(cmd, newConfigCmd(), "core")

	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
