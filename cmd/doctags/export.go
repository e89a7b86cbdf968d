package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gorewood/doctags/internal/config"
	"github.com/gorewood/doctags/internal/export"
	"github.com/gorewood/doctags/internal/output"
	"github.com/gorewood/doctags/internal/source"
	"github.com/gorewood/doctags/internal/symbol"
)

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var flags exportFlags
	var dryRunFlag bool

	cmd := &cobra.Command{
		Use:   "export <input>",
		Short: "Write documentation comments as tagged AsciiDoc files",
		Long: `Write documentation comments as tagged AsciiDoc files.

<input> is a symbol dump (YAML or JSON) or a Go source directory. Each type
becomes <out>/<namespace path>/<Type>.adoc and each package becomes
<out>/<namespace path>/package-info.adoc. Existing files are overwritten.

A unit that cannot be written is reported and skipped; the remaining units
are still written.

Examples:
  doctags export symbols.yaml --out docs/api        # Export a flat dump
  doctags export ./ --out docs/api --captions       # Export this Go module
  doctags export symbols.json --collisions suffix   # Rename repeated tags
  doctags export ./ --dry-run --json                # List planned files`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], &flags, dryRunFlag)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "List the units that would be written without writing them")

	return cmd
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, input string, flags *exportFlags, dryRun bool) error {
	printer := newPrinter(cmd)

	settings, err := loadSettings(cmd, flags)
	if err != nil {
		printer.Error(err)
		return err
	}
	logger, err := newLogger(cmd, settings)
	if err != nil {
		printer.Error(err)
		return err
	}

	goOpts := source.GoOptions{Unexported: settings.Unexported, Logger: logger}
	if dryRun {
		exporter, tree, err := prepareExport(settings, input, goOpts, logger)
		if err != nil {
			printer.Error(err)
			return err
		}
		report := exporter.Preview(tree)
		if err := printPlan(printer, report); err != nil {
			return output.NewSystemErrorWithCause("writing plan", err)
		}
		if err := reportError(report); err != nil {
			if !printer.IsJSON() {
				printer.Error(err)
			}
			return err
		}
		return nil
	}
	return exportOnce(printer, settings, input, goOpts, logger)
}

// prepareExport validates settings and loads the input.
func prepareExport(
	settings config.Settings, input string, goOpts source.GoOptions, logger *logrus.Logger,
) (*export.Exporter, symbol.Tree, error) {
	cfg, err := settings.ExportConfig()
	if err != nil {
		return nil, nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	tree, err := source.Load(input, goOpts)
	if err != nil {
		return nil, nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	return export.New(cfg, export.WithLogger(logger)), tree, nil
}

// exportOnce loads input, writes every unit and prints the report.
func exportOnce(
	printer *output.Printer, settings config.Settings, input string, goOpts source.GoOptions, logger *logrus.Logger,
) error {
	exporter, tree, err := prepareExport(settings, input, goOpts, logger)
	if err != nil {
		printer.Error(err)
		return err
	}

	report := exporter.Export(tree)
	if err := printReport(printer, report); err != nil {
		return output.NewSystemErrorWithCause("writing report", err)
	}

	if err := reportError(report); err != nil {
		if !printer.IsJSON() {
			printer.Error(err)
		}
		return err
	}
	return nil
}

// reportError maps failed units to an exit error. A pass whose only failures
// are refused duplicate tags is a conflict.
func reportError(report *export.Report) error {
	failed := report.Failed()
	if len(failed) == 0 {
		return nil
	}

	conflicts := 0
	for _, f := range failed {
		if errors.Is(f.Err, export.ErrTagCollision) {
			conflicts++
		}
	}
	msg := fmt.Sprintf("%d of %d units not exported", len(failed), len(report.Units))
	if conflicts == len(failed) {
		return output.NewConflictError(msg + " (duplicate tags refused)")
	}
	return output.NewSystemErrorWithCause(msg, failed[0].Err)
}
