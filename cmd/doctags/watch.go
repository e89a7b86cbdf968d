package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/doctags/internal/source"
	"github.com/gorewood/doctags/internal/watch"
)

// newWatchCmd creates the watch command.
func newWatchCmd() *cobra.Command {
	var flags exportFlags
	var debounceFlag time.Duration

	cmd := &cobra.Command{
		Use:   "watch <input>",
		Short: "Export again whenever the input changes",
		Long: `Export once, then export again whenever the input changes, until interrupted.

For a dump file the file itself is watched. For a Go source directory every
non-test .go file below it is watched, including directories created later.
A burst of changes triggers a single export.

Failed exports are reported and the watcher keeps running.

Examples:
  doctags watch symbols.yaml --out docs/api
  doctags watch ./ --out docs/api --debounce 1s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], &flags, debounceFlag)
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&debounceFlag, "debounce", watch.DefaultDebounce, "Quiet period after the last change before exporting")

	return cmd
}

// runWatch executes the watch command.
func runWatch(cmd *cobra.Command, input string, flags *exportFlags, debounce time.Duration) error {
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
	// Reject a bad policy before watching rather than on every change.
	if _, err := settings.ExportConfig(); err != nil {
		printer.Error(err)
		return err
	}

	// Unchanged packages are not parsed again between runs.
	cache, err := source.NewPackageCache(source.DefaultCacheSize)
	if err != nil {
		printer.Error(err)
		return err
	}
	goOpts := source.GoOptions{Unexported: settings.Unexported, Logger: logger, Cache: cache}

	printer.Stderr("Watching %s (Ctrl-C to stop)\n", input)
	err = watch.Run(cmd.Context(), input, watch.Options{Debounce: debounce, Logger: logger}, func() error {
		return exportOnce(printer, settings, input, goOpts, logger)
	})
	if err != nil {
		printer.Error(err)
		return err
	}
	return nil
}
