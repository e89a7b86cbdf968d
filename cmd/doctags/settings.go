package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gorewood/doctags/internal/config"
	"github.com/gorewood/doctags/internal/output"
)

// exportFlags are the export options shared by export, watch and serve.
type exportFlags struct {
	out        string
	captions   bool
	collisions string
	unexported bool
}

// register adds the export option flags to cmd.
func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output directory (default from settings, else the current directory)")
	cmd.Flags().BoolVar(&f.captions, "captions", false, "Add an '== <tag>' heading to every block")
	cmd.Flags().StringVar(&f.collisions, "collisions", "", "Duplicate tag policy: allow, suffix, merge or reject")
	cmd.Flags().BoolVar(&f.unexported, "unexported", false, "Include unexported Go declarations")
}

// loadSettings resolves settings for the current directory and applies the
// flags the user set explicitly.
func loadSettings(cmd *cobra.Command, flags *exportFlags) (config.Settings, error) {
	settings, err := config.Load(".")
	if err != nil {
		return config.Settings{}, output.NewUserErrorWithCause(err.Error(), err)
	}

	if flag := cmd.Root().PersistentFlags().Lookup("log-level"); flag != nil && flag.Changed {
		settings.LogLevel = flag.Value.String()
	}
	if flags == nil {
		return settings, nil
	}
	if cmd.Flags().Changed("out") {
		settings.OutputDirectory = flags.out
	}
	if cmd.Flags().Changed("captions") {
		settings.IncludeCaptions = flags.captions
	}
	if cmd.Flags().Changed("collisions") {
		settings.Collisions = flags.collisions
	}
	if cmd.Flags().Changed("unexported") {
		settings.Unexported = flags.unexported
	}
	return settings, nil
}

// newLogger builds the diagnostic logger on the command's stderr.
func newLogger(cmd *cobra.Command, settings config.Settings) (*logrus.Logger, error) {
	logger, err := output.NewLogger(settings.LogLevel, cmd.ErrOrStderr(), colorMode(cmd))
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	return logger, nil
}
