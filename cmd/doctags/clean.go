package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/gorewood/doctags/internal/export"
	"github.com/gorewood/doctags/internal/output"
)

// newCleanCmd creates the clean command.
func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [<comment>]",
		Short: "Normalize a documentation comment",
		Long: `Normalize a documentation comment exactly as export does before writing it.

The comment is trimmed, one space after every line break is dropped, and
escaped "*\/" terminators are restored to "*/". Without an argument the
comment is read from stdin.

Examples:
  doctags clean " A car.\n Drives itself. "
  pbpaste | doctags clean
  doctags clean --json < comment.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, args)
		},
	}
}

// runClean executes the clean command.
func runClean(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	var raw string
	if len(args) == 1 {
		raw = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			sysErr := output.NewSystemErrorWithCause("reading stdin", err)
			printer.Error(sysErr)
			return sysErr
		}
		raw = string(data)
	}

	cleaned := export.CleanComment(raw)
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]string{"cleaned": cleaned})
	}
	printer.Println(cleaned)
	return nil
}
