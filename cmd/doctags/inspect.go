package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/doctags/internal/export"
	"github.com/gorewood/doctags/internal/output"
	"github.com/gorewood/doctags/internal/source"
	"github.com/gorewood/doctags/internal/symbol"
)

// inspectedSymbol is one node of an inspect listing.
type inspectedSymbol struct {
	Name      string           `json:"name"`
	Kind      symbol.Kind      `json:"kind"`
	Namespace string           `json:"namespace,omitempty"`
	Position  *symbol.Position `json:"position,omitempty"`
	Comment   string           `json:"comment"`
	Depth     int              `json:"depth"`
}

// newInspectCmd creates the inspect command.
func newInspectCmd() *cobra.Command {
	var rawFlag, unexportedFlag bool

	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "List every symbol with its position and comment",
		Long: `List every symbol of the input as the exporter sees it: name, kind, source
position and comment, in output order. Nothing is written.

Comments are shown cleaned, as they would appear in a tagged block. Use --raw
to see the text the host handed over.

Examples:
  doctags inspect symbols.yaml
  doctags inspect ./ --unexported --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], rawFlag, unexportedFlag)
		},
	}

	cmd.Flags().BoolVar(&rawFlag, "raw", false, "Show comments exactly as the host provides them")
	cmd.Flags().BoolVar(&unexportedFlag, "unexported", false, "Include unexported Go declarations")

	return cmd
}

// runInspect executes the inspect command.
func runInspect(cmd *cobra.Command, input string, raw, unexported bool) error {
	printer := newPrinter(cmd)

	settings, err := loadSettings(cmd, nil)
	if err != nil {
		printer.Error(err)
		return err
	}
	logger, err := newLogger(cmd, settings)
	if err != nil {
		printer.Error(err)
		return err
	}
	if cmd.Flags().Changed("unexported") {
		settings.Unexported = unexported
	}

	tree, err := source.Load(input, source.GoOptions{Unexported: settings.Unexported, Logger: logger})
	if err != nil {
		err = output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(err)
		return err
	}

	var symbols []inspectedSymbol
	symbol.Walk(tree, func(n symbol.Node, depth int) {
		comment := n.Comment
		if !raw {
			comment = export.CleanComment(comment)
		}
		symbols = append(symbols, inspectedSymbol{
			Name:      n.Name,
			Kind:      n.Kind,
			Namespace: n.Namespace.Name,
			Position:  n.Position,
			Comment:   comment,
			Depth:     depth,
		})
	})

	return printInspect(printer, tree.Shape(), symbols)
}

// printInspect renders the symbol listing. Each symbol is a heading line
// with the comment indented below it.
func printInspect(printer *output.Printer, shape symbol.Shape, symbols []inspectedSymbol) error {
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"shape": shape.String(), "symbols": symbols})
	}

	for _, s := range symbols {
		indent := strings.Repeat("  ", s.Depth)
		name := s.Name
		if s.Depth == 0 && s.Kind == symbol.KindType && s.Namespace != "" {
			name = s.Namespace + "." + s.Name
		}
		details := s.Kind.String()
		if s.Position != nil {
			details += " " + s.Position.String()
		}
		printer.Println(indent + printer.Bold(name) + " " + printer.Muted("("+details+")"))
		if s.Comment == "" {
			continue
		}
		for _, line := range strings.Split(s.Comment, "\n") {
			printer.Println(strings.TrimRight(indent+"  "+line, " "))
		}
	}

	printer.Println()
	printer.Println(printer.Muted(formatCount(len(symbols), "symbol") + ", " + shape.String() + " input"))
	return nil
}

// formatCount renders n with a noun, pluralized with a trailing s.
func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
