package main

import (
	"fmt"
	"strconv"

	"github.com/gorewood/doctags/internal/export"
	"github.com/gorewood/doctags/internal/output"
)

// printReport renders an export report as a table, or as JSON.
func printReport(printer *output.Printer, report *export.Report) error {
	if printer.IsJSON() {
		return printer.WriteJSON(report)
	}

	rows := make([][]string, 0, len(report.Units))
	for _, u := range report.Units {
		status := "written"
		if u.Inferred {
			status = "written (inferred)"
		}
		if u.Err != nil {
			status = printer.Failure("failed")
		}
		rows = append(rows, []string{u.Name, u.Kind.String(), u.Path, strconv.Itoa(u.Tags), status})
	}
	printer.Table([]string{"UNIT", "KIND", "PATH", "TAGS", "STATUS"}, rows)

	if failed := report.Failed(); len(failed) > 0 {
		printer.Section("Failures")
		for _, f := range failed {
			printer.KeyValue(f.Name, f.Error)
		}
	}

	printer.Println()
	printer.Println(printer.Muted(fmt.Sprintf("%s input, %d written, %d failed",
		report.Shape, report.Written(), len(report.Failed()))))
	return nil
}

// printPlan renders the units an export would write, as resolved by a
// preview pass.
func printPlan(printer *output.Printer, report *export.Report) error {
	if printer.IsJSON() {
		return printer.WriteJSON(struct {
			DryRun bool `json:"dry_run"`
			*export.Report
		}{DryRun: true, Report: report})
	}

	rows := make([][]string, 0, len(report.Units))
	for _, u := range report.Units {
		path := u.Path
		if u.Err != nil {
			path = printer.Failure(u.Error)
		}
		rows = append(rows, []string{u.Name, u.Kind.String(), path, strconv.Itoa(u.Tags)})
	}
	printer.Table([]string{"UNIT", "KIND", "PATH", "TAGS"}, rows)
	printer.Println()
	printer.Println(printer.Muted(fmt.Sprintf("dry run: %d units, %d would fail, nothing written",
		len(report.Units), len(report.Failed()))))
	return nil
}
