// Package output renders doctags results for people and for scripts.
//
// Every command writes through a Printer, which switches between styled text
// and JSON on the --json flag:
//
//	mode, _ := output.ParseColorMode("auto")
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, mode.Enabled(cmd.OutOrStdout()))
//	printer.Table([]string{"UNIT", "PATH"}, rows)
//	printer.Error(err)
//
// In JSON mode errors are written as {"error": "...", "code": N} on the main
// writer so a caller reading stdout always gets a document.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: every unit written
//	output.ExitUserError   // 1: bad flags, unreadable input or config
//	output.ExitSystemError // 2: a unit could not be written
//	output.ExitConflict    // 3: a unit was refused by the reject collision policy
//
// # Logging
//
// Diagnostics from the exporter and the watcher go through a logrus logger
// built by NewLogger. The Printer is for results; the logger is for what
// happened along the way. Both follow the same ColorMode.
package output
