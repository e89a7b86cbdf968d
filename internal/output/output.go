package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// palette is the set of styles a Printer renders with. Without color every
// style is plain and renders text unchanged.
type palette struct {
	failure lipgloss.Style
	bold    lipgloss.Style
	title   lipgloss.Style
	muted   lipgloss.Style
	key     lipgloss.Style
}

func newPalette(color bool) palette {
	if !color {
		plain := lipgloss.NewStyle()
		return palette{failure: plain, bold: plain, title: plain, muted: plain, key: plain}
	}
	return palette{
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		bold:    lipgloss.NewStyle().Bold(true),
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		muted:   lipgloss.NewStyle().Faint(true),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Printer writes command results either as styled text or as JSON.
//
// Results go to the main writer. In text mode errors and status lines go to
// the error writer; in JSON mode errors are documents on the main writer.
type Printer struct {
	w     io.Writer
	errW  io.Writer
	json  bool
	style palette
}

// NewPrinter creates a Printer on w. color enables ANSI styling of text
// output and has no effect in JSON mode.
func NewPrinter(w io.Writer, jsonMode bool, color bool) *Printer {
	return &Printer{w: w, errW: w, json: jsonMode, style: newPalette(color)}
}

// WithStderr routes text-mode errors and status lines to w.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON reports whether the printer writes JSON.
func (p *Printer) IsJSON() bool {
	return p.json
}

// Failure styles text as a failure marker.
func (p *Printer) Failure(text string) string {
	return p.style.failure.Render(text)
}

// Muted styles text as secondary detail.
func (p *Printer) Muted(text string) string {
	return p.style.muted.Render(text)
}

// Bold styles text as a name.
func (p *Printer) Bold(text string) string {
	return p.style.bold.Render(text)
}

// Error reports err. Errors that are not an *ExitError count as user errors.
func (p *Printer) Error(err error) {
	exitErr := &ExitError{}
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{Code: ExitUserError, Message: err.Error()}
	}

	if p.json {
		mustWrite(p.w.Write(ErrorJSON(exitErr.Message, exitErr.Code)))
		mustWrite(fmt.Fprintln(p.w))
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.style.failure.Render("Error"), exitErr.Message))
}

// Stderr writes a status line for people watching a terminal. JSON mode
// drops it.
func (p *Printer) Stderr(format string, args ...any) {
	if p.json {
		return
	}
	mustWrite(fmt.Fprintf(p.errW, format, args...))
}

// Println writes args and a newline to the main writer.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// WriteJSON writes data as one indented JSON document.
func (p *Printer) WriteJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorJSON encodes {"error": message, "code": code}.
func ErrorJSON(message string, code int) []byte {
	result, _ := json.Marshal(struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}{message, code})
	return result
}

// mustWrite panics on a failed write to stdout, stderr or a buffer, which
// leaves nothing sensible to report to.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}

// Table writes rows under headers, each column padded to its widest cell
// and separated by two spaces. Cells may already be styled.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	measure := func(row []string) {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = p.style.bold.Render(h)
	}
	p.tableRow(styled, widths)
	for _, row := range rows {
		p.tableRow(row, widths)
	}
}

func (p *Printer) tableRow(row []string, widths []int) {
	cells := make([]string, 0, len(widths))
	for i, cell := range row {
		if i < len(widths) {
			cells = append(cells, padRight(cell, widths[i]))
		}
	}
	mustWrite(fmt.Fprintln(p.w, strings.Join(cells, "  ")))
}

// Section writes a blank line and an underlined title. JSON mode drops it.
func (p *Printer) Section(title string) {
	if p.json {
		return
	}
	mustWrite(fmt.Fprintf(p.w, "\n%s\n%s\n",
		p.style.title.Render(title),
		p.style.muted.Render(strings.Repeat("─", lipgloss.Width(title)))))
}

// KeyValue writes "key: value".
func (p *Printer) KeyValue(key string, value string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.style.key.Render(key+":"), value))
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
