package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestPrinter_Error(t *testing.T) {
	const msg = "no input: pass a dump file or a Go source directory"

	t.Run("json on the main writer", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		NewPrinter(&stdout, true, false).WithStderr(&stderr).Error(NewUserError(msg))

		var result struct {
			Error string `json:"error"`
			Code  int    `json:"code"`
		}
		if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
			t.Fatalf("output should be JSON: %v\n%s", err, stdout.String())
		}
		if result.Error != msg || result.Code != ExitUserError {
			t.Errorf("result = %+v", result)
		}
		if stderr.Len() != 0 {
			t.Errorf("stderr = %q, want empty in JSON mode", stderr.String())
		}
	})

	t.Run("text on stderr", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		NewPrinter(&stdout, false, false).WithStderr(&stderr).Error(NewConflictError("1 of 2 units not exported"))

		if stderr.String() != "Error: 1 of 2 units not exported\n" {
			t.Errorf("stderr = %q", stderr.String())
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout = %q, want empty", stdout.String())
		}
	})

	t.Run("plain errors are user errors", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf, true, false).Error(errors.New("boom"))
		if !strings.Contains(buf.String(), fmt.Sprintf(`"code":%d`, ExitUserError)) {
			t.Errorf("output = %q", buf.String())
		}
	})
}

func TestPrinter_Stderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	NewPrinter(&stdout, false, false).WithStderr(&stderr).Stderr("Watching %s\n", "symbols.yaml")
	if stderr.String() != "Watching symbols.yaml\n" || stdout.Len() != 0 {
		t.Errorf("stdout %q, stderr %q", stdout.String(), stderr.String())
	}

	stderr.Reset()
	NewPrinter(&stdout, true, false).WithStderr(&stderr).Stderr("Watching %s\n", "symbols.yaml")
	if stderr.Len() != 0 {
		t.Errorf("JSON mode wrote status line %q", stderr.String())
	}
}

func TestPrinter_Println(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Println("vehicles.Car", 3)

	if buf.String() != "vehicles.Car 3\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrinter_PlainStyles(t *testing.T) {
	printer := NewPrinter(&bytes.Buffer{}, false, false)
	for _, got := range []string{printer.Bold("Car"), printer.Muted("Car"), printer.Failure("Car")} {
		if got != "Car" {
			t.Errorf("styled text without color = %q, want %q", got, "Car")
		}
	}
}

func TestPrinter_IsJSON(t *testing.T) {
	if !NewPrinter(&bytes.Buffer{}, true, false).IsJSON() {
		t.Error("IsJSON() = false for a JSON printer")
	}
	if NewPrinter(&bytes.Buffer{}, false, false).IsJSON() {
		t.Error("IsJSON() = true for a text printer")
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("IsTTY(buffer) = true")
	}
}

func TestErrorJSON(t *testing.T) {
	got := string(ErrorJSON("bad \"input\"", ExitConflict))
	if want := `{"error":"bad \"input\"","code":3}`; got != want {
		t.Errorf("ErrorJSON() = %s, want %s", got, want)
	}
}

func TestPrinter_WriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, true, false).WriteJSON(map[string]int{"written": 2}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if buf.String() != "{\n  \"written\": 2\n}\n" {
		t.Errorf("output = %q", buf.String())
	}

	if err := NewPrinter(&buf, true, false).WriteJSON(make(chan int)); err == nil {
		t.Error("WriteJSON() expected error for an unencodable value")
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Table([]string{"UNIT", "PATH"}, [][]string{
		{"vehicles.Car", "vehicles/Car.adoc"},
		{"vehicles", printer.Failure("vehicles/package-info.adoc")},
	})

	// Every column is padded to its widest cell, the last one included.
	want := fmt.Sprintf("%-12s  %-26s\n", "UNIT", "PATH") +
		fmt.Sprintf("%-12s  %-26s\n", "vehicles.Car", "vehicles/Car.adoc") +
		fmt.Sprintf("%-12s  %-26s\n", "vehicles", "vehicles/package-info.adoc")
	if buf.String() != want {
		t.Errorf("Table() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestPrinter_Section(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)
	printer.Section("Failures")
	printer.KeyValue("vehicles.Car", "duplicate tags: drive")

	want := "\nFailures\n────────\nvehicles.Car: duplicate tags: drive\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	NewPrinter(&buf, true, false).Section("Failures")
	if buf.Len() != 0 {
		t.Errorf("Section() in JSON mode wrote %q", buf.String())
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{in: "", want: ColorAuto},
		{in: "auto", want: ColorAuto},
		{in: "Always", want: ColorAlways},
		{in: " never ", want: ColorNever},
		{in: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorMode(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseColorMode(%q) expected error", tt.in)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseColorMode(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestColorMode_Enabled(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		noColor string
		want    bool
	}{
		{name: "always on a buffer", mode: ColorAlways, want: true},
		{name: "always ignores NO_COLOR", mode: ColorAlways, noColor: "1", want: true},
		{name: "never", mode: ColorNever, want: false},
		{name: "auto on a buffer", mode: ColorAuto, want: false},
		{name: "auto with NO_COLOR", mode: ColorAuto, noColor: "1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			if got := tt.mode.Enabled(&bytes.Buffer{}); got != tt.want {
				t.Errorf("%q.Enabled() = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("", &buf, ColorAuto)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("hidden")
	logger.WithField("unit", "vehicles.Car").Warn("duplicate tag")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info logged at default level: %q", out)
	}
	if !strings.Contains(out, "unit=vehicles.Car") {
		t.Errorf("missing field in %q", out)
	}

	if _, err := NewLogger("loud", &buf, ColorAuto); err == nil {
		t.Error("NewLogger() expected error for unknown level")
	}
}

func TestNewLogger_ColorFollowsMode(t *testing.T) {
	for _, mode := range []ColorMode{ColorAlways, ColorNever} {
		var buf bytes.Buffer
		logger, err := NewLogger("warn", &buf, mode)
		if err != nil {
			t.Fatalf("NewLogger() error = %v", err)
		}
		logger.Warn("duplicate tag")

		colored := strings.Contains(buf.String(), "\x1b[")
		if colored != (mode == ColorAlways) {
			t.Errorf("mode %q: colored = %v in %q", mode, colored, buf.String())
		}
	}
}
