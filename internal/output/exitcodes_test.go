package output

import (
	"errors"
	"testing"
)

func TestExitCodeConstants(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitUserError", ExitUserError, 1},
		{"ExitSystemError", ExitSystemError, 2},
		{"ExitConflict", ExitConflict, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	tests := []struct {
		name         string
		err          *ExitError
		wantCode     int
		wantMessage  string
		wantErrorStr string
	}{
		{
			name:         "user error",
			err:          NewUserError("no input: pass a dump file or a Go source directory"),
			wantCode:     ExitUserError,
			wantMessage:  "no input: pass a dump file or a Go source directory",
			wantErrorStr: "no input: pass a dump file or a Go source directory",
		},
		{
			name:         "system error",
			err:          NewSystemError("writing vehicles/Car.adoc failed"),
			wantCode:     ExitSystemError,
			wantMessage:  "writing vehicles/Car.adoc failed",
			wantErrorStr: "writing vehicles/Car.adoc failed",
		},
		{
			name:         "conflict error",
			err:          NewConflictError("tag drive is used twice"),
			wantCode:     ExitConflict,
			wantMessage:  "tag drive is used twice",
			wantErrorStr: "tag drive is used twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMessage)
			}
			if tt.err.Error() != tt.wantErrorStr {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantErrorStr)
			}
		})
	}
}

func TestExitErrorWrapping(t *testing.T) {
	underlying := errors.New("permission denied")
	err := NewSystemErrorWithCause("export failed", underlying)

	if err.Code != ExitSystemError {
		t.Errorf("Code = %d, want %d", err.Code, ExitSystemError)
	}

	// Test Unwrap
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}

	// Test that Error() includes the message
	if err.Error() != "export failed" {
		t.Errorf("Error() = %q, want %q", err.Error(), "export failed")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: ExitSuccess,
		},
		{
			name:     "ExitError user",
			err:      NewUserError("bad input"),
			expected: ExitUserError,
		},
		{
			name:     "ExitError system",
			err:      NewSystemError("2 units failed"),
			expected: ExitSystemError,
		},
		{
			name:     "ExitError conflict",
			err:      NewConflictError("duplicate"),
			expected: ExitConflict,
		},
		{
			name:     "regular error defaults to user error",
			err:      errors.New("some error"),
			expected: ExitUserError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetExitCode(tt.err)
			if got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestNewUserErrorWithCause(t *testing.T) {
	underlying := errors.New("yaml: line 3: did not find expected key")
	err := NewUserErrorWithCause("reading symbols.yaml", underlying)

	if GetExitCode(err) != ExitUserError {
		t.Errorf("GetExitCode() = %d, want %d", GetExitCode(err), ExitUserError)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
}
