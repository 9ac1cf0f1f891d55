package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestStorageError(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := &StorageError{
		Path: "/test/path",
		Op:   "mkdir",
		Err:  originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "storage error") {
		t.Errorf("StorageError.Error() should contain 'storage error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "/test/path") {
		t.Errorf("StorageError.Error() should contain path, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("StorageError.Unwrap() should return original error")
	}
}

func TestParseError(t *testing.T) {
	originalErr := errors.New("token too long")

	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			name: "with line",
			err:  &ParseError{Path: "train.tsv", Line: 12, Err: originalErr},
			want: "parse error train.tsv:12: token too long",
		},
		{
			name: "without line",
			err:  &ParseError{Path: "train.tsv", Err: originalErr},
			want: "parse error train.tsv: token too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ParseError.Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, originalErr) {
				t.Error("ParseError.Unwrap() should return original error")
			}
		})
	}
}

func TestUnknownModelError(t *testing.T) {
	err := &UnknownModelError{Name: "XYZ", Known: []string{"CM", "PBM"}}
	if got, want := err.Error(), "unknown click model: XYZ (available: CM, PBM)"; got != want {
		t.Errorf("UnknownModelError.Error() = %q, want %q", got, want)
	}

	err = &UnknownModelError{Name: "XYZ"}
	if got, want := err.Error(), "unknown click model: XYZ"; got != want {
		t.Errorf("UnknownModelError.Error() = %q, want %q", got, want)
	}

	var target *UnknownModelError
	if !errors.As(error(err), &target) {
		t.Error("errors.As() should match *UnknownModelError")
	}
}

func TestExportError(t *testing.T) {
	originalErr := errors.New("disk full")
	err := &ExportError{
		Kind: "click",
		Path: "/out/PBM_ClickProbability_Raw.csv",
		Err:  originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "export error") {
		t.Errorf("ExportError.Error() should contain 'export error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "click") {
		t.Errorf("ExportError.Error() should contain kind, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("ExportError.Unwrap() should return original error")
	}
}

func TestLedgerError(t *testing.T) {
	originalErr := errors.New("read-only file system")
	err := &LedgerError{
		Path: "/out/PerformanceResults.csv",
		Op:   "append",
		Err:  originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "ledger error: append") {
		t.Errorf("LedgerError.Error() should contain op, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("LedgerError.Unwrap() should return original error")
	}
}
