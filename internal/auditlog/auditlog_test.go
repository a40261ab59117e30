package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatSuccessLine(t *testing.T) {
	e := Entry{
		User:           "WS-042",
		InputFilename:  "batch.csv",
		Success:        true,
		ErrorMessage:   "",
		Warning:        false,
		WarningMessage: "",
		OutputFilename: "po_output_09012026103000.xlsx",
		AppVersion:     "1.0.7",
		Timestamp:      "09012026103000",
	}

	want := "USR;WS-042 | IN;batch.csv | SUCCESS;true | ERR; | WARNING;false" +
		" | WARN; | OUT;po_output_09012026103000.xlsx | VER;1.0.7 | TS;09012026103000"
	if got := e.Format(); got != want {
		t.Errorf("Format() =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatFailureLine(t *testing.T) {
	e := Entry{
		User:           "WS-042",
		InputFilename:  "batch.csv",
		Success:        false,
		ErrorMessage:   "No orders left after checks.",
		Warning:        true,
		WarningMessage: "UOM master missing",
		AppVersion:     "1.0.7",
		Timestamp:      "09012026103000",
	}

	line := e.Format()
	if !strings.Contains(line, "SUCCESS;false") {
		t.Errorf("line missing SUCCESS;false: %q", line)
	}
	if !strings.Contains(line, "ERR;No orders left after checks.") {
		t.Errorf("line missing error message: %q", line)
	}
	if !strings.Contains(line, "WARNING;true | WARN;UOM master missing") {
		t.Errorf("line missing warning fields: %q", line)
	}
	if !strings.Contains(line, "OUT; |") {
		t.Errorf("line missing empty OUT field: %q", line)
	}
}

func TestAppendCreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs_avc.txt")

	first := Entry{User: "a", InputFilename: "one.csv", Success: true}
	second := Entry{User: "b", InputFilename: "two.csv", Success: false}

	if err := Append(path, first); err != nil {
		t.Fatalf("first Append failed: %v", err)
	}
	if err := Append(path, second); err != nil {
		t.Fatalf("second Append failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("log has %d lines, want 2: %q", len(lines), string(data))
	}
	if lines[0] != first.Format() {
		t.Errorf("line 1 = %q, want %q", lines[0], first.Format())
	}
	if lines[1] != second.Format() {
		t.Errorf("line 2 = %q, want %q", lines[1], second.Format())
	}
}

func TestAppendFailsOnUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "logs_avc.txt")
	if err := Append(path, Entry{}); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestCurrentUserNeverEmpty(t *testing.T) {
	if CurrentUser() == "" {
		t.Error("CurrentUser returned an empty string")
	}
}
