// =============================================================================
// AVC Purchase-Order Processor - Audit Log
// =============================================================================
//
// Every invocation of the pipeline, success or failure, appends exactly one
// line to the shared audit log. The line format is a fixed legacy layout
// consumed by existing monitoring scripts, so it is reproduced exactly:
//
//   USR;<user> | IN;<input> | SUCCESS;<bool> | ERR;<msg> | WARNING;<bool>
//   | WARN;<msg> | OUT;<output> | VER;<version> | TS;<MMDDYYYYHHMMSS>
//
// A failure to append is reported to the caller but must never fail the
// run itself.
//
// =============================================================================

package auditlog

import (
	"fmt"
	"os"

	"github.com/bazic-ecom/avc-po-processor/internal/apperrors"
)

// Entry is the per-invocation audit record.
type Entry struct {
	User           string
	InputFilename  string
	Success        bool
	ErrorMessage   string
	Warning        bool
	WarningMessage string
	OutputFilename string
	AppVersion     string
	Timestamp      string
}

// Format renders the entry in the legacy line layout, without the trailing
// newline.
func (e Entry) Format() string {
	return fmt.Sprintf(
		"USR;%s | IN;%s | SUCCESS;%t | ERR;%s | WARNING;%t | WARN;%s | OUT;%s | VER;%s | TS;%s",
		e.User,
		e.InputFilename,
		e.Success,
		e.ErrorMessage,
		e.Warning,
		e.WarningMessage,
		e.OutputFilename,
		e.AppVersion,
		e.Timestamp,
	)
}

// Append writes the entry as one line at the end of the audit log, creating
// the file if needed.
func Append(path string, e Entry) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return apperrors.Wrap(apperrors.TypeAuditLog, "failed to open audit log", err).
			WithContext("path", path)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, e.Format()); err != nil {
		return apperrors.Wrap(apperrors.TypeAuditLog, "failed to append audit log line", err).
			WithContext("path", path)
	}
	return nil
}

// CurrentUser identifies the invoking user for the USR field. The machine
// name is preferred (the log historically carries workstation names), then
// the login name.
func CurrentUser() string {
	if name := os.Getenv("COMPUTERNAME"); name != "" {
		return name
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}
