// =============================================================================
// AVC Purchase-Order Processor - Pipeline Orchestrator
// =============================================================================
//
// This module wires the whole run together:
//
//   1. Normalize the user-supplied batch filename into an input path
//   2. Load the UOM and inventory/price masters (degrading on failure)
//   3. Parse the batch file into order lines
//   4. Classify every line against the acceptance rule chain
//   5. Aggregate totals and sort the buckets into report order
//   6. Render the output workbook
//   7. Append exactly one audit log line
//
// The pipeline is synchronous and single-shot: one invocation per user
// action, reference masters re-read fresh every time, no shared mutable
// state across invocations.
//
// The returned Result is a completion event. Host-environment actions such
// as opening the workbook belong to the presentation layer consuming the
// Result, never to the pipeline itself.
//
// =============================================================================

package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bazic-ecom/avc-po-processor/internal/aggregate"
	"github.com/bazic-ecom/avc-po-processor/internal/auditlog"
	"github.com/bazic-ecom/avc-po-processor/internal/classify"
	"github.com/bazic-ecom/avc-po-processor/internal/config"
	"github.com/bazic-ecom/avc-po-processor/internal/logging"
	"github.com/bazic-ecom/avc-po-processor/internal/orders"
	"github.com/bazic-ecom/avc-po-processor/internal/refdata"
	"github.com/bazic-ecom/avc-po-processor/internal/report"
	"github.com/bazic-ecom/avc-po-processor/pkg/utils"
)

// userFacingFailure is the generic message shown when a run produces
// nothing usable. Detail goes to the operator log, not the user.
const userFacingFailure = "Please try again or contact admin."

// defaultMinOrderValue backs the min-order-value rule when the configured
// threshold does not parse.
var defaultMinOrderValue = decimal.NewFromInt(30)

// Pipeline runs one batch validation per invocation.
type Pipeline struct {
	cfg        *config.Config
	appVersion string
}

// Result is the completion event of one invocation.
type Result struct {
	// RunID correlates the result with operator and audit log lines.
	RunID string

	Success      bool
	ErrorMessage string

	// InputFilename is the filename as the user supplied it; InputPath is
	// the normalized path actually read.
	InputFilename string
	InputPath     string

	// OutputPath is the written workbook, empty on failure.
	OutputPath string

	// Warning flags degraded reference data; the run still completed.
	Warning        bool
	WarningMessage string

	// StalenessMessages describe the age of each master file.
	StalenessMessages []string

	// Bucket sizes and the accepted total, for presentation.
	AcceptedCount  int
	RejectedCount  int
	SuggestedCount int
	AcceptedTotal  decimal.Decimal
}

// New builds a pipeline over an explicit configuration value.
func New(cfg *config.Config, appVersion string) *Pipeline {
	return &Pipeline{cfg: cfg, appVersion: appVersion}
}

// Run executes the pipeline once for the given batch filename and returns
// the completion event. Every run, success or failure, is audit-logged
// exactly once.
func (p *Pipeline) Run(inputFilename string) Result {
	timestamp := utils.Timestamp()

	result := Result{
		RunID:         uuid.New().String(),
		InputFilename: inputFilename,
		InputPath:     utils.NormalizeInputFilename(p.cfg.InputDir, inputFilename),
		AcceptedTotal: decimal.Zero,
	}

	log := logging.With(zap.String("run_id", result.RunID))
	log.Info("starting batch validation",
		zap.String("input", result.InputPath))

	// Reference masters. A load failure degrades the run to empty lookups
	// instead of aborting: every order then resolves to defaults that
	// cannot pass the checks, and the user is warned.
	var warnings []string

	uom, uomMsg, err := refdata.LoadUOMMaster(p.cfg.UOMMasterPath())
	if err != nil {
		log.Warn("UOM master unavailable, continuing with empty table", zap.Error(err))
		warnings = append(warnings, "UOM master could not be read")
	}
	inventory, invMsg, err := refdata.LoadInventoryMaster(p.cfg.InventoryMasterPath())
	if err != nil {
		log.Warn("inventory master unavailable, continuing with empty table", zap.Error(err))
		warnings = append(warnings, "inventory master could not be read")
	}

	for _, msg := range []string{uomMsg, invMsg} {
		if msg != "" {
			result.StalenessMessages = append(result.StalenessMessages, msg)
		}
	}
	if len(warnings) > 0 {
		result.Warning = true
		result.WarningMessage = strings.Join(warnings, "; ")
	}

	// Batch orders. A missing or unreadable file leaves an empty slice and
	// the run falls through to the no-results failure below.
	lines, err := orders.ParseFile(result.InputPath)
	if err != nil {
		log.Warn("batch file could not be parsed", zap.Error(err))
	}
	log.Info("parsed batch file", zap.Int("orders", len(lines)))

	// Classification.
	engine := classify.NewEngine(uom, inventory, p.rules())
	buckets := engine.Classify(lines)

	result.AcceptedCount = len(buckets.Accepted)
	result.RejectedCount = len(buckets.Rejected)
	result.SuggestedCount = len(buckets.Suggested)

	if result.AcceptedCount == 0 && result.RejectedCount == 0 {
		log.Warn("no accepted or rejected orders produced")
		result.ErrorMessage = userFacingFailure
		p.audit(&result, timestamp)
		return result
	}

	// Aggregation and ordering.
	result.AcceptedTotal = aggregate.AcceptedTotal(buckets.Accepted)
	aggregate.SortBuckets(buckets)

	// Rendering.
	outputPath := filepath.Join(p.cfg.OutputDir, report.FileName(timestamp))
	if err := report.Write(outputPath, buckets, result.AcceptedTotal); err != nil {
		log.Error("failed to write output workbook", zap.Error(err))
		result.ErrorMessage = userFacingFailure
		p.audit(&result, timestamp)
		return result
	}

	result.Success = true
	result.OutputPath = outputPath
	log.Info("batch validation complete",
		zap.Int("accepted", result.AcceptedCount),
		zap.Int("rejected", result.RejectedCount),
		zap.Int("suggested", result.SuggestedCount),
		zap.String("output", outputPath))

	p.audit(&result, timestamp)
	return result
}

// rules assembles the acceptance chain from configuration: the fixed
// price-then-stock checks plus any enabled policy extensions.
func (p *Pipeline) rules() []classify.Rule {
	rules := classify.DefaultRules()

	if p.cfg.Rules.MinOrderValueEnabled {
		threshold, err := decimal.NewFromString(p.cfg.Rules.MinOrderValue)
		if err != nil {
			logging.Warn("invalid min_order_value, using default",
				zap.String("value", p.cfg.Rules.MinOrderValue))
			threshold = defaultMinOrderValue
		}
		rules = append(rules, classify.MinOrderValueRule(threshold))
	}

	return rules
}

// audit appends the single per-invocation audit line. Audit failures are
// logged and swallowed; they never change the run's outcome.
func (p *Pipeline) audit(result *Result, timestamp string) {
	entry := auditlog.Entry{
		User:           auditlog.CurrentUser(),
		InputFilename:  result.InputFilename,
		Success:        result.Success,
		ErrorMessage:   result.ErrorMessage,
		Warning:        result.Warning,
		WarningMessage: result.WarningMessage,
		OutputFilename: result.OutputPath,
		AppVersion:     p.appVersion,
		Timestamp:      timestamp,
	}
	if err := auditlog.Append(p.cfg.AuditLogPath(), entry); err != nil {
		logging.Error("failed to write audit log",
			zap.String("run_id", result.RunID), zap.Error(err))
	}
}
