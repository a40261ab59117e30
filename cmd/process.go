// =============================================================================
// AVC Purchase-Order Processor - Process Command
// =============================================================================
//
// This file defines the 'process' command, which validates one vendor
// purchase-order batch file and writes the classification workbook.
//
// COMMAND USAGE:
//   avcpo process --file <batch.csv> [flags]
//
// FLAGS:
//   --file    : Batch filename (looked up in the configured input directory)
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Load the UOM and inventory/price masters
//   3. Parse the batch file
//   4. Classify every order line (accepted / rejected / suggested)
//   5. Aggregate, sort and render the three-sheet workbook
//   6. Append the audit log line
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bazic-ecom/avc-po-processor/internal/pipeline"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// batchFile is the batch filename to validate.
var batchFile string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Validate a vendor purchase-order batch file",
	Long: `The process command reads a vendor PO batch file from the configured input
directory, cross-references every line against the unit-of-measure and
inventory/price masters, and writes a workbook with Accepted, Rejected and
Optional sheets into the output directory.

The batch file is located by filename only: the directory portion of --file is
ignored and the configured input directory is used instead. A missing .csv
extension is added automatically.

Reference master problems do not abort the run; the affected lookups degrade
and the result carries a warning instead.`,

	// RunE is preferred for commands that can fail, as it allows Cobra to
	// handle the error gracefully.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&batchFile,
		"file",
		"",
		"Batch filename to validate (required)",
	)
	processCmd.MarkFlagRequired("file")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess loads the configuration, runs the pipeline once, and presents
// the completion event.
func runProcess() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	p := pipeline.New(cfg, Version)
	result := p.Run(batchFile)

	// The pipeline emits a completion event; presentation happens here.
	for _, msg := range result.StalenessMessages {
		fmt.Println(msg)
	}
	if result.Warning {
		fmt.Printf("Warning: %s\n", result.WarningMessage)
	}

	if !result.Success {
		return fmt.Errorf("%s", result.ErrorMessage)
	}

	fmt.Printf("Accepted:  %d\n", result.AcceptedCount)
	fmt.Printf("Rejected:  %d\n", result.RejectedCount)
	fmt.Printf("Optional:  %d\n", result.SuggestedCount)
	fmt.Printf("Total PO Price: $%s\n", result.AcceptedTotal.StringFixed(2))
	fmt.Printf("Your output filename is: %s\n", result.OutputPath)

	return nil
}
