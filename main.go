// =============================================================================
// AVC Purchase-Order Processor - Main Entry Point
// =============================================================================
//
// This is the main entry point for the AVC PO Processor CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   avcpo process --file <batch.csv>  - Validate one vendor PO batch file
//   avcpo version                     - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//   - assets/        : Contains the UOM and inventory/price master files
//
// =============================================================================

package main

import (
	"github.com/bazic-ecom/avc-po-processor/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
