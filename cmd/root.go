// =============================================================================
// AVC Purchase-Order Processor - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process') are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (avcpo)
//   ├── processCmd (avcpo process)
//   └── versionCmd (avcpo version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bazic-ecom/avc-po-processor/internal/config"
	"github.com/bazic-ecom/avc-po-processor/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "avcpo",

	Short: "AVC PO Processor - Validate vendor purchase-order batches",

	Long: `AVC PO Processor ingests a vendor purchase-order batch file (CSV) and
cross-references it against the unit-of-measure master and the inventory/price
master, classifying each order line as accepted, rejected, or suggested, then
emits a formatted workbook report.

Key Features:
  - Price validation against the reference price, prorated by pack size
  - Stock validation against on-hand quantities
  - Deterministic report ordering by unit of measure (CASE, BOX, EA)
  - Append-only audit log of every invocation

Example Usage:
  avcpo process --file po_batch.csv      # Validate one batch from the input dir
  avcpo process --file po_batch --config ./my.yaml`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfig loads the configuration file and initializes logging from it.
// The --verbose flag overrides the configured log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	if err := logging.Initialize(logCfg); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	return cfg, nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// Persistent flags are available to this command and all subcommands.

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
