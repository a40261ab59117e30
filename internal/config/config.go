// =============================================================================
// AVC Purchase-Order Processor - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. A single YAML file describes where the reference master
// files live, where input batch files are picked up, where output workbooks
// and the audit log are written, and which optional classification rules
// are enabled.
//
// ARCHITECTURE:
//   The configuration is an explicit value passed into the pipeline's entry
//   point. Nothing in the pipeline reads module-level state, which keeps
//   test runs against fixture data trivial.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bazic-ecom/avc-po-processor/pkg/utils"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
// This is loaded from the config.yaml file.
type Config struct {
	// =========================================================================
	// DIRECTORY AND MASTER FILE SETTINGS
	// =========================================================================

	// AssetsBaseDir is the directory containing the reference master files
	// and the audit log. In production this points at the shared
	// warehouse drive.
	// Default: "./assets"
	AssetsBaseDir string `yaml:"assets_base_dir"`

	// UOMMasterFilename is the unit-of-measure master file inside
	// AssetsBaseDir. Either a 3-column CSV or an XLSX with the same
	// [model number, sku, pack qty] layout.
	// Default: "uom_input.csv"
	UOMMasterFilename string `yaml:"uom_master_filename"`

	// InventoryMasterFilename is the inventory/price master export inside
	// AssetsBaseDir. Only the first worksheet is read.
	// Default: "inventory_price_master.xlsx"
	InventoryMasterFilename string `yaml:"inventory_master_filename"`

	// AuditLogFilename is the append-only audit log inside AssetsBaseDir.
	// One line is written per invocation, success or failure.
	// Default: "logs_avc.txt"
	AuditLogFilename string `yaml:"audit_log_filename"`

	// InputDir is the directory where vendor batch files are picked up.
	// Users type only the filename; the directory comes from here.
	// Default: the user's Downloads directory.
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where generated workbooks are placed.
	// Default: "./avc_outputs"
	OutputDir string `yaml:"output_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of operator logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// CLASSIFICATION RULE SETTINGS
	// =========================================================================

	// Rules contains toggles for the optional classification rules.
	Rules RuleSettings `yaml:"rules"`
}

// RuleSettings contains toggles for optional classification rules.
// The mandatory price and stock checks are always active; only policy
// extensions are configured here.
type RuleSettings struct {
	// MinOrderValueEnabled activates the minimum order-value rule. When
	// active, orders whose total price falls below MinOrderValue are
	// rejected and also surfaced on the Optional sheet for manual review.
	// Default: false
	MinOrderValueEnabled bool `yaml:"min_order_value_enabled"`

	// MinOrderValue is the threshold for the minimum order-value rule,
	// as a decimal string.
	// Default: "30"
	MinOrderValue string `yaml:"min_order_value"`
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// UOMMasterPath returns the full path to the UOM master file.
func (c *Config) UOMMasterPath() string {
	return filepath.Join(c.AssetsBaseDir, c.UOMMasterFilename)
}

// InventoryMasterPath returns the full path to the inventory/price master file.
func (c *Config) InventoryMasterPath() string {
	return filepath.Join(c.AssetsBaseDir, c.InventoryMasterFilename)
}

// AuditLogPath returns the full path to the append-only audit log.
func (c *Config) AuditLogPath() string {
	return filepath.Join(c.AssetsBaseDir, c.AuditLogFilename)
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load loads the configuration from a YAML file.
//
// Missing fields receive defaults, and the output directory is created if
// it does not exist. A missing config file is not an error: the defaults
// describe a complete local setup.
func Load(configPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied and no file read.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.AssetsBaseDir == "" {
		cfg.AssetsBaseDir = "./assets"
	}
	if cfg.UOMMasterFilename == "" {
		cfg.UOMMasterFilename = "uom_input.csv"
	}
	if cfg.InventoryMasterFilename == "" {
		cfg.InventoryMasterFilename = "inventory_price_master.xlsx"
	}
	if cfg.AuditLogFilename == "" {
		cfg.AuditLogFilename = "logs_avc.txt"
	}
	if cfg.InputDir == "" {
		cfg.InputDir = utils.DefaultDownloadsDir()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./avc_outputs"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Rules.MinOrderValue == "" {
		cfg.Rules.MinOrderValue = "30"
	}
}

// validate validates the configuration and creates the output directory.
// The assets and input directories are deliberately not created: if they
// are missing, the run degrades and the user is warned, but inventing an
// empty master-file directory would only mask a misconfiguration.
func validate(cfg *Config) error {
	if err := utils.EnsureDir(cfg.OutputDir); err != nil {
		return err
	}
	return nil
}
