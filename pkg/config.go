package dupetree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
)

// Config represents the dupetree configuration
type Config struct {
	configPath string
	ini        *ini.File
}

// ScanConfig represents traversal configuration
type ScanConfig struct {
	MinSize string // Minimum file size to consider, human-readable ("0" disables)
	Workers int    // Number of traversal workers (0 = auto)
}

// OutputConfig represents report formatting configuration
type OutputConfig struct {
	Format    string // Default output format: standard, json, fdupes, off
	Blocksize string // Default display blocksize: B, K, M, G
	Verbosity string // Default verbosity: quiet, duplicates, all
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	Fadvise bool // Issue sequential readahead hints before full-file hashing
}

// AllConfig represents all configuration options
type AllConfig struct {
	Scan        *ScanConfig
	Output      *OutputConfig
	Performance *PerformanceConfig
}

// LoadConfig loads configuration from the config file in configDir,
// creating the directory and a default config on first use.
func LoadConfig(configDir string) (*Config, error) {
	configPath := filepath.Join(configDir, "config")

	cfg := &Config{
		configPath: configPath,
	}

	// Load existing config or create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	} else {
		iniFile, err := ini.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfg.ini = iniFile
	}

	return cfg, nil
}

// setDefaults sets default configuration values
func (c *Config) setDefaults() error {
	// Set default scan settings
	scanSection, err := c.ini.NewSection("scan")
	if err != nil {
		return fmt.Errorf("failed to create scan section: %w", err)
	}
	_, err = scanSection.NewKey("min_size", "0")
	if err != nil {
		return fmt.Errorf("failed to set default min_size: %w", err)
	}
	_, err = scanSection.NewKey("workers", "0")
	if err != nil {
		return fmt.Errorf("failed to set default workers: %w", err)
	}

	// Set default output settings
	outputSection, err := c.ini.NewSection("output")
	if err != nil {
		return fmt.Errorf("failed to create output section: %w", err)
	}
	_, err = outputSection.NewKey("format", FormatStandard)
	if err != nil {
		return fmt.Errorf("failed to set default output format: %w", err)
	}
	_, err = outputSection.NewKey("blocksize", "B")
	if err != nil {
		return fmt.Errorf("failed to set default blocksize: %w", err)
	}
	_, err = outputSection.NewKey("verbosity", VerbosityDuplicates)
	if err != nil {
		return fmt.Errorf("failed to set default verbosity: %w", err)
	}

	// Set default performance settings
	performanceSection, err := c.ini.NewSection("performance")
	if err != nil {
		return fmt.Errorf("failed to create performance section: %w", err)
	}
	_, err = performanceSection.NewKey("fadvise", "true")
	if err != nil {
		return fmt.Errorf("failed to set default fadvise: %w", err)
	}

	return nil
}

// GetScanConfig returns the traversal configuration
func (c *Config) GetScanConfig() *ScanConfig {
	scanConfig := &ScanConfig{
		MinSize: "0", // fallback default
		Workers: 0,   // fallback default
	}

	if c.ini.HasSection("scan") {
		section := c.ini.Section("scan")
		if section.HasKey("min_size") {
			if minSize := section.Key("min_size").String(); minSize != "" {
				scanConfig.MinSize = minSize
			}
		}
		if section.HasKey("workers") {
			if workers, err := section.Key("workers").Int(); err == nil {
				scanConfig.Workers = workers
			}
		}
	}

	return scanConfig
}

// GetOutputConfig returns the report formatting configuration
func (c *Config) GetOutputConfig() *OutputConfig {
	outputConfig := &OutputConfig{
		Format:    FormatStandard,      // fallback default
		Blocksize: "B",                 // fallback default
		Verbosity: VerbosityDuplicates, // fallback default
	}

	if c.ini.HasSection("output") {
		section := c.ini.Section("output")
		if section.HasKey("format") {
			outputConfig.Format = section.Key("format").String()
		}
		if section.HasKey("blocksize") {
			outputConfig.Blocksize = section.Key("blocksize").String()
		}
		if section.HasKey("verbosity") {
			outputConfig.Verbosity = section.Key("verbosity").String()
		}
	}

	return outputConfig
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	performanceConfig := &PerformanceConfig{
		Fadvise: true, // fallback default
	}

	if c.ini.HasSection("performance") {
		section := c.ini.Section("performance")
		if section.HasKey("fadvise") {
			if fadvise, err := section.Key("fadvise").Bool(); err == nil {
				performanceConfig.Fadvise = fadvise
			}
		}
	}

	return performanceConfig
}

// GetAllConfig returns all configuration options
func (c *Config) GetAllConfig() *AllConfig {
	return &AllConfig{
		Scan:        c.GetScanConfig(),
		Output:      c.GetOutputConfig(),
		Performance: c.GetPerformanceConfig(),
	}
}

// SetMinSize sets the minimum file size to consider
func (c *Config) SetMinSize(minSize string) error {
	section := c.ini.Section("scan")
	section.Key("min_size").SetValue(minSize)
	return c.Save()
}

// SetScanWorkers sets the number of traversal workers
func (c *Config) SetScanWorkers(workers int) error {
	section := c.ini.Section("scan")
	section.Key("workers").SetValue(fmt.Sprintf("%d", workers))
	return c.Save()
}

// SetOutputFormat sets the default output format
func (c *Config) SetOutputFormat(format string) error {
	section := c.ini.Section("output")
	section.Key("format").SetValue(format)
	return c.Save()
}

// SetBlocksize sets the default display blocksize
func (c *Config) SetBlocksize(blocksize string) error {
	section := c.ini.Section("output")
	section.Key("blocksize").SetValue(blocksize)
	return c.Save()
}

// SetVerbosity sets the default verbosity
func (c *Config) SetVerbosity(verbosity string) error {
	section := c.ini.Section("output")
	section.Key("verbosity").SetValue(verbosity)
	return c.Save()
}

// SetFadvise sets whether readahead hints are issued
func (c *Config) SetFadvise(enabled bool) error {
	section := c.ini.Section("performance")
	section.Key("fadvise").SetValue(fmt.Sprintf("%t", enabled))
	return c.Save()
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	return c.ini.SaveTo(c.configPath)
}

// ApplyOverrides applies command-line overrides to the configuration
// without saving them. Accepts strings like "format:json", "min_size:4K",
// "workers:8", "blocksize:M", "verbosity:all", "fadvise:false".
func (c *Config) ApplyOverrides(overrides []string) error {
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid override format '%s', expected 'key:value'", override)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "min_size":
			section := c.ini.Section("scan")
			section.Key("min_size").SetValue(value)
		case "workers":
			section := c.ini.Section("scan")
			section.Key("workers").SetValue(value)
		case "format":
			section := c.ini.Section("output")
			section.Key("format").SetValue(value)
		case "blocksize":
			section := c.ini.Section("output")
			section.Key("blocksize").SetValue(value)
		case "verbosity":
			section := c.ini.Section("output")
			section.Key("verbosity").SetValue(value)
		case "fadvise":
			section := c.ini.Section("performance")
			section.Key("fadvise").SetValue(value)
		default:
			return fmt.Errorf("unsupported override key '%s' (supported: min_size, workers, format, blocksize, verbosity, fadvise)", key)
		}
	}

	return nil
}

// ValidateOutputFormat validates that an output format is supported
func ValidateOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatStandard, FormatJSON, FormatFdupes, FormatOff:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: standard, json, fdupes, off)", format)
	}
}

// ValidateBlocksize validates that a display blocksize is supported
func ValidateBlocksize(blocksize string) error {
	switch strings.ToUpper(blocksize) {
	case "B", "K", "M", "G":
		return nil
	default:
		return fmt.Errorf("unsupported blocksize: %s (supported: B, K, M, G)", blocksize)
	}
}

// ValidateVerbosity validates that a verbosity level is supported
func ValidateVerbosity(verbosity string) error {
	switch strings.ToLower(verbosity) {
	case VerbosityQuiet, VerbosityDuplicates, VerbosityAll:
		return nil
	default:
		return fmt.Errorf("unsupported verbosity: %s (supported: quiet, duplicates, all)", verbosity)
	}
}

// ValidateScanWorkers validates that the worker count is reasonable
func ValidateScanWorkers(workers int) error {
	if workers < 0 {
		return fmt.Errorf("workers must not be negative, got: %d", workers)
	}
	if workers > maxScanWorkers {
		return fmt.Errorf("workers should not exceed %d, got: %d", maxScanWorkers, workers)
	}
	return nil
}
