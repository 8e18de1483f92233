package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied by the Get* methods when a field is unset.
const (
	DefaultOutputDir        = "reports"
	DefaultPlotWidthInches  = 12.0
	DefaultPlotHeightInches = 5.0
	DefaultMaxObjects       = 12
)

// maxConfigFileSize bounds config files read by LoadReportConfig.
const maxConfigFileSize = 1 * 1024 * 1024

// ReportConfig controls how scenario summaries are rendered.
// Unset fields fall back to defaults through the Get* methods, so partial
// files are safe.
type ReportConfig struct {
	OutputDir        *string  `json:"output_dir,omitempty"`
	PlotWidthInches  *float64 `json:"plot_width_inches,omitempty"`
	PlotHeightInches *float64 `json:"plot_height_inches,omitempty"`
	WritePNG         *bool    `json:"write_png,omitempty"`
	WriteHTML        *bool    `json:"write_html,omitempty"`

	// MaxObjects caps how many dynamic objects are drawn; 0 draws all.
	MaxObjects *int `json:"max_objects,omitempty"`

	// DataDir, when set, restricts scenario inputs to this directory.
	DataDir *string `json:"data_dir,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// DefaultReportConfig returns a config with every field populated.
func DefaultReportConfig() *ReportConfig {
	return &ReportConfig{
		OutputDir:        ptrString(DefaultOutputDir),
		PlotWidthInches:  ptrFloat64(DefaultPlotWidthInches),
		PlotHeightInches: ptrFloat64(DefaultPlotHeightInches),
		WritePNG:         ptrBool(false),
		WriteHTML:        ptrBool(false),
		MaxObjects:       ptrInt(DefaultMaxObjects),
		DataDir:          ptrString(""),
	}
}

// LoadReportConfig loads a ReportConfig from a JSON file.
// The file must have a .json extension and be at most 1MB.
func LoadReportConfig(path string) (*ReportConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &ReportConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *ReportConfig) Validate() error {
	if c.PlotWidthInches != nil && *c.PlotWidthInches <= 0 {
		return fmt.Errorf("plot_width_inches must be positive, got %g", *c.PlotWidthInches)
	}
	if c.PlotHeightInches != nil && *c.PlotHeightInches <= 0 {
		return fmt.Errorf("plot_height_inches must be positive, got %g", *c.PlotHeightInches)
	}
	if c.MaxObjects != nil && *c.MaxObjects < 0 {
		return fmt.Errorf("max_objects must be non-negative, got %d", *c.MaxObjects)
	}
	if c.OutputDir != nil && *c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}

// Merge overwrites fields of c with every non-nil field of other.
func (c *ReportConfig) Merge(other *ReportConfig) {
	if other == nil {
		return
	}
	if other.OutputDir != nil {
		c.OutputDir = other.OutputDir
	}
	if other.PlotWidthInches != nil {
		c.PlotWidthInches = other.PlotWidthInches
	}
	if other.PlotHeightInches != nil {
		c.PlotHeightInches = other.PlotHeightInches
	}
	if other.WritePNG != nil {
		c.WritePNG = other.WritePNG
	}
	if other.WriteHTML != nil {
		c.WriteHTML = other.WriteHTML
	}
	if other.MaxObjects != nil {
		c.MaxObjects = other.MaxObjects
	}
	if other.DataDir != nil {
		c.DataDir = other.DataDir
	}
}

// GetOutputDir returns the report root directory.
func (c *ReportConfig) GetOutputDir() string {
	if c.OutputDir == nil {
		return DefaultOutputDir
	}
	return *c.OutputDir
}

// GetPlotWidthInches returns the PNG width in inches.
func (c *ReportConfig) GetPlotWidthInches() float64 {
	if c.PlotWidthInches == nil {
		return DefaultPlotWidthInches
	}
	return *c.PlotWidthInches
}

// GetPlotHeightInches returns the PNG height in inches.
func (c *ReportConfig) GetPlotHeightInches() float64 {
	if c.PlotHeightInches == nil {
		return DefaultPlotHeightInches
	}
	return *c.PlotHeightInches
}

func (c *ReportConfig) GetWritePNG() bool {
	return c.WritePNG != nil && *c.WritePNG
}

func (c *ReportConfig) GetWriteHTML() bool {
	return c.WriteHTML != nil && *c.WriteHTML
}

// GetMaxObjects returns the object plotting cap; 0 means no cap.
func (c *ReportConfig) GetMaxObjects() int {
	if c.MaxObjects == nil {
		return DefaultMaxObjects
	}
	return *c.MaxObjects
}

func (c *ReportConfig) GetDataDir() string {
	if c.DataDir == nil {
		return ""
	}
	return *c.DataDir
}

// Enabled reports whether any report output is requested.
func (c *ReportConfig) Enabled() bool {
	return c.GetWritePNG() || c.GetWriteHTML()
}
