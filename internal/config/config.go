// Package config provides unified configuration loading for the CSM
// extractor. Supports YAML files, environment variables, and programmatic
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can use strings like "5m" or
// "90s". A plain integer is taken as nanoseconds, matching time.Duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Tag {
	case "!!int":
		var n int64
		if err := value.Decode(&n); err != nil {
			return err
		}
		*d = Duration(n)
		return nil
	case "!!str":
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("duration must be a string like %q or an integer nanosecond count", "5m")
	}
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// OutputShape selects the canonical final-output layout. Merged is the
// default: one ExtractionRecord object per document. Pages writes a list of
// per-page records instead.
type OutputShape string

const (
	OutputShapeMerged OutputShape = "merged"
	OutputShapePages  OutputShape = "pages"
)

// Config holds all configuration for the extraction pipeline.
type Config struct {
	API           APIConfig           `yaml:"api"`
	Rasterizer    RasterizerConfig    `yaml:"rasterizer"`
	Storage       StorageConfig       `yaml:"storage"`
	Output        OutputConfig        `yaml:"output"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// APIConfig holds vision-model service settings.
type APIConfig struct {
	Key         string   `yaml:"key"`
	Model       string   `yaml:"model"`
	BaseURL     string   `yaml:"base_url"`
	Temperature float64  `yaml:"temperature"`
	Timeout     Duration `yaml:"timeout"`
}

// RasterizerConfig holds PDF conversion settings.
type RasterizerConfig struct {
	DPI int `yaml:"dpi"`
}

// StorageConfig holds filesystem locations. TempRoot scopes the per-run
// scratch area; OutputDir receives the final JSON artifacts.
type StorageConfig struct {
	TempRoot  string `yaml:"temp_root"`
	OutputDir string `yaml:"output_dir"`
}

// OutputConfig holds final-artifact settings.
type OutputConfig struct {
	Shape OutputShape `yaml:"shape"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns a configuration with sensible defaults. The API key
// has no default and must come from the file, the environment, or the caller.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Model:       "gemini-2.0-flash",
			BaseURL:     "https://generativelanguage.googleapis.com/v1beta",
			Temperature: 0.1,
			Timeout:     Duration(5 * time.Minute),
		},
		Rasterizer: RasterizerConfig{
			DPI: 200,
		},
		Storage: StorageConfig{
			TempRoot:  os.TempDir(),
			OutputDir: "output",
		},
		Output: OutputConfig{
			Shape: OutputShapeMerged,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "console",
		},
	}
}

// Load reads configuration from a YAML file (optional) and applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("CSM_MODEL"); v != "" {
		cfg.API.Model = v
	}
	if v := os.Getenv("CSM_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("CSM_DPI"); v != "" {
		if dpi, err := strconv.Atoi(v); err == nil {
			cfg.Rasterizer.DPI = dpi
		}
	}
	if v := os.Getenv("CSM_TEMP_ROOT"); v != "" {
		cfg.Storage.TempRoot = v
	}
	if v := os.Getenv("CSM_OUTPUT_DIR"); v != "" {
		cfg.Storage.OutputDir = v
	}
	if v := os.Getenv("CSM_OUTPUT_SHAPE"); v != "" {
		cfg.Output.Shape = OutputShape(v)
	}
	if v := os.Getenv("CSM_LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
}

// Validate checks the configuration for internal consistency. The API key is
// validated separately at client construction so that offline subcommands
// still work without one.
func (c *Config) Validate() error {
	if c.Rasterizer.DPI < 36 || c.Rasterizer.DPI > 1200 {
		return fmt.Errorf("rasterizer dpi must be between 36 and 1200, got %d", c.Rasterizer.DPI)
	}
	if c.API.Temperature < 0 || c.API.Temperature > 2 {
		return fmt.Errorf("api temperature must be between 0 and 2, got %g", c.API.Temperature)
	}
	switch c.Output.Shape {
	case OutputShapeMerged, OutputShapePages:
	default:
		return fmt.Errorf("output shape must be %q or %q, got %q",
			OutputShapeMerged, OutputShapePages, c.Output.Shape)
	}
	if c.Storage.OutputDir == "" {
		return fmt.Errorf("storage output_dir cannot be empty")
	}
	return nil
}
