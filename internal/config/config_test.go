package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "gemini-2.0-flash", cfg.API.Model)
	assert.Equal(t, 0.1, cfg.API.Temperature)
	assert.Equal(t, 5*time.Minute, cfg.API.Timeout.Std())
	assert.Equal(t, 200, cfg.Rasterizer.DPI)
	assert.Equal(t, OutputShapeMerged, cfg.Output.Shape)
	assert.Empty(t, cfg.API.Key, "API key has no default")

	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  model: gemini-1.5-pro
  temperature: 0.3
  timeout: 90s
rasterizer:
  dpi: 300
storage:
  output_dir: results
output:
  shape: pages
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini-1.5-pro", cfg.API.Model)
	assert.Equal(t, 0.3, cfg.API.Temperature)
	assert.Equal(t, 90*time.Second, cfg.API.Timeout.Std())
	assert.Equal(t, 300, cfg.Rasterizer.DPI)
	assert.Equal(t, "results", cfg.Storage.OutputDir)
	assert.Equal(t, OutputShapePages, cfg.Output.Shape)
}

func TestDurationUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    time.Duration
		wantErr bool
	}{
		{"minutes string", "timeout: 5m", 5 * time.Minute, false},
		{"compound string", "timeout: 1h30m", 90 * time.Minute, false},
		{"integer nanoseconds", "timeout: 1000000000", time.Second, false},
		{"garbage string", "timeout: soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				Timeout Duration `yaml:"timeout"`
			}
			err := yaml.Unmarshal([]byte(tt.yaml), &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Timeout.Std())
		})
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Rasterizer.DPI)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "env-key")
	t.Setenv("CSM_MODEL", "env-model")
	t.Setenv("CSM_DPI", "150")
	t.Setenv("CSM_OUTPUT_SHAPE", "pages")
	t.Setenv("CSM_OUTPUT_DIR", "env-output")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.API.Key)
	assert.Equal(t, "env-model", cfg.API.Model)
	assert.Equal(t, 150, cfg.Rasterizer.DPI)
	assert.Equal(t, OutputShapePages, cfg.Output.Shape)
	assert.Equal(t, "env-output", cfg.Storage.OutputDir)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"dpi too low", func(c *Config) { c.Rasterizer.DPI = 10 }},
		{"dpi too high", func(c *Config) { c.Rasterizer.DPI = 2400 }},
		{"negative temperature", func(c *Config) { c.API.Temperature = -1 }},
		{"temperature too high", func(c *Config) { c.API.Temperature = 3 }},
		{"unknown output shape", func(c *Config) { c.Output.Shape = "csv" }},
		{"empty output dir", func(c *Config) { c.Storage.OutputDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
