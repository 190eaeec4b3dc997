package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marinesurvey/csm-extractor/internal/config"
)

func TestApplyVerbosity(t *testing.T) {
	orig := verbose
	t.Cleanup(func() { verbose = orig })

	cfg := config.DefaultConfig()
	verbose = false
	applyVerbosity(cfg)
	assert.Equal(t, "info", cfg.Observability.LogLevel)

	verbose = true
	applyVerbosity(cfg)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}
