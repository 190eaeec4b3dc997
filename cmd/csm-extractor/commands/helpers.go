package commands

import (
	"fmt"

	"github.com/marinesurvey/csm-extractor/internal/config"
	"github.com/marinesurvey/csm-extractor/pkg/extractor"
)

// applyVerbosity drops the log level to debug when the verbose flag is set.
func applyVerbosity(cfg *config.Config) {
	if verbose {
		cfg.Observability.LogLevel = "debug"
	}
}

// newClient builds the pipeline client from the shared flags.
func newClient() (*extractor.Client, error) {
	cfg, err := extractor.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyVerbosity(cfg)

	client, err := extractor.NewClientWithConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize client: %w", err)
	}
	return client, nil
}
