// Package extractor is the public entry point for the survey extraction
// library. It wires configuration, the vision model client, and the
// pipeline stages into a single client.
package extractor

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/marinesurvey/csm-extractor/internal/classify"
	"github.com/marinesurvey/csm-extractor/internal/config"
	"github.com/marinesurvey/csm-extractor/internal/domain"
	"github.com/marinesurvey/csm-extractor/internal/download"
	"github.com/marinesurvey/csm-extractor/internal/extract"
	"github.com/marinesurvey/csm-extractor/internal/materialize"
	"github.com/marinesurvey/csm-extractor/internal/observability"
	"github.com/marinesurvey/csm-extractor/internal/pdf"
	"github.com/marinesurvey/csm-extractor/internal/pipeline"
	"github.com/marinesurvey/csm-extractor/internal/vlm"
)

// Re-export pipeline types for the public API
type (
	Result       = pipeline.Result
	Stage        = pipeline.Stage
	Document     = pipeline.Document
	BatchItem    = pipeline.BatchItem
	BatchSummary = pipeline.BatchSummary
)

// Stage constants
const (
	StageDone    = pipeline.StageDone
	StageAborted = pipeline.StageAborted
)

// Client runs the survey extraction pipeline against PDF documents.
type Client struct {
	orchestrator *pipeline.Orchestrator
	cfg          *config.Config
}

// LoadConfig resolves configuration from defaults, the optional config file
// at path, and environment variables (including a .env file). Pass an empty
// path to skip the file. Callers may adjust the result before handing it to
// NewClientWithConfig.
func LoadConfig(configPath string) (*config.Config, error) {
	// Ignore error if .env doesn't exist
	_ = godotenv.Load()

	return config.Load(configPath)
}

// NewClient builds a client from LoadConfig's result unchanged.
func NewClient(configPath string) (*Client, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig builds a client from an already-validated config.
func NewClientWithConfig(cfg *config.Config) (*Client, error) {
	if cfg.API.Key == "" {
		cfg.API.Key = os.Getenv("GOOGLE_API_KEY")
	}
	if cfg.API.Key == "" {
		return nil, domain.ConfigError("GOOGLE_API_KEY not set", nil)
	}

	log := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "csm-extractor",
	})

	gemini, err := vlm.NewGeminiClient(cfg.API.Key, cfg.API.Model,
		vlm.WithBaseURL(cfg.API.BaseURL),
		vlm.WithTimeout(cfg.API.Timeout.Std()),
	)
	if err != nil {
		return nil, err
	}

	orchestrator := pipeline.NewOrchestrator(
		*cfg,
		pdf.NewConverter(cfg.Rasterizer.DPI, log),
		classify.NewClassifier(gemini, cfg.API.Temperature, log),
		materialize.NewMaterializer(log),
		extract.NewExtractor(gemini, cfg.API.Temperature, log),
		download.NewDownloader(log),
		log,
	)

	return &Client{orchestrator: orchestrator, cfg: cfg}, nil
}

// Process runs the full pipeline for one document. source is a local PDF
// path or an HTTP(S) URL.
func (c *Client) Process(ctx context.Context, source string) (*Result, error) {
	return c.orchestrator.Run(ctx, source)
}

// ProcessDocument runs the full pipeline for one document, honoring its
// output name.
func (c *Client) ProcessDocument(ctx context.Context, doc Document) (*Result, error) {
	return c.orchestrator.RunDocument(ctx, doc)
}

// ProcessBatch runs the pipeline for each document in order. Individual
// failures are recorded in the summary rather than stopping the batch.
// onItem, if non-nil, is called after each document.
func (c *Client) ProcessBatch(ctx context.Context, docs []Document, onItem func(BatchItem)) (*BatchSummary, error) {
	return c.orchestrator.RunBatch(ctx, docs, onItem)
}

// OutputDir reports where extraction results are written.
func (c *Client) OutputDir() string {
	return c.cfg.Storage.OutputDir
}
