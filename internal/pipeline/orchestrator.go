// Package pipeline drives the end-to-end survey extraction flow: rasterize,
// classify, materialize, extract, persist.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marinesurvey/csm-extractor/internal/config"
	"github.com/marinesurvey/csm-extractor/internal/domain"
)

// Stage identifies where a run currently is, or where it stopped.
type Stage string

const (
	StageIdle          Stage = "idle"
	StageDownloading   Stage = "downloading"
	StageRasterizing   Stage = "rasterizing"
	StageClassifying   Stage = "classifying"
	StageMaterializing Stage = "materializing"
	StageExtracting    Stage = "extracting"
	StagePersisting    Stage = "persisting"
	StageDone          Stage = "done"
	StageAborted       Stage = "aborted"
)

// Rasterizer renders a PDF into page-numbered images.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath, destDir string) ([]domain.PageImage, error)
}

// Classifier decides which pages belong to the planned machinery survey section.
type Classifier interface {
	Classify(ctx context.Context, pages []domain.PageImage) (domain.ClassificationResult, error)
}

// Materializer copies the classified pages into a working directory.
type Materializer interface {
	Materialize(pages []domain.PageImage, result domain.ClassificationResult, destDir string) (domain.MaterializeResult, error)
}

// Extractor turns materialized page images into structured records.
type Extractor interface {
	ExtractMerged(ctx context.Context, imagePaths []string) (*domain.ExtractionRecord, error)
	ExtractPages(ctx context.Context, imagePaths []string) ([]*domain.ExtractionRecord, error)
}

// Fetcher downloads a remote document and returns its local path.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, destDir string) (string, error)
}

// Document is one unit of pipeline input. Source is a local PDF path or an
// HTTP(S) URL. Name, when set, becomes the output file stem; otherwise the
// source's base name is used.
type Document struct {
	Source string
	Name   string
}

// Result summarizes a completed or aborted run.
type Result struct {
	Stage         Stage
	Source        string
	OutputPath    string
	TotalPages    int
	SelectedPages int
	ItemCount     int
}

// Orchestrator wires the pipeline stages together. All intermediate files
// live in a per-run temp directory that is removed when the run ends.
type Orchestrator struct {
	cfg          config.Config
	rasterizer   Rasterizer
	classifier   Classifier
	materializer Materializer
	extractor    Extractor
	fetcher      Fetcher
	log          zerolog.Logger
}

// NewOrchestrator assembles an orchestrator from its stage implementations.
func NewOrchestrator(cfg config.Config, r Rasterizer, c Classifier, m Materializer, e Extractor, f Fetcher, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:          cfg,
		rasterizer:   r,
		classifier:   c,
		materializer: m,
		extractor:    e,
		fetcher:      f,
		log:          log.With().Str("component", "pipeline").Logger(),
	}
}

// Run processes a single document given only its source, naming the output
// after the source's base name.
func (o *Orchestrator) Run(ctx context.Context, source string) (*Result, error) {
	return o.RunDocument(ctx, Document{Source: source})
}

// RunDocument processes a single document. When the classifier finds no
// survey section the run ends at StageAborted with a nil error; the caller
// inspects Result.Stage.
func (o *Orchestrator) RunDocument(ctx context.Context, doc Document) (*Result, error) {
	source := doc.Source
	runID := uuid.NewString()
	log := o.log.With().Str("run_id", runID).Str("source", source).Logger()

	workDir, err := os.MkdirTemp(o.cfg.Storage.TempRoot, "csm-run-*")
	if err != nil {
		return nil, domain.IOError("failed to create run directory", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			log.Warn().Err(rmErr).Str("dir", workDir).Msg("failed to clean run directory")
		}
	}()

	result := &Result{Stage: StageIdle, Source: source}

	pdfPath := source
	if isRemote(source) {
		result.Stage = StageDownloading
		pdfPath, err = o.fetcher.Fetch(ctx, source, filepath.Join(workDir, "download"))
		if err != nil {
			return result, err
		}
	}

	result.Stage = StageRasterizing
	pages, err := o.rasterizer.Rasterize(ctx, pdfPath, filepath.Join(workDir, "pages"))
	if err != nil {
		return result, err
	}
	result.TotalPages = len(pages)
	log.Info().Int("pages", len(pages)).Msg("document rasterized")

	result.Stage = StageClassifying
	classification, err := o.classifier.Classify(ctx, pages)
	if err != nil {
		return result, err
	}
	if classification.Empty() {
		log.Info().Msg("no planned machinery survey section found")
		result.Stage = StageAborted
		return result, nil
	}
	log.Info().Ints("page_numbers", classification.PageNumbers).Msg("survey section located")

	result.Stage = StageMaterializing
	materialized, err := o.materializer.Materialize(pages, classification, filepath.Join(workDir, "selected"))
	if err != nil {
		return result, err
	}
	result.SelectedPages = materialized.SelectedPages
	if len(materialized.Paths) == 0 {
		log.Warn().Msg("classified pages fell outside the document")
		result.Stage = StageAborted
		return result, nil
	}

	result.Stage = StageExtracting
	payload, itemCount, err := o.extract(ctx, materialized.Paths)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			log.Info().Msg("no survey items extracted")
			result.Stage = StageAborted
			return result, nil
		}
		return result, err
	}
	result.ItemCount = itemCount

	result.Stage = StagePersisting
	stem := doc.Name
	if stem == "" {
		stem = strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	}
	outputPath, err := o.persist(stem, payload)
	if err != nil {
		return result, err
	}
	result.OutputPath = outputPath

	result.Stage = StageDone
	log.Info().Str("output", outputPath).Int("items", itemCount).Msg("run complete")
	return result, nil
}

// extract runs the extractor in the configured output shape and returns the
// value to persist together with the total item count.
func (o *Orchestrator) extract(ctx context.Context, paths []string) (any, int, error) {
	switch o.cfg.Output.Shape {
	case config.OutputShapePages:
		records, err := o.extractor.ExtractPages(ctx, paths)
		if err != nil {
			return nil, 0, err
		}
		total := 0
		for _, r := range records {
			total += r.ItemCount()
		}
		return records, total, nil
	default:
		record, err := o.extractor.ExtractMerged(ctx, paths)
		if err != nil {
			return nil, 0, err
		}
		return record, record.ItemCount(), nil
	}
}

// persist writes the extraction payload as indented JSON into the output
// directory under the given file stem.
func (o *Orchestrator) persist(stem string, payload any) (string, error) {
	if err := os.MkdirAll(o.cfg.Storage.OutputDir, 0o755); err != nil {
		return "", domain.IOError("failed to create output directory", err)
	}

	outputPath := filepath.Join(o.cfg.Storage.OutputDir, stem+".json")

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", domain.IOError("failed to encode extraction result", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return "", domain.IOError("failed to write extraction result", err)
	}
	return outputPath, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// BatchItem reports the outcome of one document within a batch run.
type BatchItem struct {
	Source string
	Result *Result
	Err    error
}

// BatchSummary aggregates a batch run.
type BatchSummary struct {
	Items     []BatchItem
	Succeeded int
	Aborted   int
	Failed    int
}

// RunBatch processes each document in order. A failing document is recorded
// and does not stop the batch; context cancellation does. onItem, if non-nil,
// is invoked after each document so callers can report progress.
func (o *Orchestrator) RunBatch(ctx context.Context, docs []Document, onItem func(BatchItem)) (*BatchSummary, error) {
	summary := &BatchSummary{}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		res, err := o.RunDocument(ctx, doc)
		item := BatchItem{Source: doc.Source, Result: res, Err: err}
		summary.Items = append(summary.Items, item)
		switch {
		case err != nil:
			summary.Failed++
			o.log.Error().Err(err).Str("source", doc.Source).Msg("document failed")
		case res.Stage == StageAborted:
			summary.Aborted++
		default:
			summary.Succeeded++
		}
		if onItem != nil {
			onItem(item)
		}
	}
	o.log.Info().Int("documents", len(docs)).Int("succeeded", summary.Succeeded).
		Int("aborted", summary.Aborted).Int("failed", summary.Failed).Msg("batch finished")
	return summary, nil
}
