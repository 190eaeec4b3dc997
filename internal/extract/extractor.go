// Package extract turns classified page images into the structured
// machinery-survey record via a single vision-model request.
package extract

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/marinesurvey/csm-extractor/internal/domain"
	"github.com/marinesurvey/csm-extractor/internal/vlm"
)

// Extractor packages ordered page images into model requests and validates
// the structured output. Table parsing itself is delegated to the model.
type Extractor struct {
	invoker     vlm.Invoker
	temperature float64
	schema      map[string]any
	log         zerolog.Logger
}

// NewExtractor creates an extractor backed by the given model invoker.
func NewExtractor(invoker vlm.Invoker, temperature float64, log zerolog.Logger) *Extractor {
	return &Extractor{
		invoker:     invoker,
		temperature: temperature,
		schema:      BuildSurveySchema(),
		log:         log.With().Str("component", "extractor").Logger(),
	}
}

// ExtractMerged sends all images in one request and returns the merged
// record for the whole section. imagePaths are sorted lexicographically,
// which the materializer's naming scheme guarantees equals page order.
//
// An empty path list, or a well-formed response with no survey items, returns
// domain.ErrNoData. Malformed responses and transport faults are real errors.
func (e *Extractor) ExtractMerged(ctx context.Context, imagePaths []string) (*domain.ExtractionRecord, error) {
	if len(imagePaths) == 0 {
		return nil, domain.ErrNoData
	}

	images, err := loadImages(imagePaths)
	if err != nil {
		return nil, err
	}

	e.log.Info().Int("pages", len(images)).Msg("extracting structured data")

	text, err := e.invoker.GenerateContent(ctx, vlm.Request{
		Prompt:       buildPrompt(e.schema),
		Images:       images,
		Temperature:  e.temperature,
		JSONResponse: true,
	})
	if err != nil {
		return nil, err
	}

	record, err := e.parseRecord(text)
	if err != nil {
		return nil, err
	}

	if record.ItemCount() == 0 {
		e.log.Warn().Msg("model returned a well-formed record with no survey items")
		return nil, domain.ErrNoData
	}

	record = mergeSystems(record)
	e.log.Info().Int("systems", len(record.MachinerySystems)).Int("items", record.ItemCount()).
		Msg("extraction complete")
	return record, nil
}

// ExtractPages issues one request per image and returns the per-page records
// in page order. Pages yielding no data are skipped; if every page is empty
// the result is domain.ErrNoData.
func (e *Extractor) ExtractPages(ctx context.Context, imagePaths []string) ([]*domain.ExtractionRecord, error) {
	if len(imagePaths) == 0 {
		return nil, domain.ErrNoData
	}

	sorted := append([]string(nil), imagePaths...)
	sort.Strings(sorted)

	var records []*domain.ExtractionRecord
	for _, path := range sorted {
		images, err := loadImages([]string{path})
		if err != nil {
			return nil, err
		}

		text, err := e.invoker.GenerateContent(ctx, vlm.Request{
			Prompt:       buildPrompt(e.schema),
			Images:       images,
			Temperature:  e.temperature,
			JSONResponse: true,
		})
		if err != nil {
			return nil, err
		}

		record, err := e.parseRecord(text)
		if err != nil {
			return nil, err
		}
		if record.ItemCount() == 0 {
			e.log.Warn().Str("image", path).Msg("no data extracted for page")
			continue
		}
		records = append(records, mergeSystems(record))
	}

	if len(records) == 0 {
		return nil, domain.ErrNoData
	}
	return records, nil
}

func (e *Extractor) parseRecord(text string) (*domain.ExtractionRecord, error) {
	raw, err := vlm.ExtractJSON(text)
	if err != nil {
		return nil, domain.RemoteServiceError("model response is not valid JSON", err)
	}

	if err := ValidateAgainstSchema(e.schema, []byte(raw)); err != nil {
		return nil, domain.RemoteServiceError("model output does not match the survey schema", err)
	}

	var record domain.ExtractionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, domain.RemoteServiceError("failed to decode extraction record", err)
	}
	return &record, nil
}

// loadImages reads and encodes the images at the given paths, sorted
// lexicographically to preserve page order.
func loadImages(paths []string) ([]vlm.ImagePart, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	images := make([]vlm.ImagePart, 0, len(sorted))
	for _, path := range sorted {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, domain.IOError("failed to read page image "+path, err)
		}
		images = append(images, vlm.ImagePart{
			MIMEType: "image/png",
			Data:     base64.StdEncoding.EncodeToString(data),
		})
	}
	return images, nil
}
