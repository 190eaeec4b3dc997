// Package classify identifies which pages of a survey-status document belong
// to the Planned Machinery Survey section.
package classify

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/marinesurvey/csm-extractor/internal/domain"
	"github.com/marinesurvey/csm-extractor/internal/vlm"
)

// Classifier sends all page images to the vision model in one request and
// parses its page-selection verdict.
type Classifier struct {
	invoker     vlm.Invoker
	temperature float64
	log         zerolog.Logger
}

// NewClassifier creates a classifier backed by the given model invoker.
func NewClassifier(invoker vlm.Invoker, temperature float64, log zerolog.Logger) *Classifier {
	return &Classifier{
		invoker:     invoker,
		temperature: temperature,
		log:         log.With().Str("component", "classifier").Logger(),
	}
}

// Classify issues exactly one model round trip for the whole document.
//
// An unparseable response, or one with found=false, yields an empty result
// with a nil error: "no matching section" is a business outcome, not a fault.
// When found is false the page_numbers list is ignored even if non-empty.
// Transport and service faults propagate as domain.RemoteServiceError.
func (c *Classifier) Classify(ctx context.Context, pages []domain.PageImage) (domain.ClassificationResult, error) {
	if len(pages) == 0 {
		return domain.ClassificationResult{}, nil
	}

	images := make([]vlm.ImagePart, 0, len(pages))
	for _, p := range pages {
		images = append(images, vlm.ImagePart{MIMEType: "image/png", Data: p.Base64Data})
	}

	c.log.Info().Int("pages", len(pages)).Msg("classifying document pages")

	text, err := c.invoker.GenerateContent(ctx, vlm.Request{
		Prompt:       classificationPrompt,
		Images:       images,
		Temperature:  c.temperature,
		JSONResponse: true,
	})
	if err != nil {
		return domain.ClassificationResult{}, err
	}

	return c.parseResult(text), nil
}

func (c *Classifier) parseResult(text string) domain.ClassificationResult {
	raw, err := vlm.ExtractJSON(text)
	if err != nil {
		c.log.Warn().Err(err).Msg("classifier response is not valid JSON, treating as empty")
		return domain.ClassificationResult{}
	}

	var result domain.ClassificationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		c.log.Warn().Err(err).Msg("failed to decode classifier response, treating as empty")
		return domain.ClassificationResult{}
	}

	// found overrides page_numbers: a false verdict empties the selection.
	if !result.Found {
		if len(result.PageNumbers) > 0 {
			c.log.Warn().Ints("page_numbers", result.PageNumbers).
				Msg("classifier returned pages with found=false, discarding")
		}
		return domain.ClassificationResult{Description: result.Description}
	}

	c.log.Info().Ints("page_numbers", result.PageNumbers).
		Str("description", result.Description).
		Msg("classification complete")
	return result
}
