// Package materialize persists classified page images to durable storage.
package materialize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/marinesurvey/csm-extractor/internal/domain"
)

// Materializer copies the classified subset of a document's page images into
// an output directory, named so lexicographic order equals document order.
type Materializer struct {
	log zerolog.Logger
}

// NewMaterializer creates a materializer.
func NewMaterializer(log zerolog.Logger) *Materializer {
	return &Materializer{log: log.With().Str("component", "materializer").Logger()}
}

// Materialize copies the pages selected by result into destDir as
// csm_page_%03d.png and returns their paths in page order. An empty selection
// is a valid terminal outcome: zero files, nil error. Selected page numbers
// outside the document's range are ignored.
func (m *Materializer) Materialize(pages []domain.PageImage, result domain.ClassificationResult, destDir string) (domain.MaterializeResult, error) {
	out := domain.MaterializeResult{TotalPages: len(pages)}

	if result.Empty() {
		m.log.Info().Int("total_pages", out.TotalPages).Msg("no pages selected, nothing to materialize")
		return out, nil
	}

	selected := make(map[int]bool, len(result.PageNumbers))
	for _, n := range result.PageNumbers {
		selected[n] = true
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return domain.MaterializeResult{}, domain.IOError("failed to create output directory", err)
	}

	for _, page := range pages {
		if !selected[page.PageNumber] {
			continue
		}

		src, err := os.ReadFile(page.ImagePath)
		if err != nil {
			return domain.MaterializeResult{}, domain.IOError(
				fmt.Sprintf("failed to read page %d image", page.PageNumber), err)
		}

		dst := filepath.Join(destDir, fmt.Sprintf("csm_page_%03d.png", page.PageNumber))
		if err := os.WriteFile(dst, src, 0o644); err != nil {
			return domain.MaterializeResult{}, domain.IOError(
				fmt.Sprintf("failed to write page %d image", page.PageNumber), err)
		}

		out.Paths = append(out.Paths, dst)
		out.SelectedPages++
	}

	m.log.Info().Int("total_pages", out.TotalPages).Int("selected", out.SelectedPages).
		Msg("materialized classified pages")
	return out, nil
}
