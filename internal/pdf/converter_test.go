package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marinesurvey/csm-extractor/internal/domain"
)

// Rendering real documents needs a fixture PDF and the mupdf runtime, so
// these tests cover the input validation paths only.

func TestRasterizeMissingFile(t *testing.T) {
	c := NewConverter(200, zerolog.Nop())

	_, err := c.Rasterize(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"), t.TempDir())
	if !domain.IsType(err, domain.ErrTypeNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestRasterizeInvalidDPI(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("write test pdf: %v", err)
	}

	c := NewConverter(10, zerolog.Nop())

	_, err := c.Rasterize(context.Background(), pdfPath, t.TempDir())
	if !domain.IsType(err, domain.ErrTypeValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}
