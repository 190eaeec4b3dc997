package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog"

	"github.com/marinesurvey/csm-extractor/internal/domain"
)

// Converter rasterizes PDF documents into page-numbered PNG images using
// go-fitz.
type Converter struct {
	dpi int
	log zerolog.Logger
}

// NewConverter creates a converter rendering at the given resolution.
func NewConverter(dpi int, log zerolog.Logger) *Converter {
	return &Converter{
		dpi: dpi,
		log: log.With().Str("component", "rasterizer").Logger(),
	}
}

// Rasterize converts the PDF at pdfPath into stamped PNG page images written
// under destDir as page_%03d.png. Page numbers are 1-based, contiguous, and
// match the document's natural order. On any failure no partial result is
// returned.
func (c *Converter) Rasterize(ctx context.Context, pdfPath, destDir string) ([]domain.PageImage, error) {
	validator := NewValidator()
	if err := validator.ValidatePDFPath(pdfPath); err != nil {
		return nil, err
	}
	if err := validator.ValidateDPI(c.dpi); err != nil {
		return nil, err
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, domain.ConversionError("failed to open PDF", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return nil, domain.ConversionError("PDF has no pages", nil)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, domain.IOError("failed to create image directory", err)
	}

	face := loadLabelFace()
	c.log.Info().Str("pdf", pdfPath).Int("pages", pageCount).Int("dpi", c.dpi).
		Msg("rasterizing document")

	images := make([]domain.PageImage, 0, pageCount)

	for pageNum := 0; pageNum < pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := doc.ImageDPI(pageNum, float64(c.dpi))
		if err != nil {
			return nil, domain.ConversionError(fmt.Sprintf("failed to render page %d", pageNum+1), err)
		}

		stamped := stampPageNumber(img, pageNum+1, face)

		var buf bytes.Buffer
		if err := png.Encode(&buf, stamped); err != nil {
			return nil, domain.ConversionError(fmt.Sprintf("failed to encode page %d as PNG", pageNum+1), err)
		}

		outputPath := filepath.Join(destDir, fmt.Sprintf("page_%03d.png", pageNum+1))
		if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
			return nil, domain.IOError(fmt.Sprintf("failed to write page %d", pageNum+1), err)
		}

		bounds := stamped.Bounds()
		images = append(images, domain.PageImage{
			PageNumber: pageNum + 1,
			ImagePath:  outputPath,
			Base64Data: base64.StdEncoding.EncodeToString(buf.Bytes()),
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
		})

		c.log.Debug().Int("page", pageNum+1).Msg("page rasterized")
	}

	return images, nil
}
