package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marinesurvey/csm-extractor/internal/domain"
)

// Validator provides input validation for PDF files.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidatePDFPath validates that a file path is valid and points to a PDF.
// A missing file is a NotFound error; everything else is a Validation error.
func (v *Validator) ValidatePDFPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return domain.ValidationError("file path cannot be empty", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NotFoundError(fmt.Sprintf("file does not exist: %s", path), err)
		}
		return domain.ValidationError(fmt.Sprintf("cannot access file: %s", path), err)
	}

	if info.IsDir() {
		return domain.ValidationError(fmt.Sprintf("path is a directory, not a file: %s", path), nil)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".pdf" {
		return domain.ValidationError(fmt.Sprintf("file is not a PDF (has extension %s)", ext), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return domain.ValidationError(fmt.Sprintf("cannot open file: %s", path), err)
	}
	file.Close()

	return nil
}

// ValidateDPI validates the rasterization resolution.
func (v *Validator) ValidateDPI(dpi int) error {
	if dpi < 36 || dpi > 1200 {
		return domain.ValidationError(fmt.Sprintf("dpi must be between 36 and 1200, got %d", dpi), nil)
	}
	return nil
}
