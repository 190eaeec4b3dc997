package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marinesurvey/csm-extractor/internal/domain"
)

func TestValidatePDFPath(t *testing.T) {
	dir := t.TempDir()

	pdfPath := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("write test pdf: %v", err)
	}
	txtPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txtPath, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write test txt: %v", err)
	}

	v := NewValidator()

	tests := []struct {
		name     string
		path     string
		wantType domain.ErrorType
		wantOK   bool
	}{
		{
			name:   "valid pdf file",
			path:   pdfPath,
			wantOK: true,
		},
		{
			name:     "empty path",
			path:     "",
			wantType: domain.ErrTypeValidation,
		},
		{
			name:     "missing file",
			path:     filepath.Join(dir, "absent.pdf"),
			wantType: domain.ErrTypeNotFound,
		},
		{
			name:     "directory instead of file",
			path:     dir,
			wantType: domain.ErrTypeValidation,
		},
		{
			name:     "wrong extension",
			path:     txtPath,
			wantType: domain.ErrTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePDFPath(tt.path)
			if tt.wantOK {
				if err != nil {
					t.Errorf("ValidatePDFPath(%q) = %v, want nil", tt.path, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidatePDFPath(%q) = nil, want %q error", tt.path, tt.wantType)
			}
			if !domain.IsType(err, tt.wantType) {
				t.Errorf("ValidatePDFPath(%q) error type = %v, want %q", tt.path, err, tt.wantType)
			}
		})
	}
}

func TestValidateDPI(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		dpi    int
		wantOK bool
	}{
		{36, true},
		{200, true},
		{1200, true},
		{35, false},
		{1201, false},
		{0, false},
		{-100, false},
	}

	for _, tt := range tests {
		err := v.ValidateDPI(tt.dpi)
		if tt.wantOK && err != nil {
			t.Errorf("ValidateDPI(%d) = %v, want nil", tt.dpi, err)
		}
		if !tt.wantOK && !domain.IsType(err, domain.ErrTypeValidation) {
			t.Errorf("ValidateDPI(%d) = %v, want validation error", tt.dpi, err)
		}
	}
}
