// Package manifest reads batch work lists from Excel workbooks.
package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/marinesurvey/csm-extractor/internal/domain"
)

// Column headers recognised in the first row of the work list sheet.
const (
	vesselColumn = "vesselName"
	linkColumn   = "linkForSyia"
)

// Entry is one row of the batch manifest: a vessel and the URL of its
// survey report PDF.
type Entry struct {
	VesselName string
	ReportURL  string
}

var (
	unsafeChars  = regexp.MustCompile(`[^\w\s-]`)
	spacesDashes = regexp.MustCompile(`[-\s]+`)
)

// SanitizeName converts a vessel name into a filesystem-safe slug. Unsafe
// characters are dropped and runs of spaces or hyphens collapse to a
// single hyphen.
func SanitizeName(name string) string {
	s := unsafeChars.ReplaceAllString(strings.TrimSpace(name), "")
	s = spacesDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Load reads the first sheet of the workbook at path and returns one entry
// per usable row. Rows missing the vessel name or URL are skipped.
func Load(path string) ([]Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, domain.IOError("failed to open manifest workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ValidationError("manifest workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, domain.IOError("failed to read manifest sheet", err)
	}
	if len(rows) == 0 {
		return nil, domain.ValidationError("manifest sheet is empty", nil)
	}

	vesselIdx, linkIdx := -1, -1
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case vesselColumn:
			vesselIdx = i
		case linkColumn:
			linkIdx = i
		}
	}
	if vesselIdx < 0 || linkIdx < 0 {
		return nil, domain.ValidationError(
			fmt.Sprintf("manifest sheet must contain %q and %q columns", vesselColumn, linkColumn), nil)
	}

	var entries []Entry
	for _, row := range rows[1:] {
		var vessel, link string
		if vesselIdx < len(row) {
			vessel = strings.TrimSpace(row[vesselIdx])
		}
		if linkIdx < len(row) {
			link = strings.TrimSpace(row[linkIdx])
		}
		if vessel == "" || link == "" {
			continue
		}
		entries = append(entries, Entry{VesselName: vessel, ReportURL: link})
	}
	return entries, nil
}
