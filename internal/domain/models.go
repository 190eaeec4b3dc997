// Package domain holds the data model and error taxonomy shared by all
// pipeline stages.
package domain

import (
	"fmt"
	"strings"
)

// PageImage is one rasterized PDF page. PageNumber is 1-based and contiguous
// across a document. Base64Data holds the stamped PNG, ready to be embedded
// in a vision-model request. Instances are immutable after rasterization.
type PageImage struct {
	PageNumber int
	ImagePath  string
	Base64Data string
	Width      int
	Height     int
}

// ClassificationResult is the vision model's verdict on which pages belong to
// the Planned Machinery Survey section. Invariant: if Found is false,
// PageNumbers is empty.
type ClassificationResult struct {
	Found       bool   `json:"found"`
	PageNumbers []int  `json:"page_numbers"`
	Description string `json:"description"`
}

// Empty reports whether the classification selected no pages.
func (r ClassificationResult) Empty() bool {
	return !r.Found || len(r.PageNumbers) == 0
}

// SurveyItem is one row of the machinery survey table. Every field is an
// optional scalar (string, number, or absent); JSON keys match the report's
// wire format.
type SurveyItem struct {
	Code            any `json:"code,omitempty"`
	Description     any `json:"survey_item_description,omitempty"`
	System          any `json:"system,omitempty"`
	Applicability   any `json:"ap,omitempty"`
	Status          any `json:"status,omitempty"`
	LastDate        any `json:"last_date,omitempty"`
	ExaminationType any `json:"ex,omitempty"`
	NextDate        any `json:"next_date,omitempty"`
	Examiner        any `json:"exam_by_ce,omitempty"`
	Postponed       any `json:"postponed,omitempty"`
}

// MachinerySystem groups the survey items that belong to one machinery
// system. Items from continuation pages are merged into the first entry with
// a matching SystemApplied value.
type MachinerySystem struct {
	SystemApplied any          `json:"system_applied"`
	SurveyItems   []SurveyItem `json:"survey_items"`
}

// MergeKey returns the case- and whitespace-normalized identity used to match
// the same system across pages.
func (s MachinerySystem) MergeKey() string {
	return NormalizeMergeKey(s.SystemApplied)
}

// NormalizeMergeKey reduces a system_applied scalar to its merge identity:
// stringified, whitespace-collapsed, lowercased.
func NormalizeMergeKey(v any) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprint(v)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ExtractionRecord is the pipeline's final artifact: the merged multi-page
// machinery survey table for one document.
type ExtractionRecord struct {
	MachinerySystems []MachinerySystem `json:"machinery_systems"`
}

// ItemCount returns the total number of survey items across all systems.
func (r ExtractionRecord) ItemCount() int {
	n := 0
	for _, sys := range r.MachinerySystems {
		n += len(sys.SurveyItems)
	}
	return n
}

// MaterializeResult summarizes a materialization pass: the durable paths of
// the selected pages, in document order, plus counters.
type MaterializeResult struct {
	Paths         []string
	TotalPages    int
	SelectedPages int
}
