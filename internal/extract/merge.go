package extract

import "github.com/marinesurvey/csm-extractor/internal/domain"

// mergeSystems collapses machinery systems whose system_applied values are
// equal after case and whitespace normalization into one entry. The first
// occurrence of a system keeps its position and display value; items from
// later occurrences are appended in their original row order. The model is
// asked to do this merge itself, but continuation pages make it easy to get
// wrong, so the result is normalized deterministically here.
func mergeSystems(record *domain.ExtractionRecord) *domain.ExtractionRecord {
	if record == nil || len(record.MachinerySystems) == 0 {
		return record
	}

	merged := make([]domain.MachinerySystem, 0, len(record.MachinerySystems))
	index := make(map[string]int, len(record.MachinerySystems))

	for _, sys := range record.MachinerySystems {
		key := sys.MergeKey()
		if i, ok := index[key]; ok {
			merged[i].SurveyItems = append(merged[i].SurveyItems, sys.SurveyItems...)
			continue
		}
		index[key] = len(merged)
		merged = append(merged, domain.MachinerySystem{
			SystemApplied: sys.SystemApplied,
			SurveyItems:   sys.SurveyItems,
		})
	}

	record.MachinerySystems = merged
	return record
}
