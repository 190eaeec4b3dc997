package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinesurvey/csm-extractor/internal/domain"
)

func TestMergeSystemsCollapsesDuplicates(t *testing.T) {
	record := &domain.ExtractionRecord{
		MachinerySystems: []domain.MachinerySystem{
			{
				SystemApplied: "Main Diesel Engine",
				SurveyItems:   []domain.SurveyItem{{Code: "311001"}, {Code: "311002"}},
			},
			{
				SystemApplied: "Shafting",
				SurveyItems:   []domain.SurveyItem{{Code: "313001"}},
			},
			{
				// Continuation page repeats the first system with different casing.
				SystemApplied: "MAIN  DIESEL ENGINE",
				SurveyItems:   []domain.SurveyItem{{Code: "311003"}},
			},
		},
	}

	merged := mergeSystems(record)

	require.Len(t, merged.MachinerySystems, 2)

	first := merged.MachinerySystems[0]
	assert.Equal(t, "Main Diesel Engine", first.SystemApplied, "first occurrence keeps its display value")
	require.Len(t, first.SurveyItems, 3)
	assert.Equal(t, "311001", first.SurveyItems[0].Code)
	assert.Equal(t, "311002", first.SurveyItems[1].Code)
	assert.Equal(t, "311003", first.SurveyItems[2].Code)

	assert.Equal(t, "Shafting", merged.MachinerySystems[1].SystemApplied)
}

func TestMergeSystemsPreservesDistinctSystems(t *testing.T) {
	record := &domain.ExtractionRecord{
		MachinerySystems: []domain.MachinerySystem{
			{SystemApplied: "Boiler", SurveyItems: []domain.SurveyItem{{Code: "1"}}},
			{SystemApplied: "Steering Gear", SurveyItems: []domain.SurveyItem{{Code: "2"}}},
		},
	}

	merged := mergeSystems(record)
	require.Len(t, merged.MachinerySystems, 2)
	assert.Equal(t, 2, merged.ItemCount())
}

func TestMergeSystemsNilAndEmpty(t *testing.T) {
	assert.Nil(t, mergeSystems(nil))

	empty := &domain.ExtractionRecord{}
	assert.Same(t, empty, mergeSystems(empty))
}
