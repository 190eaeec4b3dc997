package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildSurveySchema returns the JSON-Schema (draft 2020-12 subset) for the
// merged machinery-survey record, as a generic map. It is embedded in the
// extraction prompt as the structured-output constraint and also used locally
// to validate the model's response.
func BuildSurveySchema() map[string]any {
	item := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"code":                    scalarProp(),
			"survey_item_description": scalarProp(),
			"system":                  scalarProp(),
			"ap":                      scalarProp(),
			"status":                  scalarProp(),
			"last_date":               scalarProp(),
			"ex":                      scalarProp(),
			"next_date":               scalarProp(),
			"exam_by_ce":              scalarProp(),
			"postponed":               scalarProp(),
		},
	}

	system := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"system_applied": scalarProp(),
			"survey_items": map[string]any{
				"type":  "array",
				"items": item,
			},
		},
		"required": []string{"survey_items"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"machinery_systems": map[string]any{
				"type":  "array",
				"items": system,
			},
		},
		"required": []string{"machinery_systems"},
	}
}

// scalarProp describes an optional table-cell value: string, number, or null.
func scalarProp() map[string]any {
	return map[string]any{"type": []string{"string", "number", "null"}}
}

// ValidateAgainstSchema validates data against schemaMap.
func ValidateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
