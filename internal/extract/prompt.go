package extract

import "encoding/json"

// extractionInstructions tell the model how to read the multi-page table:
// page 1 fixes the column layout, later pages are continuations, and rows
// from all pages are combined per machinery system.
const extractionInstructions = `IMPORTANT: You will receive MULTIPLE pages from the 'NK-SHIPS: Survey Status - Planned Machinery Survey' report.

PAGE HANDLING INSTRUCTIONS:
- Page 1: Contains column headers AND data rows. Use it as reference for column positions AND extract its data.
- Pages 2 onwards: Continue extracting data using the column positions identified from Page 1.

EXTRACTION TASK:
1. From Page 1: Identify the column headers and their exact positions
2. Extract ALL survey items from Page 1 (excluding the header row)
3. Apply the same column positions to ALL subsequent pages to correctly map the data
4. Extract survey items from ALL pages (including Page 1)
5. Combine all extracted items into a single comprehensive list

The data should be organized by machinery system (e.g., Main Diesel Engine, Shafting & Auxiliary Engine), with each system containing its corresponding survey items in row-wise format. Survey items from all pages should be merged into their respective system categories.

Return ONLY a JSON object that matches the following JSON Schema. Do not wrap it in markdown codeblocks and do not add commentary.

JSON Schema:
`

// buildPrompt assembles the extraction prompt with the schema appended.
func buildPrompt(schema map[string]any) string {
	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		// The schema is a static literal; marshaling cannot fail in practice.
		return extractionInstructions
	}
	return extractionInstructions + string(b)
}
