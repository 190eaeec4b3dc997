package vlm

import (
	"fmt"
	"strings"
)

// ExtractJSON isolates a JSON object or array from a model response that may
// carry markdown fences or surrounding prose.
func ExtractJSON(content string) (string, error) {
	content = strings.TrimSpace(content)

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	objStart := strings.Index(content, "{")
	arrStart := strings.Index(content, "[")

	start, closer := objStart, "}"
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start, closer = arrStart, "]"
	}

	end := strings.LastIndex(content, closer)
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no valid JSON found in response")
	}

	return content[start : end+1], nil
}
