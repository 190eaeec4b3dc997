package vlm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"found": true}`,
			want:  `{"found": true}`,
		},
		{
			name:  "json markdown fence",
			input: "```json\n{\"found\": true}\n```",
			want:  `{"found": true}`,
		},
		{
			name:  "plain markdown fence",
			input: "```\n{\"found\": false}\n```",
			want:  `{"found": false}`,
		},
		{
			name:  "object wrapped in prose",
			input: `Here is the result: {"page_numbers": [2, 3]} as requested.`,
			want:  `{"page_numbers": [2, 3]}`,
		},
		{
			name:  "top level array",
			input: `The records: [{"a": 1}, {"a": 2}]`,
			want:  `[{"a": 1}, {"a": 2}]`,
		},
		{
			name:  "array before object picks array",
			input: `[{"a": 1}] trailing {"b": 2}`,
			want:  `[{"a": 1}]`,
		},
		{
			name:    "no json at all",
			input:   "I could not find any data.",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractJSON(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSON(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
