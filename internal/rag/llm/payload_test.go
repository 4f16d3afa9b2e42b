package llm

import "testing"

func TestParsePayload_Shapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "openai choices with string content",
			raw:  `{"choices":[{"message":{"content":"X"}}]}`,
			want: "X",
		},
		{
			name: "openai choices with fragment array",
			raw:  `{"choices":[{"message":{"content":[{"type":"text","text":"part one "},{"type":"text","text":"part two"}]}}]}`,
			want: "part one part two",
		},
		{
			name: "plain json string",
			raw:  `"just an answer"`,
			want: "just an answer",
		},
		{
			name: "ollama response field",
			raw:  `{"response":"local model answer"}`,
			want: "local model answer",
		},
		{
			name: "anthropic content string",
			raw:  `{"content":"claude style"}`,
			want: "claude style",
		},
		{
			name: "anthropic content fragments",
			raw:  `{"content":[{"type":"text","text":"a"},{"type":"text","text":"b"}]}`,
			want: "ab",
		},
		{
			name: "content as bare string array",
			raw:  `{"content":["a","b"]}`,
			want: "ab",
		},
		{
			name: "unknown object shape",
			raw:  `{"result":{"nested":"thing"}}`,
			want: "",
		},
		{
			name: "empty choices",
			raw:  `{"choices":[]}`,
			want: "",
		},
		{
			name: "raw non-json body",
			raw:  `the gateway replied in plain text`,
			want: "the gateway replied in plain text",
		},
		{
			name: "empty body",
			raw:  ``,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractText(ParsePayload([]byte(tt.raw)))
			if got != tt.want {
				t.Errorf("Extracted %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePayload_ChoicesWinOverOtherKeys(t *testing.T) {
	raw := `{"choices":[{"message":{"content":"from choices"}}],"response":"from response"}`
	got := ExtractText(ParsePayload([]byte(raw)))
	if got != "from choices" {
		t.Errorf("choices must take priority, got %q", got)
	}
}
