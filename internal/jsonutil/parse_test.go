package jsonutil

import (
	"strings"
	"testing"
)

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "json fence",
			in:   "```json\n[{\"a\": 1}]\n```",
			want: "[{\"a\": 1}]",
		},
		{
			name: "bare fence",
			in:   "```\n{\"a\": 1}\n```",
			want: "{\"a\": 1}",
		},
		{
			name: "no fence",
			in:   "{\"a\": 1}",
			want: "{\"a\": 1}",
		},
		{
			name: "fence with surrounding whitespace",
			in:   "  ```json\n[1, 2]\n```  ",
			want: "[1, 2]",
		},
		{
			name: "opening fence only",
			in:   "```json\n[1, 2]",
			want: "[1, 2]",
		},
		{
			name: "single line of backticks",
			in:   "```",
			want: "```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdownFences(tt.in); got != tt.want {
				t.Errorf("StripMarkdownFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "bare object",
			in:   `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "array with prose around it",
			in:   `Here is your plan: [{"scene": 1}] Enjoy!`,
			want: `[{"scene": 1}]`,
		},
		{
			name: "object before array picks object",
			in:   `{"scenes": [1, 2]} trailing`,
			want: `{"scenes": [1, 2]}`,
		},
		{
			name:    "no json at all",
			in:      "the model declined to answer",
			wantErr: true,
		},
		{
			name:    "unterminated array",
			in:      `[{"scene": 1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractJSON(%q) succeeded with %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSON(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	type scene struct {
		SequenceNumber int    `json:"sequence_number"`
		Description    string `json:"description"`
	}

	raw := "```json\n[{\"sequence_number\": 1, \"description\": \"opening\"}]\n```"
	scenes, err := ParseJSON[[]scene](raw)
	if err != nil {
		t.Fatalf("ParseJSON returned error: %v", err)
	}
	if len(scenes) != 1 {
		t.Fatalf("got %d scenes, want 1", len(scenes))
	}
	if scenes[0].SequenceNumber != 1 || scenes[0].Description != "opening" {
		t.Errorf("parsed scene = %+v", scenes[0])
	}
}

func TestParseJSONInvalid(t *testing.T) {
	_, err := ParseJSON[[]int]("[1, 2,")
	if err == nil {
		t.Fatal("ParseJSON succeeded on truncated input, want error")
	}
	if !strings.Contains(err.Error(), "no closing") {
		t.Errorf("error = %q, want mention of missing closing delimiter", err)
	}

	_, err = ParseJSON[map[string]int](`{"a": "not a number"}`)
	if err == nil {
		t.Fatal("ParseJSON succeeded on mistyped input, want error")
	}
	if !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("error = %q, want invalid JSON", err)
	}
}
