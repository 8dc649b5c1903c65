package content

import (
	"strings"
	"testing"
)

func TestHasCharRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		limit int
		want  bool
	}{
		{name: "empty", input: "", limit: 3, want: false},
		{name: "no repetition", input: "abcdef", limit: 2, want: false},
		{name: "run at limit", input: "aaa", limit: 3, want: true},
		{name: "run below limit", input: "aa", limit: 3, want: false},
		{name: "run in middle", input: "xyz!!!!abc", limit: 4, want: true},
		{name: "interrupted run", input: "aabaabaab", limit: 3, want: false},
		{name: "multibyte run", input: strings.Repeat("ё", 5), limit: 5, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := hasCharRun(tt.input, tt.limit); got != tt.want {
				t.Errorf("hasCharRun(%q, %d) = %v, want %v", tt.input, tt.limit, got, tt.want)
			}
		})
	}
}

func TestReplaceUnlessAdjacent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple bold", input: "**x**", want: "<b>x</b>"},
		{name: "bold in sentence", input: "a **x** b", want: "a <b>x</b> b"},
		{name: "preceded by marker", input: "***x**", want: "***x**"},
		{name: "followed by marker", input: "**x***", want: "**x***"},
		{name: "two independent runs", input: "**x** y **z**", want: "<b>x</b> y <b>z</b>"},
		{name: "no match", input: "plain", want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := replaceUnlessAdjacent(tt.input, mdBoldRegex, '*', "<b>", "</b>")
			if got != tt.want {
				t.Errorf("replaceUnlessAdjacent(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTableRegexSurvivesDashStripping(t *testing.T) {
	t.Parallel()

	// The heuristic fragment pass removes "---" before table cleanup runs,
	// leaving separator rows as bare pipes. The separator pattern accepts
	// those, so the table is still removed as a whole.
	table := "|h1|h2|\n|||\n|a|b|\n"
	if got := tableMDRegex.ReplaceAllString(table, ""); got != "" {
		t.Errorf("table not fully removed, residue %q", got)
	}
}
