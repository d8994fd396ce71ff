package text

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleTextReplacer_ReplaceText(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		content      string
		rules        []ReplacementRule
		want         string
		wantCounts   []int
		wantSkipped  []bool
		wantModified bool
	}{
		{
			name:    "simple_replacement",
			content: "Hello World",
			rules: []ReplacementRule{
				{FromText: "World", ToText: "Universe"},
			},
			want:         "Hello Universe",
			wantCounts:   []int{1},
			wantModified: true,
		},
		{
			name:    "replace_all_occurrences",
			content: "a World b World c World",
			rules: []ReplacementRule{
				{FromText: "World", ToText: "X"},
			},
			want:         "a X b X c X",
			wantCounts:   []int{3},
			wantModified: true,
		},
		{
			name:    "non_overlapping_left_to_right",
			content: "aaaaa",
			rules: []ReplacementRule{
				{FromText: "aa", ToText: "b"},
			},
			want:         "bba",
			wantCounts:   []int{2},
			wantModified: true,
		},
		{
			name:    "replacement_is_not_rescanned",
			content: "ab",
			rules: []ReplacementRule{
				{FromText: "a", ToText: "aa"},
			},
			want:         "aab",
			wantCounts:   []int{1},
			wantModified: true,
		},
		{
			name:    "sequential_composition",
			content: "x",
			rules: []ReplacementRule{
				{FromText: "x", ToText: "y"},
				{FromText: "y", ToText: "z"},
			},
			want:         "z",
			wantCounts:   []int{1, 1},
			wantModified: true,
		},
		{
			name:    "reverse_order_does_not_chain",
			content: "x",
			rules: []ReplacementRule{
				{FromText: "y", ToText: "z"},
				{FromText: "x", ToText: "y"},
			},
			want:         "y",
			wantCounts:   []int{0, 1},
			wantModified: true,
		},
		{
			name:    "deletion",
			content: "import { a, useProgram } from './x';",
			rules: []ReplacementRule{
				{FromText: ", useProgram", ToText: ""},
			},
			want:         "import { a } from './x';",
			wantCounts:   []int{1},
			wantModified: true,
		},
		{
			name:    "regex_metacharacters_are_literal",
			content: `{program === "Jordan" ? a : b} .*`,
			rules: []ReplacementRule{
				{FromText: `{program === "Jordan" ? a : b}`, ToText: "{b}"},
				{FromText: ".*", ToText: "!"},
			},
			want:         "{b} !",
			wantCounts:   []int{1, 1},
			wantModified: true,
		},
		{
			name:    "no_match",
			content: "Hello World",
			rules: []ReplacementRule{
				{FromText: "Goodbye", ToText: "Hi"},
			},
			want:         "Hello World",
			wantCounts:   []int{0},
			wantModified: false,
		},
		{
			name:    "empty_content",
			content: "",
			rules: []ReplacementRule{
				{FromText: "World", ToText: "Universe"},
			},
			want:         "",
			wantCounts:   []int{0},
			wantModified: false,
		},
		{
			name:         "empty_rules",
			content:      "Hello World",
			rules:        []ReplacementRule{},
			want:         "Hello World",
			wantCounts:   []int{},
			wantModified: false,
		},
		{
			name:    "empty_needle_is_skipped",
			content: "Hello",
			rules: []ReplacementRule{
				{FromText: "", ToText: "x"},
			},
			want:         "Hello",
			wantCounts:   []int{0},
			wantSkipped:  []bool{true},
			wantModified: false,
		},
		{
			name:    "glob_filter_matches",
			path:    "apps/web/src/layout/Header.tsx",
			content: "foo",
			rules: []ReplacementRule{
				{FromText: "foo", ToText: "bar", FileFilterGlob: "**/*.tsx"},
			},
			want:         "bar",
			wantCounts:   []int{1},
			wantModified: true,
		},
		{
			name:    "glob_filter_skips",
			path:    "apps/web/src/layout/Header.css",
			content: "foo",
			rules: []ReplacementRule{
				{FromText: "foo", ToText: "bar", FileFilterGlob: "**/*.tsx"},
				{FromText: "foo", ToText: "baz"},
			},
			want:         "baz",
			wantCounts:   []int{0, 1},
			wantSkipped:  []bool{true, false},
			wantModified: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replacer := NewSimpleTextReplacer()
			result, err := replacer.ReplaceText(
				context.Background(),
				tt.path,
				strings.NewReader(tt.content),
				tt.rules,
			)

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantModified, result.WasModified)

			require.Len(t, result.Rules, len(tt.rules))
			total := 0
			for i, rr := range result.Rules {
				assert.Equal(t, i, rr.Index)
				assert.Equal(t, tt.wantCounts[i], rr.Count, "rule %d count", i)
				if tt.wantSkipped != nil {
					assert.Equal(t, tt.wantSkipped[i], rr.Skipped, "rule %d skipped", i)
				}
				total += rr.Count
			}
			assert.Equal(t, total, result.ReplacementCount)
		})
	}
}

func TestReplaceAll(t *testing.T) {
	out, n := ReplaceAll("one two one two one", "one", "1")
	assert.Equal(t, "1 two 1 two 1", out)
	assert.Equal(t, 3, n)

	out, n = ReplaceAll("unchanged", "", "x")
	assert.Equal(t, "unchanged", out)
	assert.Zero(t, n)
}

func TestSimpleTextReplacer_ValidateRules(t *testing.T) {
	tests := []struct {
		name      string
		rules     []ReplacementRule
		wantError string
	}{
		{
			name: "valid_rules",
			rules: []ReplacementRule{
				{FromText: "foo", ToText: "bar", FileFilterGlob: "**/*.tsx"},
				{FromText: "baz"},
			},
		},
		{
			name: "missing_from_text",
			rules: []ReplacementRule{
				{FromText: "foo"},
				{ToText: "bar"},
			},
			wantError: "rule 1: from_text is required",
		},
		{
			name: "bad_glob",
			rules: []ReplacementRule{
				{FromText: "foo", FileFilterGlob: "src/[a-"},
			},
			wantError: "invalid file_filter_glob",
		},
		{
			name:  "empty_rules",
			rules: []ReplacementRule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replacer := NewSimpleTextReplacer()
			err := replacer.ValidateRules(tt.rules)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
		})
	}
}
