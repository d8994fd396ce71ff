// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package text

import (
	"context"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var _ TextReplacer = (*SimpleTextReplacer)(nil)

// SimpleTextReplacer implements TextReplacer using literal string replacement
type SimpleTextReplacer struct{}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceAll replaces every non-overlapping occurrence of needle, scanning left to right.
// It returns the new string and the number of replacements.
func ReplaceAll(s, needle, replacement string) (string, int) {
	if needle == "" {
		return s, 0
	}
	n := strings.Count(s, needle)
	if n == 0 {
		return s, 0
	}
	return strings.Replace(s, needle, replacement, n), n
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, path string, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	logger := zerolog.Ctx(ctx)

	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
		Rules:           make([]RuleResult, 0, len(rules)),
	}

	current := string(originalContent)
	for i, rule := range rules {
		rr := RuleResult{Index: i, FromText: rule.FromText}

		applies, err := rule.AppliesTo(path)
		if err != nil {
			return nil, errors.Errorf("rule %d: %w", i, err)
		}
		if rule.FromText == "" || !applies {
			rr.Skipped = true
			result.Rules = append(result.Rules, rr)
			logger.Debug().Int("rule", i).Str("path", path).Msg("rule skipped")
			continue
		}

		current, rr.Count = ReplaceAll(current, rule.FromText, rule.ToText)
		result.ReplacementCount += rr.Count
		result.Rules = append(result.Rules, rr)

		logger.Debug().Int("rule", i).Int("count", rr.Count).Msg("rule applied")
	}

	result.ModifiedContent = []byte(current)
	result.WasModified = current != string(originalContent)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
		if rule.FileFilterGlob != "" && !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return errors.Errorf("rule %d: invalid file_filter_glob %q", i, rule.FileFilterGlob)
		}
	}
	return nil
}
