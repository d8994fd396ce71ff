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
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// ReplacementRule defines a single literal text replacement
type ReplacementRule struct {
	// FromText is the needle. It is matched literally, never as a pattern.
	FromText string

	// ToText is the replacement text. Empty means the needle is deleted.
	ToText string

	// FileFilterGlob limits the rule to target paths matching this doublestar glob.
	// Empty applies the rule to every path.
	FileFilterGlob string

	// Required makes a rule that matches nothing an error for the caller.
	Required bool
}

// 🔍 AppliesTo reports whether the rule should run against the given path
func (r ReplacementRule) AppliesTo(path string) (bool, error) {
	if r.FileFilterGlob == "" {
		return true, nil
	}
	ok, err := doublestar.Match(r.FileFilterGlob, filepath.ToSlash(filepath.Clean(path)))
	if err != nil {
		return false, errors.Errorf("matching %q against %q: %w", path, r.FileFilterGlob, err)
	}
	return ok, nil
}

// RuleResult records what a single rule did to the buffer
type RuleResult struct {
	Index    int    // position of the rule in the sequence
	FromText string // needle that was searched for
	Count    int    // non-overlapping occurrences replaced
	Skipped  bool   // rule did not apply to the path or had no needle
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if any replacements changed the content
	WasModified bool

	// ReplacementCount is the total number of replacements made across all rules
	ReplacementCount int

	// Rules holds one entry per input rule, in order
	Rules []RuleResult

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies the rules in order, each against the output of the previous one.
	// path is only consulted for FileFilterGlob.
	ReplaceText(ctx context.Context, path string, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}
