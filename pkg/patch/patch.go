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

package patch

import (
	"bytes"
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/file"
	"github.com/walteh/patchrc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📚 Definition is one patch: a target file and the ordered rules to apply to it
type Definition struct {
	Name   string
	Path   string
	Rules  []text.ReplacementRule
	Strict bool // every rule must match at least once
}

// Validate checks that the definition can be applied
func (d Definition) Validate() error {
	if d.Path == "" {
		return newFileError("validate", d.Path, ErrInvalidDefinition, errors.New("path is required"))
	}
	if len(d.Rules) == 0 {
		return newFileError("validate", d.Path, ErrInvalidDefinition, errors.New("at least one rule is required"))
	}
	if err := text.NewSimpleTextReplacer().ValidateRules(d.Rules); err != nil {
		return newFileError("validate", d.Path, ErrInvalidDefinition, err)
	}
	return nil
}

// 📊 Result is the outcome of a successful patch
type Result struct {
	Path        string
	Replacement *text.ReplacementResult
}

// Patcher applies definitions to files
type Patcher struct {
	files    file.Manager
	replacer text.TextReplacer
}

// Option configures a Patcher
type Option func(*Patcher)

// WithFileManager overrides the file system used by the Patcher
func WithFileManager(m file.Manager) Option {
	return func(p *Patcher) { p.files = m }
}

// 🏭 New creates a Patcher backed by the real file system
func New(opts ...Option) *Patcher {
	p := &Patcher{
		files:    file.NewOSManager(),
		replacer: text.NewSimpleTextReplacer(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ApplyPatch applies def with a default Patcher
func ApplyPatch(ctx context.Context, def Definition) (*Result, error) {
	return New().Apply(ctx, def)
}

// 🎯 Apply reads def.Path fully, applies the rules in order and replaces the file.
// Nothing is written unless every step before the write succeeded.
func (p *Patcher) Apply(ctx context.Context, def Definition) (*Result, error) {
	logger := zerolog.Ctx(ctx).With().Str("path", def.Path).Logger()
	ctx = logger.WithContext(ctx)

	if err := def.Validate(); err != nil {
		return nil, err
	}

	info, err := p.files.Stat(ctx, def.Path)
	if err != nil {
		return nil, newFileError("stat", def.Path, classify(err), err)
	}
	if info.IsDir() {
		return nil, newFileError("read", def.Path, ErrIO, errors.New("is a directory"))
	}

	content, err := p.files.ReadFile(ctx, def.Path)
	if err != nil {
		return nil, newFileError("read", def.Path, classify(err), err)
	}
	if !utf8.Valid(content) {
		return nil, newFileError("decode", def.Path, ErrEncoding, nil)
	}

	logger.Debug().Int("bytes", len(content)).Int("rules", len(def.Rules)).Msg("applying patch")

	res, err := p.replacer.ReplaceText(ctx, def.Path, bytes.NewReader(content), def.Rules)
	if err != nil {
		return nil, newFileError("replace", def.Path, ErrInvalidDefinition, err)
	}

	for _, rr := range res.Rules {
		rule := def.Rules[rr.Index]
		if rr.Skipped || rr.Count > 0 {
			continue
		}
		if def.Strict || rule.Required {
			return nil, newFileError("replace", def.Path, ErrNoMatch, errors.Errorf("rule %d: needle %q not found", rr.Index, rule.FromText))
		}
		logger.Warn().Int("rule", rr.Index).Str("needle", rule.FromText).Msg("needle not found, rule is a no-op")
	}

	if err := p.files.WriteFileAtomic(ctx, def.Path, res.ModifiedContent, info.Mode().Perm()); err != nil {
		return nil, newFileError("write", def.Path, classify(err), err)
	}

	logger.Info().
		Int("replacements", res.ReplacementCount).
		Bool("modified", res.WasModified).
		Msg("patch applied")

	return &Result{
		Path:        def.Path,
		Replacement: res,
	}, nil
}
