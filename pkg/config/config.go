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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Rule is one literal replacement in a patch file
type Rule struct {
	Needle      string  `json:"needle" yaml:"needle" toml:"needle"`
	Replacement string  `json:"replacement" yaml:"replacement" toml:"replacement"`
	File        *string `json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty"` // optional glob the target path must match
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
}

// 📚 Config is a patch definition loaded from disk
type Config struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Path   string `json:"path" yaml:"path" toml:"path"`
	Strict bool   `json:"strict,omitempty" yaml:"strict,omitempty" toml:"strict,omitempty"`
	Rules  []Rule `json:"rules" yaml:"rules" toml:"rules"`

	location string
}

// 🎯 Load loads a patch definition from a file.
// A relative path inside the file is resolved against the file's directory.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("config", path).Msg("loading patch definition")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	cfg.location = path
	if !filepath.IsAbs(cfg.Path) {
		cfg.Path = filepath.Join(filepath.Dir(path), cfg.Path)
	}

	logger.Debug().Str("target", cfg.Path).Int("rules", len(cfg.Rules)).Msg("patch definition loaded")
	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Path == "" {
		return errors.Errorf("path is required")
	}
	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}
	for i, r := range cfg.Rules {
		if r.Needle == "" {
			return errors.Errorf("rules[%d].needle is required", i)
		}
		if r.File != nil && !doublestar.ValidatePattern(*r.File) {
			return errors.Errorf("rules[%d].file is not a valid glob: %q", i, *r.File)
		}
	}

	cfg.Path = filepath.Clean(cfg.Path)
	return nil
}

// Location is the file the config was loaded from, empty if it was built in memory
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔧 Definition converts the config into the patch it describes
func (cfg *Config) Definition() patch.Definition {
	def := patch.Definition{
		Name:   cfg.Name,
		Path:   cfg.Path,
		Strict: cfg.Strict,
		Rules:  make([]text.ReplacementRule, 0, len(cfg.Rules)),
	}
	if def.Name == "" && cfg.location != "" {
		def.Name = filepath.Base(cfg.location)
	}
	for _, r := range cfg.Rules {
		rule := text.ReplacementRule{
			FromText: r.Needle,
			ToText:   r.Replacement,
			Required: r.Required,
		}
		if r.File != nil {
			rule.FileFilterGlob = *r.File
		}
		def.Rules = append(def.Rules, rule)
	}
	return def
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	mode := ""
	if cfg.Strict {
		mode = " (strict)"
	}
	return fmt.Sprintf("%s: %d rules%s", cfg.Path, len(cfg.Rules), mode)
}
