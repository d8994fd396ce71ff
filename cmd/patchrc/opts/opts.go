package opts

import (
	"context"
	"io"

	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string // patch definition file, empty for the built-in header patch
	Path       string // overrides the target path of the definition
	Strict     bool
	Debug      bool
	Quiet      bool

	Stdout io.Writer
	Stderr io.Writer
}

// 🎯 Definition resolves the patch to apply from the flags
func (o *RootOpts) Definition(ctx context.Context) (patch.Definition, error) {
	def := patch.HeaderProgramToggle()

	if o.ConfigFile != "" {
		cfg, err := config.Load(ctx, o.ConfigFile)
		if err != nil {
			return patch.Definition{}, errors.Errorf("loading patch definition: %w", err)
		}
		def = cfg.Definition()
	}

	if o.Path != "" {
		def.Path = o.Path
	}
	if o.Strict {
		def.Strict = true
	}

	return def, nil
}
