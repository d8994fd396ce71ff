package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewValidateCmd creates a new validate command
func NewValidateCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [definition]",
		Short: "Check a patch definition without touching its target",
		Long: `Validate loads a patch definition file and checks its rules.
The target file is never read or written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ui := log.FromContext(ctx)

			if len(args) == 1 {
				opts.ConfigFile = args[0]
			}

			if opts.ConfigFile != "" {
				cfg, err := config.Load(ctx, opts.ConfigFile)
				if err != nil {
					return errors.Errorf("loading patch definition: %w", err)
				}
				if err := cfg.Definition().Validate(); err != nil {
					return err
				}
				ui.Successf("%s (loaded from %s)", cfg, cfg.Location())
				return nil
			}

			def, err := opts.Definition(ctx)
			if err != nil {
				return err
			}
			if err := def.Validate(); err != nil {
				return err
			}

			ui.Successf("%s: %d rules for %s", def.Name, len(def.Rules), def.Path)
			return nil
		},
	}

	return cmd
}
