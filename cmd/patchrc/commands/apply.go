package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the patch to its target file",
		Long: `Apply reads the target file, runs every replacement rule in order
and writes the result back over the same path.
It will:
1. Resolve the patch definition (built-in header patch or --config)
2. Read the whole target file
3. Replace every literal occurrence of each needle, rule by rule
4. Atomically replace the target with the new content`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Apply(cmd.Context(), opts)
		},
	}

	return cmd
}

// Apply runs the patch described by opts
func Apply(ctx context.Context, opts *opts.RootOpts) error {
	ui := log.FromContext(ctx)

	def, err := opts.Definition(ctx)
	if err != nil {
		return err
	}

	ui.Header("applying " + def.Name)
	ui.StartPatchOperation(ctx, log.PatchOperation{
		Name:  def.Name,
		Path:  def.Path,
		Rules: len(def.Rules),
	})
	defer ui.EndPatchOperation(ctx)

	res, err := patch.New().Apply(ctx, def)
	if err != nil {
		return errors.Errorf("applying %s: %w", def.Name, err)
	}

	for _, rr := range res.Replacement.Rules {
		ui.LogRuleOperation(ctx, log.RuleOperation{
			Index:   rr.Index,
			Needle:  rr.FromText,
			Count:   rr.Count,
			Skipped: rr.Skipped,
		})
	}
	for _, rr := range res.Replacement.Rules {
		if rr.Count == 0 && !rr.Skipped {
			ui.Warningf("rule %d: needle %q not found", rr.Index, rr.FromText)
		}
	}

	if !opts.Quiet {
		table, err := report.Table(res)
		if err != nil {
			return err
		}
		fmt.Fprintln(opts.Stdout)
		fmt.Fprintln(opts.Stdout, table)
	}

	ui.Success(report.Summary(res))
	return nil
}
