package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/commands"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"
)

// newRootCmd builds the command tree around a fresh set of options
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "patchrc",
		Short: "Apply literal find-and-replace patches to a source file",
		Long: `patchrc rewrites one file by applying an ordered list of literal
replacements. With no flags it removes the program toggle from
apps/web/src/layout/Header.tsx.`,
		Args:          cobra.NoArgs,
		Version:       GetVersionInfo().Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zlog := setupLogging(o.Stderr, o.Debug)

			console := o.Stdout
			if o.Quiet {
				console = io.Discard
			}

			ctx := zlog.WithContext(cmd.Context())
			ctx = log.NewContext(ctx, log.New(console, zlog))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Apply(cmd.Context(), o)
		},
	}

	rootCmd.SetOut(o.Stdout)
	rootCmd.SetErr(o.Stderr)
	rootCmd.SetVersionTemplate(FormatVersion())

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewApplyCmd(o),
		commands.NewValidateCmd(o),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "patch definition file (yaml, json, hcl or toml); built-in header patch when empty")
	cmd.PersistentFlags().StringVarP(&o.Path, "path", "p", "", "override the target file path")
	cmd.PersistentFlags().BoolVar(&o.Strict, "strict", false, "fail when any rule matches nothing")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&o.Quiet, "quiet", "q", false, "only report errors")
}

// setupLogging builds the structured logger: pretty on a terminal, JSON lines otherwise
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	out := w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
