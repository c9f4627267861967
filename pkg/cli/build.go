package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mmlt/cadence-setup/pkg/configure"
	"github.com/mmlt/cadence-setup/pkg/profile"
	"github.com/mmlt/cadence-setup/pkg/tool"
	"github.com/mmlt/cadence-setup/pkg/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// buildFlags are the flags of the commands that run the tool.
type buildFlags struct {
	profile string
	out     string
	version string
	dryRun  bool
}

func (bf *buildFlags) register(f *pflag.FlagSet, dryRun bool) {
	f.StringVar(&bf.profile, "profile", profile.DefaultPath, "Profile (yaml, json or toml)")
	f.StringVar(&bf.out, "out", "", "Directory for the generated files, default the source tree")
	f.StringVar(&bf.version, "version", "", "Client version, default from the profile, .version or git")
	if dryRun {
		f.BoolVar(&bf.dryRun, "dry-run", false, "Print the generated files instead of writing them")
	}
}

func (a *app) newTool(mode tool.Mode, bf *buildFlags) *tool.Tool {
	return &tool.Tool{
		Mode:        mode,
		DryRun:      bf.dryRun,
		Root:        a.root,
		ProfilePath: a.path(bf.profile),
		OutDir:      bf.out,
		Version:     bf.version,
		Log:         a.log,
	}
}

func newBuildCommand(a *app, name string) *cobra.Command {
	var bf buildFlags

	mode, _ := tool.ModeFromString(name)
	short := "Generate index.html, config.js and emoticons.js"
	if mode == tool.ModeInstall {
		short += " and copy them with the assets to the install targets"
	}

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.newTool(mode, &bf).Run(cmd.Context(), a.stdout)
		},
	}
	bf.register(cmd.Flags(), true)

	return cmd
}

func newWatchCommand(a *app) *cobra.Command {
	var bf buildFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build and rebuild on changes to the profile, templates, locales or emoticon packs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			tl := a.newTool(tool.ModeGenerate, &bf)
			build := func(ctx context.Context) error {
				return tl.Run(ctx, a.stdout)
			}

			err := build(ctx)
			if err != nil {
				a.log.Error(err, "Build")
			}

			w := &watch.Watcher{
				Paths: existing(
					tl.ProfilePath,
					filepath.Join(a.root, tool.DefaultConfigPath),
					filepath.Join(a.root, tool.IndexTemplate),
					filepath.Join(a.root, tool.ConfigTemplate),
					filepath.Join(a.root, configure.LocalesDir),
					filepath.Join(a.root, configure.PacksDir),
				),
				Build: build,
				Log:   a.log,
			}
			return w.Run(ctx)
		},
	}
	bf.register(cmd.Flags(), false)

	return cmd
}

// Existing returns the paths that exist.
func existing(paths ...string) []string {
	var r []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			r = append(r, p)
		}
	}
	return r
}
