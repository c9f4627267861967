// Package cli implements the cadence-setup commands.
package cli

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"
)

// Usage text argument: %[1]=program name.
const usage = `%[1]s configures, builds and installs the cadence XMPP web client.

A profile (install.yml) holds a 'config' section that overrides the client default configuration
(config/default.yml) and an 'install' section that selects emoticon packs, styles, language and
install targets. Settings in the profile that the default configuration doesn't have are ignored.

Templates (index.tpl.html, config.tpl.js) contain @@@NAME@@@ placeholders, a value can be piped
through functions from 'https://golang.org/pkg/text/template/' and 'http://masterminds.github.io/sprig/'
for example @@@TITLE | upper@@@.
`

// app holds the global options of all commands.
type app struct {
	// Root is the cadence source tree.
	root string
	// Verbosity of the log.
	verbosity int

	version        string
	stdout, stderr io.Writer
	log            logr.Logger
}

// NewRootCommand returns the cadence-setup command with its sub commands.
func NewRootCommand(version string, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		version: version,
		stdout:  stdout,
		stderr:  stderr,
		log:     logr.Discard(),
	}

	cmd := &cobra.Command{
		Use:     "cadence-setup",
		Short:   "Configure, build and install the cadence web client",
		Long:    fmt.Sprintf(usage, "cadence-setup"),
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.verbosity < 0 || a.verbosity > 5 {
				return fmt.Errorf("-v should be in the range 0..5")
			}
			stdr.SetVerbosity(a.verbosity)
			a.log = stdr.New(stdlog.New(a.stderr, "I ", stdlog.Ltime))
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.PersistentFlags()
	f.StringVar(&a.root, "root", ".", "Directory with the cadence source tree")
	f.IntVarP(&a.verbosity, "verbosity", "v", 0, "Log verbosity, higher numbers produce more output")

	cmd.AddCommand(
		newConfigureCommand(a),
		newBuildCommand(a, "build"),
		newBuildCommand(a, "install"),
		newWatchCommand(a),
		newMergeCommand(a),
		newVersionCommand(a),
	)

	return cmd
}

// Run executes the command line args and returns the process exit code.
func Run(ctx context.Context, version string, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(version, stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "E", err)
		return 1
	}
	return 0
}

// Path returns p relative to the source tree unless p is absolute.
func (a *app) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.root, p)
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of cadence-setup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(a.stdout, a.version)
			return err
		},
	}
}
