package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mmlt/cadence-setup/pkg/profile"
	"github.com/mmlt/cadence-setup/pkg/util/yamlx"
	"github.com/spf13/cobra"
)

func newMergeCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "merge BASE OVERRIDE...",
		Short: "Print BASE with the settings of each OVERRIDE that BASE knows about",
		Long: `Merge reads yaml, json or toml files and prints the first file with the values of the other files.
Keys that are not in BASE are ignored, a sequence only replaces a sequence and a mapping is only merged with a mapping.
Run with -v 1 to log ignored settings.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := profile.Load(args[0])
			if err != nil {
				return err
			}
			for _, n := range args[1:] {
				override, err := profile.Load(n)
				if err != nil {
					return err
				}
				yamlx.MergeInto(base, override, func(path []string, b, o yamlx.Value) {
					reason := "unknown key"
					if b != nil {
						reason = fmt.Sprintf("%v can't replace %v", yamlx.KindOf(o), yamlx.KindOf(b))
					}
					a.log.V(1).Info("Ignore", "file", n, "setting", strings.Join(path, "."), "reason", reason)
				})
			}

			var out []byte
			if asJSON {
				out, err = json.MarshalIndent(base, "", "  ")
				out = append(out, '\n')
			} else {
				out, err = yamlx.Encode(base)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.stdout, string(out))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print json instead of yaml")

	return cmd
}
