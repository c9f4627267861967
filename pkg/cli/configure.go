package cli

import (
	"github.com/mmlt/cadence-setup/pkg/configure"
	"github.com/mmlt/cadence-setup/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag aliases.
var aliases = map[string]string{
	"https": "secure",
	"bosh":  "url",
}

func normalize(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if n, ok := aliases[name]; ok {
		name = n
	}
	return pflag.NormalizedName(name)
}

func newConfigureCommand(a *app) *cobra.Command {
	var (
		o           configure.Options
		profilePath string
	)

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Create or update the profile",
		Long: `Configure writes the XMPP connection settings and the available emoticon packs, styles and
languages to the profile.
It starts from the existing profile or, when that doesn't exist, from install.dist.yml.
Settings that are not given as flags are taken from that profile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.path(profilePath)
			p, loaded, err := profile.LoadOrDist(path, a.root)
			if err != nil {
				return err
			}

			// flags that are not set default to the loaded profile.
			d := configure.Defaults(p)
			f := cmd.Flags()
			for _, x := range []struct {
				name string
				val  *string
				def  string
			}{
				{"domain", &o.Domain, d.Domain},
				{"protocol", &o.Protocol, d.Protocol},
				{"host", &o.Host, d.Host},
				{"port", &o.Port, d.Port},
				{"path", &o.Path, d.Path},
				{"url", &o.URL, d.URL},
				{"session-auth", &o.SessionAuth, d.SessionAuth},
				{"muc", &o.MUC, d.MUC},
			} {
				if !f.Changed(x.name) {
					*x.val = x.def
				}
			}
			if !f.Changed("secure") {
				o.Secure = d.Secure
			}
			if !f.Changed("websocket") {
				o.Websocket = d.Websocket
			}

			av, err := configure.Discover(a.root)
			if err != nil {
				return err
			}

			r, err := configure.Generate(p, o, av)
			if err != nil {
				return err
			}

			err = profile.Save(path, r)
			if err != nil {
				return err
			}
			a.log.Info("Write", "profile", path, "from", loaded)
			return nil
		},
	}

	f := cmd.Flags()
	f.SetNormalizeFunc(normalize)
	f.StringVar(&o.Domain, "domain", "", "XMPP domain to log in on")
	f.BoolVarP(&o.Secure, "secure", "s", false, "Use https or wss (alias --https)")
	f.BoolVarP(&o.Websocket, "websocket", "w", false, "Use websocket instead of BOSH")
	f.StringVar(&o.Protocol, "protocol", "", "Socket protocol, default (http|ws)s?")
	f.StringVar(&o.Host, "host", "", "Socket host, default the domain")
	f.StringVar(&o.Port, "port", "", "Socket port, default 5280 or 5281 when secure")
	f.StringVar(&o.Path, "path", "", "Socket path, default /http-bind or /websocket")
	f.StringVar(&o.URL, "url", "", "Socket URL, default PROTOCOL://HOST:PORT/PATH (alias --bosh)")
	f.StringVar(&o.SessionAuth, "session-auth", "", "Session authentication URL")
	f.StringVar(&o.MUC, "muc", "", "Conference server, default conference.DOMAIN")
	f.StringVar(&profilePath, "profile", profile.DefaultPath, "Profile to write")

	return cmd
}
