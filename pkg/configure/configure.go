// Package configure creates or updates an install profile from command line options.
package configure

import (
	"errors"
	"net"
	"net/url"
	"strconv"

	"github.com/mmlt/cadence-setup/pkg/profile"
	"github.com/mmlt/cadence-setup/pkg/util/yamlx"
)

// ErrDomainRequired is returned when neither the options nor the profile specify a domain.
var ErrDomainRequired = errors.New("domain is required")

// Default connection settings; a URL that uses them is reproduced from Domain, Secure and Websocket alone.
const (
	PortBOSH      = 5280
	PathBOSH      = "/http-bind"
	PathWebsocket = "/websocket"
	MUCPrefix     = "conference."
)

// Options are the connection settings of a profile.
// Empty fields are derived from the other fields.
type Options struct {
	// Secure selects https/wss and the secure port.
	Secure bool
	// Websocket selects websocket instead of BOSH.
	Websocket bool
	// Domain is the XMPP domain to log in on.
	Domain string
	// Protocol defaults to (ws|http)s?
	Protocol string
	// Host defaults to Domain.
	Host string
	// Port defaults to 5280 or 5281 when Secure.
	Port string
	// Path defaults to /http-bind or /websocket.
	Path string
	// URL is the socket URL, it defaults to PROTOCOL://HOST:PORT/PATH.
	URL string
	// SessionAuth is the URL used for session authentication.
	SessionAuth string
	// MUC is the conference server, it defaults to conference.DOMAIN.
	MUC string
}

// Defaults returns the Options that reproduce the connection settings of profile p.
// Settings that can be derived are left empty so a changed Domain or Secure flag takes effect.
func Defaults(p *yamlx.Mapping) Options {
	domain := yamlx.String(p, "config", "xmpp", "domain")
	u, err := url.Parse(yamlx.String(p, "config", "xmpp", "url"))
	if err != nil {
		u = &url.URL{}
	}

	o := Options{
		Domain:      domain,
		Websocket:   u.Scheme == "ws" || u.Scheme == "wss",
		Secure:      u.Scheme == "wss" || u.Scheme == "https",
		SessionAuth: yamlx.String(p, "config", "xmpp", "sessionAuth"),
	}

	switch u.Scheme {
	case "ws", "wss", "http", "https":
	default:
		o.Protocol = u.Scheme
	}
	if port := u.Port(); port != strconv.Itoa(PortBOSH) && port != strconv.Itoa(PortBOSH+1) {
		o.Port = port
	}
	if u.Path != PathBOSH && u.Path != PathWebsocket {
		o.Path = u.Path
	}
	if h := u.Hostname(); h != domain {
		o.Host = h
	}
	if muc := yamlx.String(p, "config", "xmpp", "muc"); domain != "" && muc != MUCPrefix+domain {
		o.MUC = muc
	}

	return o
}

// Complete returns o with all derived fields filled in.
func (o Options) Complete() (Options, error) {
	if o.Domain == "" {
		return o, ErrDomainRequired
	}

	if o.Protocol == "" {
		o.Protocol = "http"
		if o.Websocket {
			o.Protocol = "ws"
		}
		if o.Secure {
			o.Protocol += "s"
		}
	}
	if o.Host == "" {
		o.Host = o.Domain
	}
	if o.Path == "" {
		o.Path = PathBOSH
		if o.Websocket {
			o.Path = PathWebsocket
		}
	}
	if o.Port == "" {
		port := PortBOSH
		if o.Secure {
			port++
		}
		o.Port = strconv.Itoa(port)
	}
	if o.URL == "" {
		o.URL = o.Protocol + "://" + net.JoinHostPort(o.Host, o.Port) + o.Path
	}
	if o.MUC == "" {
		o.MUC = MUCPrefix + o.Domain
	}

	return o, nil
}

// Generate returns a copy of profile p updated with the connection settings of o
// and the packs, styles and languages of av.
func Generate(p *yamlx.Mapping, o Options, av profile.Available) (*yamlx.Mapping, error) {
	o, err := o.Complete()
	if err != nil {
		return nil, err
	}

	r := p.Clone()
	yamlx.SetPath(r, yamlx.S(o.Domain), "config", "xmpp", "domain")
	yamlx.SetPath(r, yamlx.S(o.URL), "config", "xmpp", "url")
	yamlx.SetPath(r, yamlx.S(o.MUC), "config", "xmpp", "muc")
	yamlx.SetPath(r, yamlx.S(o.SessionAuth), "config", "xmpp", "sessionAuth")

	yamlx.SetPath(r, yamlx.FromInterface(av.Packs), "install", "packs")
	yamlx.SetPath(r, yamlx.FromInterface(av.Styles), "install", "styles")
	yamlx.SetPath(r, yamlx.FromInterface(av.Languages), "install", "languages")

	return r, nil
}
