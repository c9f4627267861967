package configure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mmlt/cadence-setup/pkg/profile"
	"github.com/mmlt/cadence-setup/pkg/util/yamlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xmppProfile(kv ...interface{}) *yamlx.Mapping {
	return yamlx.NewMapping("config", yamlx.NewMapping("xmpp", yamlx.NewMapping(kv...)))
}

func TestDefaults(t *testing.T) {
	tests := []struct {
		it      string
		profile *yamlx.Mapping
		want    Options
	}{
		{
			it:      "derives_nothing_from_an_empty_profile",
			profile: yamlx.NewMapping(),
			want:    Options{},
		},
		{
			it: "derives_secure_bosh",
			profile: xmppProfile("domain", "example.org", "url", "https://example.org:5281/http-bind",
				"muc", "conference.example.org", "sessionAuth", "/auth"),
			want: Options{Domain: "example.org", Secure: true, SessionAuth: "/auth"},
		},
		{
			it:      "derives_websocket",
			profile: xmppProfile("domain", "example.org", "url", "ws://example.org:5280/websocket"),
			want:    Options{Domain: "example.org", Websocket: true, MUC: ""},
		},
		{
			it: "keeps_custom_settings",
			profile: xmppProfile("domain", "example.org", "url", "wss://xmpp.example.org:443/ws",
				"muc", "rooms.example.org"),
			want: Options{Domain: "example.org", Websocket: true, Secure: true,
				Host: "xmpp.example.org", Port: "443", Path: "/ws", MUC: "rooms.example.org"},
		},
		{
			it:      "keeps_custom_protocol",
			profile: xmppProfile("domain", "example.org", "url", "tcp://example.org:5280/http-bind"),
			want:    Options{Domain: "example.org", Protocol: "tcp"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.it, func(t *testing.T) {
			assert.Equal(t, tt.want, Defaults(tt.profile))
		})
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		it      string
		options Options
		wantURL string
		wantMUC string
	}{
		{
			it:      "uses_bosh_by_default",
			options: Options{Domain: "example.org"},
			wantURL: "http://example.org:5280/http-bind",
			wantMUC: "conference.example.org",
		},
		{
			it:      "uses_secure_websocket",
			options: Options{Domain: "example.org", Secure: true, Websocket: true},
			wantURL: "wss://example.org:5281/websocket",
			wantMUC: "conference.example.org",
		},
		{
			it:      "uses_custom_parts",
			options: Options{Domain: "example.org", Protocol: "https", Host: "::1", Port: "8443", Path: "/bosh", MUC: "muc.example.org"},
			wantURL: "https://[::1]:8443/bosh",
			wantMUC: "muc.example.org",
		},
		{
			it:      "uses_url_as_is",
			options: Options{Domain: "example.org", URL: "https://bosh.example.org/"},
			wantURL: "https://bosh.example.org/",
			wantMUC: "conference.example.org",
		},
	}
	for _, tt := range tests {
		t.Run(tt.it, func(t *testing.T) {
			got, err := tt.options.Complete()
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, got.URL)
			assert.Equal(t, tt.wantMUC, got.MUC)
		})
	}
}

func TestCompleteRequiresDomain(t *testing.T) {
	_, err := Options{Secure: true}.Complete()
	assert.ErrorIs(t, err, ErrDomainRequired)
}

func TestDefaultsRoundTrip(t *testing.T) {
	p := xmppProfile("domain", "example.org", "url", "wss://example.org:5281/websocket",
		"muc", "conference.example.org", "sessionAuth", "")

	got, err := Generate(p, Defaults(p), profile.Available{})
	require.NoError(t, err)
	assert.Equal(t, "wss://example.org:5281/websocket", yamlx.String(got, "config", "xmpp", "url"))

	// a new domain moves the derived settings along.
	o := Defaults(p)
	o.Domain = "example.net"
	got, err = Generate(p, o, profile.Available{})
	require.NoError(t, err)
	assert.Equal(t, "wss://example.net:5281/websocket", yamlx.String(got, "config", "xmpp", "url"))
	assert.Equal(t, "conference.example.net", yamlx.String(got, "config", "xmpp", "muc"))
}

func TestGenerate(t *testing.T) {
	p := yamlx.NewMapping(
		"config", yamlx.NewMapping("ui", yamlx.NewMapping("title", "Chat")),
		"install", yamlx.NewMapping("target", "/var/www", "packs", yamlx.Sequence{}),
	)
	av := profile.Available{Packs: []string{"default"}, Styles: []string{"Cadence", "Dark"}, Languages: []string{"de", "en"}}

	got, err := Generate(p, Options{Domain: "example.org", SessionAuth: "/auth"}, av)
	require.NoError(t, err)

	want := yamlx.NewMapping(
		"config", yamlx.NewMapping(
			"ui", yamlx.NewMapping("title", "Chat"),
			"xmpp", yamlx.NewMapping(
				"domain", "example.org",
				"url", "http://example.org:5280/http-bind",
				"muc", "conference.example.org",
				"sessionAuth", "/auth",
			),
		),
		"install", yamlx.NewMapping(
			"target", "/var/www",
			"packs", yamlx.Sequence{yamlx.S("default")},
			"styles", yamlx.Sequence{yamlx.S("Cadence"), yamlx.S("Dark")},
			"languages", yamlx.Sequence{yamlx.S("de"), yamlx.S("en")},
		),
	)
	assert.Equal(t, want, got)

	// p is unchanged.
	_, ok := yamlx.Lookup(p, "config", "xmpp")
	assert.False(t, ok)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for p, text := range map[string]string{
		"emoticon-packs/default/emoticons.yml": "codes: {}\n",
		"emoticon-packs/legacy/emoticons.conf": "{}",
		"emoticon-packs/empty/README":          "",
		"emoticon-packs/stray.yml":             "",
		"assets/css/alt/Dark.css":              "",
		"assets/css/alt/Cadence.css":           "",
		"assets/css/alt/notes.txt":             "",
		"locales/en.yml":                       "",
		"locales/de.yml":                       "",
	} {
		fp := filepath.Join(root, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0700))
		require.NoError(t, os.WriteFile(fp, []byte(text), 0600))
	}

	got, err := Discover(root)
	require.NoError(t, err)
	assert.Equal(t, profile.Available{
		Packs:     []string{"default", "legacy"},
		Styles:    []string{"Cadence", "Dark"},
		Languages: []string{"de", "en"},
	}, got)
}

func TestDiscoverEmptyTree(t *testing.T) {
	got, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, profile.Available{Packs: []string{}, Styles: []string{}, Languages: []string{}}, got)
}
