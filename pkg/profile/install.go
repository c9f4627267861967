package profile

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/mmlt/cadence-setup/pkg/util/stringset"
	"github.com/mmlt/cadence-setup/pkg/util/yamlx"
	"golang.org/x/text/language"
)

// Install is the 'install' section of a profile.
type Install struct {
	// Target is the directory that receives index.html, config.js and emoticons.js.
	Target string `yaml:"target"`
	CDN    CDN    `yaml:"cdn"`
	// Packs are the enabled emoticon packs.
	Packs []string `yaml:"packs"`
	// Styles are the alternate CSS themes.
	Styles []string `yaml:"styles"`
	// Languages are the available locales.
	Languages []string `yaml:"languages"`
	// Language is the locale of the UI strings.
	Language string `yaml:"language"`
	// Version overrides the client version.
	Version string `yaml:"version"`
}

// CDN is where static assets are served from.
type CDN struct {
	// URL is prefixed to asset links, empty means relative to index.html.
	URL string `yaml:"url"`
	// Target is the directory that receives assets and lib, it defaults to Install.Target.
	Target string `yaml:"target"`
}

// XMPP is the 'config.xmpp' section of a profile.
type XMPP struct {
	Domain      string `yaml:"domain"`
	URL         string `yaml:"url"`
	MUC         string `yaml:"muc"`
	SessionAuth string `yaml:"sessionAuth"`
}

// Available lists what a source tree provides.
type Available struct {
	Packs     []string
	Styles    []string
	Languages []string
}

// DecodeInstall returns the 'install' section of profile p.
func DecodeInstall(p *yamlx.Mapping) (*Install, error) {
	r := &Install{}
	err := decode(p, r, "install")
	if err != nil {
		return nil, err
	}
	if r.Language == "" {
		r.Language = "en"
	}
	return r, nil
}

// DecodeXMPP returns the 'config.xmpp' section of profile p.
func DecodeXMPP(p *yamlx.Mapping) (*XMPP, error) {
	r := &XMPP{}
	err := decode(p, r, "config", "xmpp")
	return r, err
}

// Decode the dynamic yaml at path into result.
// A missing path leaves result unchanged.
func decode(p *yamlx.Mapping, result interface{}, path ...string) error {
	v, ok := yamlx.Lookup(p, path...)
	if !ok || yamlx.KindOf(v) == yamlx.NullKind {
		return nil
	}

	cfg := &mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		Result:           result,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	err = dec.Decode(yamlx.ToInterface(v))
	if err != nil {
		return fmt.Errorf("%s: %w", strings.Join(path, "."), err)
	}
	return nil
}

// Validate checks the install settings against what is available.
// All problems are returned as a *multierror.Error.
// An empty av field disables the check for that field.
func (in *Install) Validate(av Available) error {
	var result *multierror.Error

	if _, err := language.Parse(in.Language); err != nil {
		result = multierror.Append(result, fmt.Errorf("install.language %q: %w", in.Language, err))
	}

	if in.CDN.URL != "" && !strings.HasSuffix(in.CDN.URL, "/") {
		result = multierror.Append(result, fmt.Errorf("install.cdn.url %q should end with '/'", in.CDN.URL))
	}

	result = multierror.Append(result, missing("install.packs", in.Packs, av.Packs)...)
	result = multierror.Append(result, missing("install.styles", in.Styles, av.Styles)...)

	return result.ErrorOrNil()
}

// Missing returns an error for each selected item that isn't available.
func missing(field string, selected, available []string) []error {
	if len(available) == 0 {
		return nil
	}
	var r []error
	for _, s := range stringset.New(selected...).Difference(stringset.New(available...)).Sorted() {
		r = append(r, fmt.Errorf("%s: %q is not available", field, s))
	}
	return r
}

// BaseLanguage returns the base language of tag, for example "de" for "de-AT".
// It returns "" when tag can't be parsed or has no base language.
func BaseLanguage(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return ""
	}
	b, conf := t.Base()
	if conf == language.No {
		return ""
	}
	return b.String()
}
