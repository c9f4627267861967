// Package tool builds the static files of the cadence client from an install profile.
package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/renameio/v2"
	"github.com/mmlt/cadence-setup/pkg/configure"
	"github.com/mmlt/cadence-setup/pkg/emoticons"
	"github.com/mmlt/cadence-setup/pkg/expand"
	"github.com/mmlt/cadence-setup/pkg/profile"
	"github.com/mmlt/cadence-setup/pkg/stage"
	"github.com/mmlt/cadence-setup/pkg/util/yamlx"
)

// Source tree files.
const (
	// DefaultConfigPath is the default client configuration that a profile overrides.
	DefaultConfigPath = "config/default.yml"
	// IndexTemplate renders to IndexFile.
	IndexTemplate = "index.tpl.html"
	// ConfigTemplate renders to ConfigFile when present.
	ConfigTemplate = "config.tpl.js"
)

// Generated files.
const (
	IndexFile     = "index.html"
	ConfigFile    = "config.js"
	EmoticonsFile = "emoticons.js"
)

// Assets are the source tree directories that are served from the CDN.
var Assets = []string{"assets", "lib"}

// Tool is responsible for reading a profile and the client default config,
// merging them and rendering the index, config and emoticons files.
// In ModeInstall the generated files and assets are copied to the profile targets.
type Tool struct {
	// Mode selects what the Tool should do.
	Mode Mode
	// DryRun writes the generated files to out instead of the file system.
	DryRun bool
	// Root is the cadence source tree with templates, config, locales, emoticon packs and assets.
	Root string
	// ProfilePath refers to a yaml, json or toml install profile.
	ProfilePath string
	// OutDir is where generated files are written, it defaults to Root.
	OutDir string
	// Version overrides the client version.
	Version string

	Log logr.Logger
}

// Mode selects what the Tool should do; see Mode* constants for more.
type Mode int

const (
	// ModeUnknown means no Mode has been specified.
	ModeUnknown Mode = iota
	// ModeGenerate generates files.
	ModeGenerate
	// ModeInstall generates files and copies them with the assets to the install targets.
	ModeInstall
)

// ModeFromString return tool mode based on arg.
func ModeFromString(arg string) (Mode, error) {
	switch arg {
	case "generate", "build":
		return ModeGenerate, nil
	case "install":
		return ModeInstall, nil
	}
	return ModeUnknown, fmt.Errorf("expected mode to be one of [build,install] instead of: %s", arg)
}

// Run runs the Tool.
// Out receives a report of the generated files or, in DryRun, the files themselves.
func (t *Tool) Run(ctx context.Context, out io.Writer) error {
	if t.Mode == ModeUnknown {
		return errors.New("tool: mode not set")
	}

	p, err := profile.Load(t.ProfilePath)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	in, err := profile.DecodeInstall(p)
	if err != nil {
		return fmt.Errorf("profile %s: %w", t.ProfilePath, err)
	}
	av, err := configure.Discover(t.Root)
	if err != nil {
		return err
	}
	err = in.Validate(av)
	if err != nil {
		return fmt.Errorf("profile %s: %w", t.ProfilePath, err)
	}

	arts, err := t.generate(ctx, p, in)
	if err != nil {
		return err
	}

	if t.DryRun {
		arts.fprint(out)
		return nil
	}

	err = t.write(arts)
	if err != nil {
		return err
	}
	err = arts.report(out)
	if err != nil {
		return err
	}

	if t.Mode != ModeInstall {
		return nil
	}

	files := make([]string, 0, len(arts.items))
	for _, a := range arts.items {
		files = append(files, filepath.Join(t.outDir(), a.name))
	}
	assets := make([]string, 0, len(Assets))
	for _, a := range Assets {
		assets = append(assets, filepath.Join(t.Root, a))
	}
	return stage.Install(t.Log, in.Target, in.CDN.Target, files, assets)
}

// Generate renders all files.
func (t *Tool) generate(ctx context.Context, p *yamlx.Mapping, in *profile.Install) (*artifacts, error) {
	config, err := t.config(p)
	if err != nil {
		return nil, err
	}
	config.Set("cdnUrl", yamlx.S(in.CDN.URL))

	strs, err := t.locale(in.Language)
	if err != nil {
		return nil, err
	}

	emo, err := emoticons.Load(filepath.Join(t.Root, configure.PacksDir), in.CDN.URL, in.Packs)
	if err != nil {
		return nil, err
	}

	vars, err := variables(config, strs, emo, in)
	if err != nil {
		return nil, err
	}
	vars["VERSION"] = t.version(ctx, in)

	arts := &artifacts{}

	// index.html
	b, err := t.render(IndexTemplate, vars)
	if err != nil {
		return nil, err
	}
	arts.Add(&artifact{name: IndexFile, origin: IndexTemplate, content: b})

	// config.js
	b, err = t.render(ConfigTemplate, vars)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		arts.Add(&artifact{name: ConfigFile, content: []byte("var config = " + vars["CONFIG"] + ";\n")})
	case err != nil:
		return nil, err
	default:
		arts.Add(&artifact{name: ConfigFile, origin: ConfigTemplate, content: b})
	}

	// emoticons.js
	b, err = emo.Script()
	if err != nil {
		return nil, fmt.Errorf("emoticons: %w", err)
	}
	arts.Add(&artifact{name: EmoticonsFile, content: b})

	return arts, nil
}

// Config returns the client default config merged with the 'config' section of the profile.
func (t *Tool) config(p *yamlx.Mapping) (*yamlx.Mapping, error) {
	def, err := profile.Load(filepath.Join(t.Root, DefaultConfigPath))
	if err != nil {
		return nil, fmt.Errorf("default config: %w", err)
	}

	override, ok := p.Get("config")
	if !ok {
		return def, nil
	}

	// def is freshly loaded so it can be merged into.
	yamlx.MergeInto(def, override, func(path []string, base, override yamlx.Value) {
		reason := "unknown key"
		if base != nil {
			reason = fmt.Sprintf("%v can't replace %v", yamlx.KindOf(override), yamlx.KindOf(base))
		}
		t.Log.V(1).Info("Ignore", "setting", "config."+strings.Join(path, "."), "reason", reason)
	})

	return def, nil
}

// Locale returns the UI strings of language, falling back to its base language.
func (t *Tool) locale(language string) (*yamlx.Mapping, error) {
	dir := filepath.Join(t.Root, configure.LocalesDir)
	m, err := profile.Load(filepath.Join(dir, language+".yml"))
	if errors.Is(err, fs.ErrNotExist) {
		if base := profile.BaseLanguage(language); base != "" && base != language {
			t.Log.V(1).Info("Fallback", "language", language, "base", base)
			m, err = profile.Load(filepath.Join(dir, base+".yml"))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("locale %s: %w", language, err)
	}
	return m, nil
}

// Render reads template name from Root and expands it with vars.
func (t *Tool) render(name string, vars map[string]string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(t.Root, name))
	if err != nil {
		return nil, err
	}
	r, err := expand.Run(name, b, vars)
	if err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}
	return r, nil
}

// Write writes the artifacts to OutDir, each file is replaced atomically.
func (t *Tool) write(arts *artifacts) error {
	dir := t.outDir()
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}
	for _, a := range arts.items {
		p := filepath.Join(dir, a.name)
		err := renameio.WriteFile(p, a.content, 0644)
		if err != nil {
			return fmt.Errorf("write %s: %w", p, err)
		}
		t.Log.Info("Write", "file", p, "bytes", len(a.content))
	}
	return nil
}

func (t *Tool) outDir() string {
	if t.OutDir != "" {
		return t.OutDir
	}
	return t.Root
}

// Variables returns the template placeholder values.
func variables(config, strs *yamlx.Mapping, emo *emoticons.Set, in *profile.Install) (map[string]string, error) {
	cb, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	sb, err := json.Marshal(strs)
	if err != nil {
		return nil, fmt.Errorf("strings: %w", err)
	}
	eb, err := json.Marshal(emo)
	if err != nil {
		return nil, fmt.Errorf("emoticons: %w", err)
	}

	style := yamlx.String(config, "settings", "activeStyle")
	l := generateLinks(in.CDN.URL, in.Styles, style)

	return map[string]string{
		"TITLE":             yamlx.String(config, "ui", "title"),
		"STYLE":             style,
		"CDN_URL":           in.CDN.URL,
		"CONFIG":            string(cb),
		"STRINGS":           string(sb),
		"EMOTICONS":         string(eb),
		"CSS_LINKS":         l.css,
		"CSS_OPTIONS":       styleOptions(in.Styles),
		"JS_LINKS":          l.modules + "\n" + l.core,
		"JS_LINKS_LIB":      l.modules,
		"JS_LINKS_CORE":     l.core,
		"XMPP_DOMAIN":       yamlx.String(config, "xmpp", "domain"),
		"XMPP_URL":          yamlx.String(config, "xmpp", "url"),
		"XMPP_MUC":          yamlx.String(config, "xmpp", "muc"),
		"XMPP_SESSION_AUTH": yamlx.String(config, "xmpp", "sessionAuth"),
		"CHATBOT":           yamlx.String(config, "ui", "chatBotName"),
	}, nil
}
