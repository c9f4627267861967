// Package profile loads and saves install profiles and other configuration files.
//
// A profile has a 'config' section that overrides the client default configuration
// and an 'install' section that drives the build and install steps.
//
//	config:
//	  xmpp:
//	    domain: example.org
//	    url: https://example.org:5281/http-bind
//	install:
//	  target: /var/www/chat
//	  cdn:
//	    url: ''
//	    target: ''
//	  packs: [default]
//	  styles: [Cadence]
//	  language: en
package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio/v2"
	"github.com/mmlt/cadence-setup/pkg/util/yamlx"
)

const (
	// DefaultPath is the profile used when none is specified.
	DefaultPath = "install.yml"
	// DistPath is the profile template that a new profile starts from.
	DistPath = "install.dist.yml"
)

// ParseError reports a file with malformed content.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads a YAML, JSON or TOML file (depending on the path extension) and returns its root mapping.
// An empty file returns an empty mapping.
// A missing file returns an error that matches fs.ErrNotExist, malformed content a *ParseError.
func Load(path string) (*yamlx.Mapping, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	v, err := decodeFile(path, b)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	switch m := v.(type) {
	case *yamlx.Mapping:
		return m, nil
	case yamlx.Null:
		return yamlx.NewMapping(), nil
	}
	return nil, &ParseError{Path: path, Err: fmt.Errorf("expected a mapping at the root, got %v", yamlx.KindOf(v))}
}

// decodeFile decodes text according to the path extension.
func decodeFile(path string, b []byte) (yamlx.Value, error) {
	if isTOML(path) {
		m := map[string]interface{}{}
		_, err := toml.Decode(string(b), &m)
		if err != nil {
			return nil, err
		}
		return yamlx.FromInterface(m), nil
	}

	if yamlx.IsEmpty(b) {
		return yamlx.Null{}, nil
	}
	return yamlx.Decode(b)
}

// Save writes m to path in the format selected by the path extension.
// The file is replaced atomically.
func Save(path string, m *yamlx.Mapping) error {
	var b []byte
	var err error
	switch {
	case isTOML(path):
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(yamlx.ToInterface(m))
		b = buf.Bytes()
	case strings.EqualFold(filepath.Ext(path), ".json"):
		b, err = m.MarshalJSON()
		if err == nil {
			b, err = indentJSON(b)
		}
	default:
		b, err = yamlx.Encode(m)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	err = renameio.WriteFile(path, b, 0644)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadOrDist loads the profile at path or, when it doesn't exist, the DistPath profile in dir.
// The second return value is the path that has been loaded.
func LoadOrDist(path, dir string) (*yamlx.Mapping, string, error) {
	m, err := Load(path)
	if err == nil {
		return m, path, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, path, err
	}

	dist := filepath.Join(dir, DistPath)
	m, err = Load(dist)
	if err != nil {
		return nil, dist, err
	}
	return m, dist, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func indentJSON(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := json.Indent(&buf, b, "", "  ")
	if err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
