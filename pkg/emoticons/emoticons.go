// Package emoticons reads emoticon packs and produces the emoticons data of the client.
//
// A pack is a directory with an emoticons.yml file:
//
//	title: Default
//	icon: smile.png
//	codes:
//	  ':)': smile.png
//	aliases:
//	  ':-)': smile.png
package emoticons

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mmlt/cadence-setup/pkg/util/yamlx"
)

const (
	// DataFile is the pack definition file.
	DataFile = "emoticons.yml"
	// LegacyDataFile is the JSON pack definition file of older packs.
	LegacyDataFile = "emoticons.conf"
	// ImagePath is where the pack images are served, relative to the CDN URL.
	ImagePath = "assets/emoticons"
)

// PackError reports a pack that can't be read.
type PackError struct {
	Pack string
	Err  error
}

func (e *PackError) Error() string {
	return fmt.Sprintf("emoticon pack %s: %v", e.Pack, e.Err)
}

func (e *PackError) Unwrap() error {
	return e.Err
}

// Set is the emoticons data of the client.
type Set struct {
	// Packages maps a pack id to its baseURL and codes.
	// Aliases are in a '<pack id>_hidden' package.
	Packages *yamlx.Mapping
	// Sidebars maps a pack id to its title and icon.
	Sidebars *yamlx.Mapping
}

// Load reads packs from dir and returns the Set.
// Image URLs are prefixed with cdnURL.
func Load(dir, cdnURL string, packs []string) (*Set, error) {
	s := &Set{
		Packages: yamlx.NewMapping(),
		Sidebars: yamlx.NewMapping(),
	}

	for _, pack := range packs {
		data, err := readPack(filepath.Join(dir, pack))
		if err != nil {
			return nil, &PackError{Pack: pack, Err: err}
		}
		s.add(pack, cdnURL+ImagePath+"/"+pack+"/", data)
	}

	return s, nil
}

// Add contributes pack data to the receiver.
func (s *Set) add(pack, baseURL string, data *yamlx.Mapping) {
	if codes, ok := data.Get("codes"); ok {
		s.Packages.Set(pack, yamlx.NewMapping("baseURL", baseURL, "codes", codes))

		icon, hasIcon := data.Get("icon")
		title, hasTitle := data.Get("title")
		if hasIcon && hasTitle {
			s.Sidebars.Set(pack, yamlx.NewMapping("icon", icon, "title", title))
		}
	}

	if aliases, ok := data.Get("aliases"); ok {
		s.Packages.Set(pack+"_hidden", yamlx.NewMapping("baseURL", baseURL, "codes", aliases))
	}
}

// ReadPack reads the pack definition in dir.
func readPack(dir string) (*yamlx.Mapping, error) {
	p := filepath.Join(dir, DataFile)
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		p = filepath.Join(dir, LegacyDataFile)
		b, err = os.ReadFile(p)
	}
	if err != nil {
		return nil, err
	}

	// JSON is YAML so one decoder serves both files.
	v, err := yamlx.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	m, ok := v.(*yamlx.Mapping)
	if !ok {
		return nil, fmt.Errorf("parse %s: expected a mapping, got %v", p, yamlx.KindOf(v))
	}
	return m, nil
}

// MarshalJSON returns the Set as {"packages": {...}, "sidebars": {...}}.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(yamlx.NewMapping("packages", s.Packages, "sidebars", s.Sidebars))
}

// Script returns the Set as a JavaScript statement that defines 'emoticons'.
func (s *Set) Script() ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return []byte("const emoticons = " + string(b) + ";\n"), nil
}
