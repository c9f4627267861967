package configure

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmlt/cadence-setup/pkg/emoticons"
	"github.com/mmlt/cadence-setup/pkg/profile"
	"github.com/mmlt/cadence-setup/pkg/util/stringset"
)

// Source tree layout.
const (
	PacksDir   = "emoticon-packs"
	StylesDir  = "assets/css/alt"
	LocalesDir = "locales"
)

// Discover returns the packs, styles and languages that the source tree in root provides.
// A missing directory provides nothing.
func Discover(root string) (profile.Available, error) {
	var av profile.Available

	packs := stringset.New()
	err := eachEntry(filepath.Join(root, PacksDir), func(e fs.DirEntry, path string) {
		if e.IsDir() && (isFile(filepath.Join(path, emoticons.DataFile)) || isFile(filepath.Join(path, emoticons.LegacyDataFile))) {
			packs.Add(e.Name())
		}
	})
	if err != nil {
		return av, err
	}

	styles, err := namesWithExt(filepath.Join(root, StylesDir), ".css")
	if err != nil {
		return av, err
	}

	languages, err := namesWithExt(filepath.Join(root, LocalesDir), ".yml")
	if err != nil {
		return av, err
	}

	av.Packs = packs.Sorted()
	av.Styles = styles.Sorted()
	av.Languages = languages.Sorted()
	return av, nil
}

// NamesWithExt returns the names without extension of the files in dir with extension ext.
func namesWithExt(dir, ext string) (stringset.Set, error) {
	r := stringset.New()
	err := eachEntry(dir, func(e fs.DirEntry, _ string) {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
			r.Add(strings.TrimSuffix(e.Name(), ext))
		}
	})
	return r, err
}

// EachEntry calls fn for each entry in dir, a missing dir has no entries.
func eachEntry(dir string, fn func(e fs.DirEntry, path string)) error {
	es, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range es {
		fn(e, filepath.Join(dir, e.Name()))
	}
	return nil
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
