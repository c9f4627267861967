package tool

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmlt/cadence-setup/pkg/profile"
	"github.com/mmlt/cadence-setup/pkg/util/exe"
)

// VersionFile is an optional file in Root with the client version.
const VersionFile = ".version"

// Version returns the client version.
// In order of precedence; the Tool Version, the profile install.version, the VersionFile,
// 'git describe' of Root and finally "dev".
func (t *Tool) version(ctx context.Context, in *profile.Install) string {
	if t.Version != "" {
		return t.Version
	}
	if in.Version != "" {
		return in.Version
	}

	b, err := os.ReadFile(filepath.Join(t.Root, VersionFile))
	if err == nil {
		if v := firstValue(b); v != "" {
			return v
		}
	}

	stdout, _, err := exe.Run(ctx, t.Log, &exe.Opt{Dir: t.Root}, "", "git", "describe", "--tags", "--always")
	if err == nil {
		if v := strings.TrimSpace(stdout); v != "" {
			return v
		}
	}
	t.Log.V(1).Info("Version unknown", "error", err)

	return "dev"
}

// FirstValue returns the first non-empty line of b.
// A VERSION=x line returns x.
func firstValue(b []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(b))
	for scanner.Scan() {
		ln := strings.TrimSpace(scanner.Text())
		if ln == "" {
			continue
		}
		return strings.TrimPrefix(ln, "VERSION=")
	}
	return ""
}
