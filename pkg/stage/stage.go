// Package stage copies build outputs into deployment directories.
package stage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/otiai10/copy"
)

// Copy copies each src file or directory into directory dst.
// Dst is created when it doesn't exist.
// Like 'cp -au' a destination file that is as new as its source is left alone,
// timestamps are preserved and files in dst that are not in src are kept.
func Copy(log logr.Logger, dst string, src ...string) error {
	err := os.MkdirAll(dst, 0755)
	if err != nil {
		return fmt.Errorf("stage: %w", err)
	}

	opt := copy.Options{
		PreserveTimes: true,
		OnDirExists: func(src, dest string) copy.DirExistsAction {
			return copy.Merge
		},
		Skip: func(srcinfo os.FileInfo, src, dest string) (bool, error) {
			if srcinfo.IsDir() {
				return false, nil
			}
			di, err := os.Stat(dest)
			if err != nil {
				return false, nil
			}
			skip := !di.ModTime().Before(srcinfo.ModTime())
			if skip {
				log.V(1).Info("Skip", "src", src, "dest", dest)
			}
			return skip, nil
		},
	}

	for _, s := range src {
		if _, err := os.Stat(s); err != nil {
			return fmt.Errorf("stage: %w", err)
		}
		d := filepath.Join(dst, filepath.Base(s))
		err := copy.Copy(s, d, opt)
		if err != nil {
			return fmt.Errorf("stage %s: %w", s, err)
		}
		log.Info("Copy", "src", s, "dst", d)
	}

	return nil
}

// Install copies files to target and assets to cdnTarget.
// An empty cdnTarget defaults to target, an empty target skips the files.
func Install(log logr.Logger, target, cdnTarget string, files, assets []string) error {
	if target != "" {
		err := Copy(log, target, files...)
		if err != nil {
			return err
		}
	}

	if cdnTarget == "" {
		cdnTarget = target
	}
	if cdnTarget != "" {
		err := Copy(log, cdnTarget, assets...)
		if err != nil {
			return err
		}
	}

	return nil
}
