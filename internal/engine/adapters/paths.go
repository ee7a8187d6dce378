// Package adapters implements the per-format archive adapters registered
// with the engine: ZIP, RAR (read-only) and the TAR family.
package adapters

import (
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Scav-engeR/ArchiveMaster/internal/engine"
)

// RegisterAll registers every built-in adapter with the registry.
func RegisterAll(r *engine.Registry) {
	r.Register(NewZipAdapter())
	r.Register(NewRarAdapter())
	r.Register(NewTarAdapter())
}

// safeRelPath normalizes an archive-internal member name to a clean,
// slash-separated relative path. It returns ok=false for names that would
// escape the destination root (absolute paths or ".." traversal); such
// members are skipped like any other non-regular entry.
func safeRelPath(name string) (string, bool) {
	name = strings.ReplaceAll(name, `\`, "/")
	name = strings.TrimPrefix(name, "/")
	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return cleaned, true
}

// targetPath maps a safe relative path under destRoot using the host
// separator.
func targetPath(destRoot, rel string) string {
	return filepath.Join(destRoot, filepath.FromSlash(rel))
}

// writeFile stream-copies src to dst, creating parent directories
// idempotently so members from earlier archives may already have created
// them.
func writeFile(dst string, src io.Reader) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if _, err = io.Copy(f, src); err != nil {
		return err
	}

	return nil
}
