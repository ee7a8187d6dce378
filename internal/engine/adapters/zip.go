package adapters

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/Scav-engeR/ArchiveMaster/internal/engine"
)

// ZipAdapter handles .zip containers through archive/zip, with
// klauspost/compress providing the leveled deflate encoder on the write
// side.
type ZipAdapter struct{}

func NewZipAdapter() *ZipAdapter {
	return &ZipAdapter{}
}

func (a *ZipAdapter) Extensions() []string {
	return []string{".zip"}
}

func (a *ZipAdapter) List(ctx context.Context, path string) ([]engine.Member, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, &engine.UnreadableArchiveError{Path: path, Cause: err}
	}
	defer r.Close()

	members := make([]engine.Member, 0, len(r.File))
	for _, f := range r.File {
		rel, ok := safeRelPath(f.Name)
		if !ok {
			continue
		}
		size := int64(-1)
		if f.UncompressedSize64 <= math.MaxInt64 {
			size = int64(f.UncompressedSize64)
		}
		members = append(members, engine.Member{
			RelPath: rel,
			IsDir:   isZipDir(f),
			Size:    size,
		})
	}
	return members, nil
}

func (a *ZipAdapter) Count(ctx context.Context, path string) (int, error) {
	members, err := a.List(ctx, path)
	if err != nil {
		return 0, err
	}
	return countRegular(members), nil
}

func (a *ZipAdapter) Extract(ctx context.Context, path, destRoot string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, &engine.ExtractionError{Archive: path, Cause: err}
	}
	defer r.Close()

	var written []string
	for _, f := range r.File {
		if isZipDir(f) {
			continue
		}
		rel, ok := safeRelPath(f.Name)
		if !ok {
			continue
		}

		if err := extractZipMember(f, targetPath(destRoot, rel)); err != nil {
			return nil, &engine.ExtractionError{Archive: path, Cause: err}
		}
		written = append(written, rel)
	}
	return written, nil
}

func extractZipMember(f *zip.File, dst string) error {
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open member %s: %w", f.Name, err)
	}
	defer src.Close()

	if err := writeFile(dst, src); err != nil {
		return fmt.Errorf("write member %s: %w", f.Name, err)
	}
	return nil
}

func (a *ZipAdapter) Write(ctx context.Context, destPath, root string, relPaths []string, opts engine.WriteOptions) (err error) {
	f, err := os.Create(destPath)
	if err != nil {
		return &engine.WriteError{Path: destPath, Cause: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &engine.WriteError{Path: destPath, Cause: closeErr}
		}
	}()

	zw := zip.NewWriter(f)
	level := opts.Level
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	for _, rel := range relPaths {
		if addErr := addZipMember(zw, root, rel); addErr != nil {
			_ = zw.Close()
			return &engine.WriteError{Path: destPath, Cause: addErr}
		}
	}

	// Close the zip writer first so the central directory is flushed
	// before the file is closed.
	if closeErr := zw.Close(); closeErr != nil {
		return &engine.WriteError{Path: destPath, Cause: closeErr}
	}
	return nil
}

func addZipMember(zw *zip.Writer, root, rel string) (err error) {
	src, err := os.Open(targetPath(root, rel))
	if err != nil {
		return fmt.Errorf("open %s: %w", rel, err)
	}
	defer func() {
		err = errors.Join(err, src.Close())
	}()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", rel, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("header for %s: %w", rel, err)
	}
	header.Name = rel
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", rel, err)
	}
	if _, err = io.Copy(w, src); err != nil {
		return fmt.Errorf("copy entry %s: %w", rel, err)
	}
	return nil
}

// isZipDir reports whether a zip entry is a directory marker, either by
// mode or by the trailing-separator naming convention.
func isZipDir(f *zip.File) bool {
	return f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/")
}

func countRegular(members []engine.Member) int {
	n := 0
	for _, m := range members {
		if !m.IsDir {
			n++
		}
	}
	return n
}

var _ engine.Adapter = (*ZipAdapter)(nil)
