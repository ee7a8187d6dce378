package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nwaples/rardecode/v2"

	"github.com/Scav-engeR/ArchiveMaster/internal/engine"
)

// errRarWriteUnsupported: RAR is a proprietary format with no open
// encoder; the adapter is read-only.
var errRarWriteUnsupported = errors.New("rar archives can only be read, not written")

// RarAdapter handles .rar containers through rardecode.
type RarAdapter struct{}

func NewRarAdapter() *RarAdapter {
	return &RarAdapter{}
}

func (a *RarAdapter) Extensions() []string {
	return []string{".rar"}
}

func (a *RarAdapter) List(ctx context.Context, path string) ([]engine.Member, error) {
	var members []engine.Member
	err := a.walk(path, func(header *rardecode.FileHeader, _ *rardecode.Reader) error {
		rel, ok := safeRelPath(header.Name)
		if !ok {
			return nil
		}
		members = append(members, engine.Member{
			RelPath: rel,
			IsDir:   header.IsDir,
			Size:    header.UnPackedSize,
		})
		return nil
	})
	if err != nil {
		return nil, &engine.UnreadableArchiveError{Path: path, Cause: err}
	}
	return members, nil
}

func (a *RarAdapter) Count(ctx context.Context, path string) (int, error) {
	members, err := a.List(ctx, path)
	if err != nil {
		return 0, err
	}
	return countRegular(members), nil
}

func (a *RarAdapter) Extract(ctx context.Context, path, destRoot string) ([]string, error) {
	var written []string
	err := a.walk(path, func(header *rardecode.FileHeader, r *rardecode.Reader) error {
		if header.IsDir {
			return nil
		}
		rel, ok := safeRelPath(header.Name)
		if !ok {
			return nil
		}

		if err := writeFile(targetPath(destRoot, rel), r); err != nil {
			return fmt.Errorf("write member %s: %w", header.Name, err)
		}
		written = append(written, rel)
		return nil
	})
	if err != nil {
		return nil, &engine.ExtractionError{Archive: path, Cause: err}
	}
	return written, nil
}

// Write always fails: nothing in the open-source ecosystem encodes RAR.
func (a *RarAdapter) Write(ctx context.Context, destPath, root string, relPaths []string, opts engine.WriteOptions) error {
	return &engine.WriteError{Path: destPath, Cause: errRarWriteUnsupported}
}

// walk opens the archive and invokes fn for every member header. The
// rardecode reader positioned at the current member is passed through so
// callers can stream its bytes.
func (a *RarAdapter) walk(path string, fn func(*rardecode.FileHeader, *rardecode.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f)
	if err != nil {
		return err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(header, r); err != nil {
			return err
		}
	}
}

var _ engine.Adapter = (*RarAdapter)(nil)
