package adapters

import (
	"archive/tar"
	"compress/bzip2"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	dsbzip2 "github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/Scav-engeR/ArchiveMaster/internal/engine"
)

// TarAdapter handles the tar family: plain tar plus the gzip, bzip2 and
// zstd variants, selected by file extension on the read side and by the
// requested compression kind on the write side. The tar family exposes no
// per-level knob; kinds map to their encoders' defaults.
type TarAdapter struct{}

func NewTarAdapter() *TarAdapter {
	return &TarAdapter{}
}

func (a *TarAdapter) Extensions() []string {
	return []string{".tar", ".tgz", ".tar.gz", ".tbz2", ".tar.bz2", ".tar.zst"}
}

func (a *TarAdapter) List(ctx context.Context, path string) ([]engine.Member, error) {
	var members []engine.Member
	err := a.walk(path, func(header *tar.Header, _ *tar.Reader) error {
		rel, ok := safeRelPath(header.Name)
		if !ok {
			return nil
		}
		members = append(members, engine.Member{
			RelPath: rel,
			IsDir:   header.Typeflag == tar.TypeDir,
			Size:    header.Size,
		})
		return nil
	})
	if err != nil {
		return nil, &engine.UnreadableArchiveError{Path: path, Cause: err}
	}
	return members, nil
}

// Count counts regular-file members only; symlinks, devices and other
// special entries never reach the extraction root, so they are not part
// of the progress total either.
func (a *TarAdapter) Count(ctx context.Context, path string) (int, error) {
	n := 0
	err := a.walk(path, func(header *tar.Header, _ *tar.Reader) error {
		if header.Typeflag == tar.TypeReg {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, &engine.UnreadableArchiveError{Path: path, Cause: err}
	}
	return n, nil
}

func (a *TarAdapter) Extract(ctx context.Context, path, destRoot string) ([]string, error) {
	var written []string
	err := a.walk(path, func(header *tar.Header, r *tar.Reader) error {
		// Only regular files are materialized; everything else is
		// skipped silently.
		if header.Typeflag != tar.TypeReg {
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

func (a *TarAdapter) Write(ctx context.Context, destPath, root string, relPaths []string, opts engine.WriteOptions) (err error) {
	kind := opts.Compression
	if kind == "" {
		kind = opts.Format.DefaultCompression()
	}

	f, err := os.Create(destPath)
	if err != nil {
		return &engine.WriteError{Path: destPath, Cause: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &engine.WriteError{Path: destPath, Cause: closeErr}
		}
	}()

	compressor, err := newCompressor(f, kind)
	if err != nil {
		return &engine.WriteError{Path: destPath, Cause: err}
	}

	tw := tar.NewWriter(compressor)
	for _, rel := range relPaths {
		if addErr := addTarMember(tw, root, rel); addErr != nil {
			_ = tw.Close()
			_ = compressor.Close()
			return &engine.WriteError{Path: destPath, Cause: addErr}
		}
	}

	// Close the tar writer before the compressor so the trailing blocks
	// are flushed through it.
	if closeErr := tw.Close(); closeErr != nil {
		_ = compressor.Close()
		return &engine.WriteError{Path: destPath, Cause: closeErr}
	}
	if closeErr := compressor.Close(); closeErr != nil {
		return &engine.WriteError{Path: destPath, Cause: closeErr}
	}
	return nil
}

func addTarMember(tw *tar.Writer, root, rel string) (err error) {
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

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("header for %s: %w", rel, err)
	}
	header.Name = rel

	if err = tw.WriteHeader(header); err != nil {
		return fmt.Errorf("write header %s: %w", rel, err)
	}
	if _, err = io.Copy(tw, src); err != nil {
		return fmt.Errorf("copy entry %s: %w", rel, err)
	}
	return nil
}

// newCompressor wraps w with the encoder for the compression kind.
// bzip2 needs dsnet/compress: the standard library and klauspost only
// decode it.
func newCompressor(w io.Writer, kind engine.CompressionKind) (io.WriteCloser, error) {
	switch kind {
	case engine.CompressionNone:
		return &nopWriteCloser{w}, nil
	case engine.CompressionGzip:
		return gzip.NewWriter(w), nil
	case engine.CompressionBzip2:
		return dsbzip2.NewWriter(w, nil)
	case engine.CompressionZstd:
		return zstd.NewWriter(w)
	default:
		return nil, fmt.Errorf("unsupported tar compression kind %q", kind)
	}
}

// walk opens the archive, layers the decompressor selected by extension,
// and invokes fn for every header. The tar reader positioned at the
// current member is passed through so callers can stream its bytes.
func (a *TarAdapter) walk(path string, fn func(*tar.Header, *tar.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decompressed, cleanup, err := newDecompressor(f, engine.ExtensionOf(path))
	if err != nil {
		return err
	}
	defer cleanup()

	tr := tar.NewReader(decompressed)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(header, tr); err != nil {
			return err
		}
	}
}

func newDecompressor(f *os.File, ext string) (io.Reader, func(), error) {
	switch ext {
	case ".tar":
		return f, func() {}, nil
	case ".tgz", ".tar.gz":
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return gr, func() { _ = gr.Close() }, nil
	case ".tbz2", ".tar.bz2":
		return bzip2.NewReader(f), func() {}, nil
	case ".tar.zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported tar extension %q", ext)
	}
}

// nopWriteCloser wraps a Writer to provide a no-op Close method.
type nopWriteCloser struct {
	io.Writer
}

func (n *nopWriteCloser) Close() error {
	return nil
}

var _ engine.Adapter = (*TarAdapter)(nil)
