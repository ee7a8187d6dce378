package engine

import "context"

// Member describes one entry inside a source archive. The relative path is
// slash-separated regardless of the host platform.
type Member struct {
	RelPath string
	IsDir   bool
	// Size is the uncompressed size in bytes, or -1 when the format does
	// not report it without extraction.
	Size int64
}

// WriteOptions carries the output encoding parameters for Adapter.Write.
type WriteOptions struct {
	Format      Format
	Compression CompressionKind
	// Level is the deflate level (1-9). Only ZIP output honors it; the tar
	// family exposes no level knob.
	Level int
}

// Adapter hides one container format behind list, count, extract and write
// capabilities. Implementations drive their format library synchronously:
// calls block and cannot be interrupted mid-member.
type Adapter interface {
	// List opens the archive read-only and returns its members without
	// extracting anything.
	List(ctx context.Context, path string) ([]Member, error)

	// Count returns the number of members that are not directory markers.
	// Like List it must not extract anything.
	Count(ctx context.Context, path string) (int, error)

	// Extract materializes every non-directory member under destRoot,
	// creating parent directories idempotently, and returns the relative
	// paths actually written. Non-regular members are skipped silently.
	// Partial output from a failed extraction is left in place; the
	// caller's workspace cleanup removes it.
	Extract(ctx context.Context, path, destRoot string) ([]string, error)

	// Write creates (or truncates) the container at destPath and adds each
	// relative path from root under that exact archive-internal name. The
	// caller passes relPaths pre-sorted. A failure may leave a truncated
	// output file behind.
	Write(ctx context.Context, destPath, root string, relPaths []string, opts WriteOptions) error

	// Extensions returns the file extensions this adapter claims,
	// lowercased and dot-prefixed (e.g. ".tar.gz").
	Extensions() []string
}
