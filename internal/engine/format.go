package engine

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an archive container format.
type Format string

const (
	FormatZIP    Format = "zip"
	FormatRAR    Format = "rar"
	FormatTAR    Format = "tar"
	FormatTARGZ  Format = "tar.gz"
	FormatTARBZ2 Format = "tar.bz2"
	FormatTARZST Format = "tar.zst"
)

func (f Format) String() string {
	return string(f)
}

// Extension returns the canonical file extension for the format, e.g. ".tar.gz".
func (f Format) Extension() string {
	return "." + string(f)
}

// DefaultCompression returns the compression kind implied by the format
// when the caller does not request one explicitly.
func (f Format) DefaultCompression() CompressionKind {
	switch f {
	case FormatZIP:
		return CompressionDeflate
	case FormatTARGZ:
		return CompressionGzip
	case FormatTARBZ2:
		return CompressionBzip2
	case FormatTARZST:
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// ParseFormat maps a format name such as "tar.gz" to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatZIP:
		return FormatZIP, nil
	case FormatRAR:
		return FormatRAR, nil
	case FormatTAR:
		return FormatTAR, nil
	case FormatTARGZ:
		return FormatTARGZ, nil
	case FormatTARBZ2:
		return FormatTARBZ2, nil
	case FormatTARZST:
		return FormatTARZST, nil
	default:
		return "", fmt.Errorf("unknown archive format %q", s)
	}
}

// CompressionKind identifies the compression applied inside a container.
type CompressionKind string

const (
	CompressionNone    CompressionKind = "none"
	CompressionDeflate CompressionKind = "deflate"
	CompressionGzip    CompressionKind = "gzip"
	CompressionBzip2   CompressionKind = "bzip2"
	CompressionZstd    CompressionKind = "zstd"
)

func (c CompressionKind) String() string {
	return string(c)
}

// ExtensionOf returns the archive extension of path, lowercased, resolving
// double extensions like ".tar.gz" before single ones. It returns "" when
// the path has no extension.
func ExtensionOf(path string) string {
	name := strings.ToLower(filepath.Base(path))
	for _, ext := range []string{".tar.gz", ".tar.bz2", ".tar.zst"} {
		if strings.HasSuffix(name, ext) {
			return ext
		}
	}
	return filepath.Ext(name)
}
