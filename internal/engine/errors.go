package engine

import "fmt"

// UnreadableArchiveError is returned when an input container cannot be
// opened or listed.
type UnreadableArchiveError struct {
	Path  string
	Cause error
}

func (e *UnreadableArchiveError) Error() string {
	return fmt.Sprintf("unreadable archive %s: %v", e.Path, e.Cause)
}

func (e *UnreadableArchiveError) Unwrap() error {
	return e.Cause
}

// UnsupportedFormatError is returned when a file extension is not claimed
// by any registered adapter.
type UnsupportedFormatError struct {
	Extension string   // the requested extension
	Available []string // registered extensions
}

func (e *UnsupportedFormatError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unsupported archive format %q: no adapters registered", e.Extension)
	}
	return fmt.Sprintf("unsupported archive format %q (available: %v)", e.Extension, e.Available)
}

// ExtractionError is returned on an I/O or decode error while
// materializing a member.
type ExtractionError struct {
	Archive string
	Cause   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s: %v", e.Archive, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// WriteError is returned on an I/O or encode error while producing the
// output archive. The output file may exist in a truncated state.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write archive %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
