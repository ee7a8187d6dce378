package engine

import "path/filepath"

// joinUnderRoot maps a slash-separated relative path to its location under
// the extraction root using the host separator.
func joinUnderRoot(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
