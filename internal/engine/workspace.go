package engine

import (
	"fmt"
	"os"
)

// workspace is the extraction root for a single merge operation: a private
// temporary directory created at operation start and removed at operation
// end regardless of success or failure.
type workspace struct {
	root string
}

func newWorkspace() (*workspace, error) {
	root, err := os.MkdirTemp("", "archivemaster-")
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction root: %w", err)
	}
	return &workspace{root: root}, nil
}

func (w *workspace) Root() string {
	return w.root
}

// Release removes the extraction root and everything extracted into it.
// Safe to call more than once.
func (w *workspace) Release() {
	if w.root == "" {
		return
	}
	_ = os.RemoveAll(w.root)
	w.root = ""
}
