package engine

import (
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Registry maps archive file extensions to format adapters. It is built
// once at startup; new formats plug in by registering an adapter, without
// any change to the merge engine.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
	logger   *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
		logger:   logger,
	}
}

// Register claims every extension the adapter reports. A later
// registration for the same extension replaces the earlier one.
func (r *Registry) Register(adapter Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range adapter.Extensions() {
		r.adapters[strings.ToLower(ext)] = adapter
		r.logger.Debug("registered format adapter", zap.String("extension", ext))
	}
}

// ForPath resolves the adapter for the path's extension,
// case-insensitively, with double extensions like ".tar.gz" resolved
// before single ones.
func (r *Registry) ForPath(path string) (Adapter, error) {
	return r.ForExtension(ExtensionOf(path))
}

// ForExtension resolves the adapter claiming the given extension.
func (r *Registry) ForExtension(ext string) (Adapter, error) {
	ext = strings.ToLower(ext)
	r.mu.RLock()
	adapter, ok := r.adapters[ext]
	available := r.available()
	r.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedFormatError{Extension: ext, Available: available}
	}
	return adapter, nil
}

// Available returns the sorted list of registered extensions.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.available()
}

func (r *Registry) available() []string {
	extensions := lo.Keys(r.adapters)
	slices.Sort(extensions)
	return extensions
}
