package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAdapter claims extensions without implementing any real format.
type stubAdapter struct {
	exts []string
}

func (s *stubAdapter) List(context.Context, string) ([]Member, error) { return nil, nil }
func (s *stubAdapter) Count(context.Context, string) (int, error)     { return 0, nil }
func (s *stubAdapter) Extract(context.Context, string, string) ([]string, error) {
	return nil, nil
}
func (s *stubAdapter) Write(context.Context, string, string, []string, WriteOptions) error {
	return nil
}
func (s *stubAdapter) Extensions() []string { return s.exts }

func TestRegistry(t *testing.T) {
	logger := zap.NewNop()

	t.Run("resolves adapter by path extension", func(t *testing.T) {
		registry := NewRegistry(logger)
		zipStub := &stubAdapter{exts: []string{".zip"}}
		registry.Register(zipStub)

		adapter, err := registry.ForPath("/backups/photos.zip")
		require.NoError(t, err)
		assert.Same(t, zipStub, adapter)
	})

	t.Run("resolution is case-insensitive", func(t *testing.T) {
		registry := NewRegistry(logger)
		zipStub := &stubAdapter{exts: []string{".zip"}}
		registry.Register(zipStub)

		adapter, err := registry.ForPath("PHOTOS.ZIP")
		require.NoError(t, err)
		assert.Same(t, zipStub, adapter)
	})

	t.Run("double extension wins over its suffix", func(t *testing.T) {
		registry := NewRegistry(logger)
		tarStub := &stubAdapter{exts: []string{".tar", ".tar.gz"}}
		gzStub := &stubAdapter{exts: []string{".gz"}}
		registry.Register(tarStub)
		registry.Register(gzStub)

		adapter, err := registry.ForPath("data.tar.gz")
		require.NoError(t, err)
		assert.Same(t, tarStub, adapter)
	})

	t.Run("unknown extension returns UnsupportedFormatError", func(t *testing.T) {
		registry := NewRegistry(logger)
		registry.Register(&stubAdapter{exts: []string{".zip"}})
		registry.Register(&stubAdapter{exts: []string{".tar", ".rar"}})

		_, err := registry.ForPath("archive.7z")
		require.Error(t, err)

		var unsupported *UnsupportedFormatError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, ".7z", unsupported.Extension)
		assert.Equal(t, []string{".rar", ".tar", ".zip"}, unsupported.Available)
	})

	t.Run("empty registry reports no adapters", func(t *testing.T) {
		registry := NewRegistry(logger)

		_, err := registry.ForExtension(".zip")
		require.Error(t, err)
		assert.ErrorContains(t, err, "no adapters registered")
	})

	t.Run("later registration replaces earlier one", func(t *testing.T) {
		registry := NewRegistry(logger)
		first := &stubAdapter{exts: []string{".zip"}}
		second := &stubAdapter{exts: []string{".zip"}}
		registry.Register(first)
		registry.Register(second)

		adapter, err := registry.ForExtension(".zip")
		require.NoError(t, err)
		assert.Same(t, second, adapter)
	})

	t.Run("available extensions are sorted", func(t *testing.T) {
		registry := NewRegistry(logger)
		registry.Register(&stubAdapter{exts: []string{".zip"}})
		registry.Register(&stubAdapter{exts: []string{".tar", ".tar.gz"}})
		registry.Register(&stubAdapter{exts: []string{".rar"}})

		assert.Equal(t, []string{".rar", ".tar", ".tar.gz", ".zip"}, registry.Available())
	})
}
