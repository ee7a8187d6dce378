package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"backup.zip", ".zip"},
		{"backup.ZIP", ".zip"},
		{"photos.rar", ".rar"},
		{"data.tar", ".tar"},
		{"data.tar.gz", ".tar.gz"},
		{"DATA.TAR.GZ", ".tar.gz"},
		{"data.tgz", ".tgz"},
		{"data.tar.bz2", ".tar.bz2"},
		{"data.tbz2", ".tbz2"},
		{"data.tar.zst", ".tar.zst"},
		{"/srv/exports/2024/data.tar.gz", ".tar.gz"},
		{"archive.7z", ".7z"},
		{"noextension", ""},
		{"trailing.", "."},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtensionOf(tt.path))
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Run("known formats parse case-insensitively", func(t *testing.T) {
		tests := []struct {
			in   string
			want Format
		}{
			{"zip", FormatZIP},
			{"ZIP", FormatZIP},
			{"rar", FormatRAR},
			{"tar", FormatTAR},
			{"tar.gz", FormatTARGZ},
			{"TAR.GZ", FormatTARGZ},
			{"tar.bz2", FormatTARBZ2},
			{"tar.zst", FormatTARZST},
		}

		for _, tt := range tests {
			format, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, format)
		}
	})

	t.Run("unknown format returns error", func(t *testing.T) {
		_, err := ParseFormat("7z")
		require.Error(t, err)
		assert.ErrorContains(t, err, "7z")
	})
}

func TestFormatDefaultCompression(t *testing.T) {
	assert.Equal(t, CompressionDeflate, FormatZIP.DefaultCompression())
	assert.Equal(t, CompressionGzip, FormatTARGZ.DefaultCompression())
	assert.Equal(t, CompressionBzip2, FormatTARBZ2.DefaultCompression())
	assert.Equal(t, CompressionZstd, FormatTARZST.DefaultCompression())
	assert.Equal(t, CompressionNone, FormatTAR.DefaultCompression())
	assert.Equal(t, CompressionNone, FormatRAR.DefaultCompression())
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, ".zip", FormatZIP.Extension())
	assert.Equal(t, ".tar.gz", FormatTARGZ.Extension())
}
