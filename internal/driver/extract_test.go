package driver

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractZip(t *testing.T) {
	tests := []struct {
		name    string
		entries []zipEntry
		want    map[string]string
		wantErr bool
	}{
		{
			name: "flat_driver_archive",
			entries: []zipEntry{
				{name: "chromedriver", content: "binary", mode: 0755},
			},
			want: map[string]string{"chromedriver": "binary"},
		},
		{
			name: "nested_directories",
			entries: []zipEntry{
				{name: "Driver_Notes/", mode: os.ModeDir | 0755},
				{name: "Driver_Notes/credits.html", content: "credits"},
				{name: "msedgedriver", content: "edge", mode: 0755},
			},
			want: map[string]string{
				"Driver_Notes/credits.html": "credits",
				"msedgedriver":              "edge",
			},
		},
		{
			name: "path_traversal",
			entries: []zipEntry{
				{name: "../escape.txt", content: "bad"},
			},
			wantErr: true,
		},
		{
			name: "absolute_like_traversal",
			entries: []zipEntry{
				{name: "sub/../../escape.txt", content: "bad"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := writeZip(t, tt.entries...)
			dest := filepath.Join(t.TempDir(), "out")

			extracted, err := NewExtractor().ExtractZip(archive, dest)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "illegal file path")
				_, statErr := os.Stat(filepath.Join(filepath.Dir(dest), "escape.txt"))
				assert.True(t, os.IsNotExist(statErr))
				return
			}
			require.NoError(t, err)
			assert.Len(t, extracted, len(tt.want))

			for rel, content := range tt.want {
				data, err := os.ReadFile(filepath.Join(dest, filepath.FromSlash(rel)))
				require.NoError(t, err, rel)
				assert.Equal(t, content, string(data))
			}
		})
	}
}

func TestExtractZip_OverwritesExisting(t *testing.T) {
	dest := t.TempDir()
	existing := filepath.Join(dest, "chromedriver")
	require.NoError(t, os.WriteFile(existing, []byte("old driver"), 0555))

	archive := writeZip(t, zipEntry{name: "chromedriver", content: "new driver", mode: 0755})
	_, err := NewExtractor().ExtractZip(archive, dest)
	require.NoError(t, err)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "new driver", string(data))
}

func TestExtractZip_PreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}

	dest := t.TempDir()
	archive := writeZip(t,
		zipEntry{name: "chromedriver", content: "x", mode: 0755},
		zipEntry{name: "LICENSE", content: "y"},
	)
	_, err := NewExtractor().ExtractZip(archive, dest)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dest, "chromedriver"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0111)

	info, err = os.Stat(filepath.Join(dest, "LICENSE"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0400)
}

func TestExtractZip_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "driver.zip")
	require.NoError(t, os.WriteFile(path, []byte("<html>404</html>"), 0644))

	_, err := NewExtractor().ExtractZip(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open archive")
}

func TestSetExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}

	path := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, SetExecutable(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	assert.Error(t, SetExecutable(filepath.Join(t.TempDir(), "missing")))
}
