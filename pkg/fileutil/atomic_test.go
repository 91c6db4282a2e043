package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type sample struct {
	RecordID string `json:"record_id" yaml:"record_id" toml:"record_id"`
	Items    int    `json:"items" yaml:"items" toml:"items"`
}

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{"text", []byte("<rdf:RDF/>\n"), 0o644},
		{"empty", []byte{}, 0o644},
		{"private", []byte{0x00, 0xFF}, 0o600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out")

			require.NoError(t, AtomicWriteFile(path, tt.data, tt.perm))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.data, got)

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.perm, info.Mode().Perm())
		})
	}
}

func TestAtomicWriteFile_OverwriteExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, AtomicWriteFile(path, []byte("new"), 0o600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestAtomicWriteFile_NoTempFileLeftOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing-dir", "file.txt")

	assert.Error(t, AtomicWriteFile(path, []byte("data"), 0o600))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotEqual(t, ".tmp", filepath.Ext(entry.Name()), "temp file left behind: %s", entry.Name())
	}
}

func TestAtomicWriteEncoded(t *testing.T) {
	want := sample{RecordID: "/item/1", Items: 3}

	tests := []struct {
		name      string
		write     func(string, any) error
		unmarshal func([]byte, any) error
	}{
		{"json", AtomicWriteJSON, json.Unmarshal},
		{"yaml", AtomicWriteYAML, yaml.Unmarshal},
		{"toml", AtomicWriteTOML, toml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out."+tt.name)
			require.NoError(t, tt.write(path, want))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, byte('\n'), data[len(data)-1], "missing trailing newline")

			var got sample
			require.NoError(t, tt.unmarshal(data, &got))
			assert.Equal(t, want, got)
		})
	}
}

func TestAtomicWriteYAML_Unmarshalable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	err := AtomicWriteYAML(path, map[string]any{"fn": func() {}})
	assert.Error(t, err)
}
