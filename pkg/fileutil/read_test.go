package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/edmx/internal/errors"
)

func TestReadFileWithLimit(t *testing.T) {
	tempDir := t.TempDir()
	const limit = 1024

	tests := []struct {
		name    string
		size    int64
		limit   int64
		wantErr bool
	}{
		{"small file", 100, limit, false},
		{"exact limit", limit, limit, false},
		{"too large", limit + 1, limit, true},
		{"zero limit uses default", limit + 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tempDir, tt.name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.Truncate(tt.size); err != nil {
				t.Fatal(err)
			}
			f.Close()

			data, err := ReadFileWithLimit(path, tt.limit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFileWithLimit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrRecordTooLarge) {
					t.Errorf("expected ErrRecordTooLarge, got %v", err)
				}
				return
			}
			if int64(len(data)) != tt.size {
				t.Errorf("read %d bytes, want %d", len(data), tt.size)
			}
		})
	}
}

func TestReadFileWithLimit_Missing(t *testing.T) {
	_, err := ReadFileWithLimit(filepath.Join(t.TempDir(), "absent.xml"), 0)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestReadWithLimit(t *testing.T) {
	data, err := ReadWithLimit(strings.NewReader("<rdf:RDF/>"), 10)
	if err != nil {
		t.Fatalf("ReadWithLimit() error = %v", err)
	}
	if string(data) != "<rdf:RDF/>" {
		t.Errorf("ReadWithLimit() = %q", data)
	}

	_, err = ReadWithLimit(strings.NewReader("<rdf:RDF/>!"), 10)
	if !errors.Is(err, errors.ErrRecordTooLarge) {
		t.Errorf("expected ErrRecordTooLarge, got %v", err)
	}
}
