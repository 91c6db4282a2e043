package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/edmx/internal/errors"
)

func TestResolveHome(t *testing.T) {
	got, err := ResolveHome()
	want, _ := os.UserHomeDir()

	if err != nil {
		if !errors.Is(err, ErrHomeDirNotFound) {
			t.Errorf("unexpected error type: %v", err)
		}
	} else if got != want {
		t.Errorf("ResolveHome() = %q, want %q", got, want)
	}
}

func TestBaseDirs(t *testing.T) {
	for name, fn := range map[string]func() string{
		"ConfigHome":  ConfigHome,
		"DataHome":    DataHome,
		"CacheHome":   CacheHome,
		"ConfigDir":   ConfigDir,
		"ProfilesDir": ProfilesDir,
		"ReportsDir":  ReportsDir,
	} {
		got := fn()
		if got == "" {
			t.Errorf("%s() returned empty string", name)
			continue
		}
		if !filepath.IsAbs(got) {
			t.Errorf("%s() = %q, want absolute path", name, got)
		}
	}
}

func TestConfigFile(t *testing.T) {
	got := ConfigFile()
	want := filepath.Join(AppName, ConfigFileName)
	if !strings.HasSuffix(got, want) {
		t.Errorf("ConfigFile() = %q, want suffix %q", got, want)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir() did not create a directory")
	}
	if err := EnsureDir(dir, 0); err != nil {
		t.Errorf("EnsureDir() second call error = %v", err)
	}
}

func TestProfilePath(t *testing.T) {
	t.Run("empty reference", func(t *testing.T) {
		_, err := ProfilePath("  ")
		if !errors.Is(err, ErrInvalidPath) {
			t.Errorf("ProfilePath() error = %v, want ErrInvalidPath", err)
		}
	})

	t.Run("explicit path returned unchanged", func(t *testing.T) {
		got, err := ProfilePath("./profiles/strict.yaml")
		if err != nil {
			t.Fatalf("ProfilePath() error = %v", err)
		}
		if got != "./profiles/strict.yaml" {
			t.Errorf("ProfilePath() = %q", got)
		}
	})

	t.Run("unknown bare name", func(t *testing.T) {
		_, err := ProfilePath("no-such-profile-7c1e")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("ProfilePath() error = %v, want os.ErrNotExist", err)
		}
	})
}

func TestExpandHome(t *testing.T) {
	home, err := ResolveHome()
	if err != nil {
		t.Skip("no home directory available")
	}

	got, err := ExpandHome("~/records")
	if err != nil {
		t.Fatalf("ExpandHome() error = %v", err)
	}
	if got != filepath.Join(home, "records") {
		t.Errorf("ExpandHome() = %q", got)
	}

	got, _ = ExpandHome("/abs/path")
	if got != "/abs/path" {
		t.Errorf("ExpandHome() changed absolute path to %q", got)
	}
}
