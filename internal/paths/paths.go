package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under every XDG base directory.
const AppName = "edmx"

// ConfigFileName is the name of the configuration file inside ConfigDir.
const ConfigFileName = "config.yaml"

// ProfileExtensions lists the file extensions searched when a profile is
// referenced by bare name.
var ProfileExtensions = []string{".yaml", ".yml", ".toml", ".json"}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// CacheHome returns the XDG cache home directory.
func CacheHome() string {
	return xdg.CacheHome
}

// ConfigDir returns <ConfigHome>/edmx.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the default configuration file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// ProfilesDir returns the directory searched for named validation profiles.
// Returns: <DataHome>/edmx/profiles/
func ProfilesDir() string {
	return filepath.Join(DataHome(), AppName, "profiles")
}

// ReportsDir returns the default directory for reports written by batch runs.
// Returns: <CacheHome>/edmx/reports/
func ReportsDir() string {
	return filepath.Join(CacheHome(), AppName, "reports")
}

// ProfilePath resolves a profile reference. A reference containing a path
// separator or an extension is returned as-is after ~ expansion; a bare name
// is looked up in ProfilesDir with each of ProfileExtensions.
//
// Returns ErrInvalidPath for an empty reference and os.ErrNotExist (wrapped)
// when a bare name matches no file.
func ProfilePath(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.Wrap(ErrInvalidPath, "empty profile reference")
	}
	if strings.ContainsRune(ref, os.PathSeparator) || strings.ContainsRune(ref, '/') || filepath.Ext(ref) != "" {
		return ExpandHome(ref)
	}

	dir := ProfilesDir()
	for _, ext := range ProfileExtensions {
		candidate := filepath.Join(dir, ref+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.Wrapf(os.ErrNotExist, "profile %q not found in %s", ref, dir)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
