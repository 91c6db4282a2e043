// Package paths resolves the directories edmx reads from and writes to.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory compliance:
//
//	paths.ConfigFile()  // <ConfigHome>/edmx/config.yaml
//	paths.ProfilesDir() // <DataHome>/edmx/profiles/
//	paths.ReportsDir()  // <CacheHome>/edmx/reports/
//
// Validation profiles may be referenced by path or by bare name; see
// [ProfilePath].
package paths
