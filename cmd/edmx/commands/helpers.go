package commands

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/edmx/internal/config"
	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/paths"
	"github.com/thoreinstein/edmx/internal/schema"
	"github.com/thoreinstein/edmx/internal/validator"
	"github.com/thoreinstein/edmx/pkg/fileutil"
)

// stdinName is the argument that reads a record from standard input.
const stdinName = "-"

// recordExtensions are the files picked up when a directory is validated.
var recordExtensions = []string{".xml", ".rdf", ".ttl"}

// loadSchema builds the schema from the configured profile and resources.
func loadSchema(c *config.Config) (*schema.Schema, error) {
	opts := schema.Options{
		ShapesPath:  c.Schema.Shapes,
		ClassesPath: c.Schema.Classes,
	}
	if c.Profile != "" {
		path, err := paths.ProfilePath(c.Profile)
		if err != nil {
			return nil, errors.NewUserError(err, "Check the profile setting: edmx config get profile")
		}
		if opts.Profile, err = schema.LoadProfile(path); err != nil {
			return nil, errors.NewUserError(err, "")
		}
	}

	s, err := schema.Load(opts)
	if err != nil {
		return nil, errors.NewUserError(err, "Run: edmx schema check")
	}
	return s, nil
}

// newValidator builds a validator from the loaded configuration.
func newValidator(orphans bool) (*validator.Validator, error) {
	c := loadedConfig()
	s, err := loadSchema(c)
	if err != nil {
		return nil, err
	}
	return validator.New(validator.Options{
		Schema:  s,
		Orphans: orphans || c.Checks.Orphans,
	})
}

// kindOverride resolves the --xml/--turtle flags. An empty kind means the
// kind is taken from each file's extension.
func kindOverride(xml, turtle bool) (validator.Kind, error) {
	switch {
	case xml && turtle:
		return "", errors.NewUserError(errors.New("--xml and --turtle are mutually exclusive"), "")
	case xml:
		return validator.KindXML, nil
	case turtle:
		return validator.KindTurtle, nil
	}
	return "", nil
}

// collectJobs expands arguments into jobs. Directories are walked for
// record files; "-" reads standard input.
func collectJobs(args []string, kind validator.Kind, stdin io.Reader, limit int64) ([]validator.Job, error) {
	var jobs []validator.Job
	for _, arg := range args {
		if arg == stdinName {
			data, err := fileutil.ReadWithLimit(stdin, limit)
			if err != nil {
				return nil, errors.Wrap(err, "reading standard input")
			}
			k := kind
			if k == "" {
				k = validator.KindXML
			}
			jobs = append(jobs, validator.Job{Source: stdinName, Kind: k, Data: data})
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.NewUserError(errors.Wrapf(err, "reading %s", arg), "")
		}
		if !info.IsDir() {
			jobs = append(jobs, fileJob(arg, kind))
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !slices.Contains(recordExtensions, strings.ToLower(filepath.Ext(path))) {
				return nil
			}
			jobs = append(jobs, fileJob(path, kind))
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking %s", arg)
		}
	}
	return jobs, nil
}

func fileJob(path string, kind validator.Kind) validator.Job {
	if kind == "" {
		kind = validator.KindForPath(path)
	}
	return validator.Job{Source: path, Kind: kind}
}

// readRecord reads a single record argument, which may be "-".
func readRecord(arg string, stdin io.Reader, limit int64) (string, error) {
	var (
		data []byte
		err  error
	)
	if arg == stdinName {
		data, err = fileutil.ReadWithLimit(stdin, limit)
	} else {
		data, err = fileutil.ReadFileWithLimit(arg, limit)
	}
	if err != nil {
		return "", errors.NewUserError(err, "")
	}
	return string(data), nil
}

// recordKind picks the kind for a single record argument.
func recordKind(arg string, override validator.Kind) validator.Kind {
	if override != "" {
		return override
	}
	if arg == stdinName {
		return validator.KindXML
	}
	return validator.KindForPath(arg)
}
