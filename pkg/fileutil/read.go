package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/edmx/internal/errors"
)

// DefaultMaxRecordSize is the read limit used when none is configured (16 MiB).
const DefaultMaxRecordSize int64 = 16 << 20

// ReadFileWithLimit reads the file at path, failing with errors.ErrRecordTooLarge
// when it exceeds limit bytes. A limit <= 0 means DefaultMaxRecordSize.
func ReadFileWithLimit(path string, limit int64) ([]byte, error) {
	limit = effectiveLimit(limit)

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast when the size is already known to be too large.
	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() && info.Size() > limit {
		return nil, tooLarge(path, limit)
	}

	data, err := ReadWithLimit(f, limit)
	if errors.Is(err, errors.ErrRecordTooLarge) {
		return nil, tooLarge(path, limit)
	}
	return data, err
}

// ReadWithLimit reads r to EOF, failing with errors.ErrRecordTooLarge when more
// than limit bytes are available. Used for standard input.
func ReadWithLimit(r io.Reader, limit int64) ([]byte, error) {
	limit = effectiveLimit(limit)

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	if int64(len(data)) > limit {
		return nil, errors.WithDetailf(errors.ErrRecordTooLarge, "limit is %d bytes", limit)
	}
	return data, nil
}

func effectiveLimit(limit int64) int64 {
	if limit <= 0 {
		return DefaultMaxRecordSize
	}
	return limit
}

func tooLarge(path string, limit int64) error {
	return errors.WithHint(
		errors.Wrapf(errors.ErrRecordTooLarge, "%s", path),
		"raise limits.max_record_size in the config file",
	)
}
