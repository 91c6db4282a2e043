// Package errors provides error handling conventions for the edmx CLI.
//
// It re-exports github.com/cockroachdb/errors so that every package wraps
// with stack traces and hints the same way, defines sentinel errors for
// common failure conditions, and provides an ExitError type for CLI exit
// code handling.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, edmxerrors.ErrUnknownSeverity) {
//	    // shape engine and schema are out of sync
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//   - ExitInvalid (3): A record was rejected with Error severity
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports unwrapping via [Unwrap] and [As]:
//
//	err := edmxerrors.NewUserError(edmxerrors.ErrInvalidConfig, "Check your config file")
//	var exitErr *edmxerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
