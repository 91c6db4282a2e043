// Package logging provides structured logging for the edmx CLI using slog.
//
// The package supports text and JSON output, verbosity-derived levels
// (including a trace level below debug), fan-out to a log file, and helpers
// for testing. All loggers are based on the standard library's [log/slog]
// package; the text handler colors output with fatih/color when the writer
// is a terminal.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Debug("parsed record", "triples", 42)
//
// # Context
//
// The CLI stores the configured logger on the command context with
// [NewContext]; library code retrieves it with [FromContext].
//
// # Testing
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
