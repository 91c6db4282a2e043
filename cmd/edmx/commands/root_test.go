package commands

import (
	"log/slog"
	"testing"

	"github.com/thoreinstein/edmx/internal/config"
	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/logging"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"EDMX_DEBUG=1", "1", slog.LevelDebug},
		{"EDMX_DEBUG=true", "true", slog.LevelDebug},
		{"EDMX_DEBUG=2", "2", logging.LevelTrace},
		{"EDMX_DEBUG=0", "0", slog.LevelWarn},
		{"EDMX_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv(config.EnvPrefix+"_DEBUG", tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel == slog.LevelDebug && logger.Enabled(t.Context(), logging.LevelTrace) {
				t.Error("expected trace level to be disabled when EDMX_DEBUG=1")
			}
		})
	}
}

func TestSetupLogging_QuietAndVerbose(t *testing.T) {
	origVerbosity, origQuiet := verbosity, quiet
	defer func() { verbosity, quiet = origVerbosity, origQuiet }()

	verbosity, quiet = 1, true
	err := setupLogging(rootCmd)
	if errors.ExitCode(err) != errors.ExitUser {
		t.Errorf("ExitCode() = %d, want %d", errors.ExitCode(err), errors.ExitUser)
	}
}

func TestCheckConfig_SkipsSafeCommands(t *testing.T) {
	origErr := configLoadErr
	defer func() { configLoadErr = origErr }()
	configLoadErr = errors.New("broken config")

	if err := checkConfig(versionCmd); err != nil {
		t.Errorf("checkConfig(version) = %v, want nil", err)
	}
	if err := checkConfig(configInitCmd); err != nil {
		t.Errorf("checkConfig(config init) = %v, want nil", err)
	}
	if err := checkConfig(validateCmd); err == nil {
		t.Error("checkConfig(validate) = nil, want error")
	}
}
