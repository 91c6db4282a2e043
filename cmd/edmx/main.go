// Package main is the entry point for the edmx CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/thoreinstein/edmx/cmd/edmx/commands"
	"github.com/thoreinstein/edmx/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	var exitErr *errors.ExitError
	// Invalid records were already reported; the exit code says the rest.
	if !errors.As(err, &exitErr) || exitErr.Code != errors.ExitInvalid {
		red := color.New(color.FgRed, color.Bold).SprintFunc()
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "  %s\n", hint)
		}
		if exitErr != nil && exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", exitErr.Suggestion)
		}
	}
	os.Exit(errors.ExitCode(err))
}
