package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/logging"
	"github.com/thoreinstein/edmx/internal/normalize"
	"github.com/thoreinstein/edmx/internal/report"
)

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file|->",
	Short: "Print an RDF/XML record as the validator sees it",
	Long: `Normalize an RDF/XML record and print the result.

Provenance attributes such as edm:wasGeneratedBy are removed. Top-level
elements nested inside other elements are reported on standard error; they
are left in place.`,
	Example: `  # Normalize a record
  edmx normalize record.xml > normalized.xml

See Also: edmx validate`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func runNormalize(cmd *cobra.Command, args []string) error {
	c := loadedConfig()
	input, err := readRecord(args[0], cmd.InOrStdin(), c.Limits.MaxRecordSize)
	if err != nil {
		return err
	}
	s, err := loadSchema(c)
	if err != nil {
		return err
	}

	res, err := normalize.New(s.Profile()).Normalize(input)
	printItems(cmd, res.Items)
	if err != nil {
		return errors.NewUserError(errors.Wrap(err, "normalizing "+args[0]), "")
	}

	logging.FromContext(cmd.Context()).Debug("record normalized",
		"source", args[0], "stripped", res.Stripped, "items", len(res.Items))
	fmt.Fprint(cmd.OutOrStdout(), res.Output)
	return nil
}

func printItems(cmd *cobra.Command, items []report.Item) {
	for _, it := range items {
		fmt.Fprintln(cmd.ErrOrStderr(), it.String())
	}
}
