package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/edmx/internal/errors"
)

var (
	idsXML    bool
	idsTurtle bool
)

func init() {
	idsCmd.Flags().BoolVar(&idsXML, "xml", false, "read the input as RDF/XML")
	idsCmd.Flags().BoolVar(&idsTurtle, "turtle", false, "read the input as Turtle")
	rootCmd.AddCommand(idsCmd)
}

var idsCmd = &cobra.Command{
	Use:   "ids <file|->",
	Short: "Print the provided CHO identifiers of a record",
	Long: `Print the identifier of every provided CHO in a record, one per line.

Identifiers relative to the record are printed without the local base.
No validation is performed.`,
	Example: `  # List record identifiers
  edmx ids record.xml

See Also: edmx validate`,
	Args: cobra.ExactArgs(1),
	RunE: runIDs,
}

func runIDs(cmd *cobra.Command, args []string) error {
	kind, err := kindOverride(idsXML, idsTurtle)
	if err != nil {
		return err
	}
	c := loadedConfig()
	input, err := readRecord(args[0], cmd.InOrStdin(), c.Limits.MaxRecordSize)
	if err != nil {
		return err
	}
	v, err := newValidator(false)
	if err != nil {
		return err
	}

	ids, err := v.ExtractRecordIDs(input, recordKind(args[0], kind))
	if err != nil {
		return errors.NewUserError(err, "Run: edmx validate "+args[0])
	}
	for _, id := range ids {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
