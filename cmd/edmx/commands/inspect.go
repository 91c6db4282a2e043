package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/report"
)

var (
	inspectXML     bool
	inspectTurtle  bool
	inspectOrphans bool
)

func init() {
	inspectCmd.Flags().BoolVar(&inspectXML, "xml", false, "read the input as RDF/XML")
	inspectCmd.Flags().BoolVar(&inspectTurtle, "turtle", false, "read the input as Turtle")
	inspectCmd.Flags().BoolVar(&inspectOrphans, "orphans", false,
		"report resources not reachable from an aggregation")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Browse the findings of a record interactively",
	Long: `Validate a record and browse its findings with a fuzzy finder.

The preview shows the subject, predicate and object of the highlighted
finding. The selected finding is printed when the finder closes.`,
	Example: `  # Browse findings
  edmx inspect record.xml

See Also: edmx validate`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	kind, err := kindOverride(inspectXML, inspectTurtle)
	if err != nil {
		return err
	}
	c := loadedConfig()
	input, err := readRecord(args[0], cmd.InOrStdin(), c.Limits.MaxRecordSize)
	if err != nil {
		return err
	}
	v, err := newValidator(inspectOrphans)
	if err != nil {
		return err
	}

	r, err := v.ValidateRecord(cmd.Context(), input, recordKind(args[0], kind))
	if err != nil {
		return errors.NewSystemError(err, "Run: edmx schema check")
	}
	return browseItems(cmd.OutOrStdout(), r)
}

func browseItems(w io.Writer, r report.Report) error {
	items := r.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "No findings.")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		items,
		func(i int) string {
			return fmt.Sprintf("%s: %s", items[i].Severity(), items[i].Message())
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return itemDetail(items[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive inspection failed")
	}

	fmt.Fprint(w, itemDetail(items[idx]))
	return nil
}

// itemDetail renders every field of an item, one per line.
func itemDetail(it report.Item) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Severity:  %s\n", it.Severity())
	for _, f := range []struct {
		label string
		get   func() (string, bool)
	}{
		{"Subject:  ", it.Subject},
		{"Predicate:", it.Predicate},
		{"Object:   ", it.Object},
	} {
		if v, ok := f.get(); ok {
			fmt.Fprintf(&sb, "%s %s\n", f.label, v)
		}
	}
	fmt.Fprintf(&sb, "\n%s\n", it.Message())
	return sb.String()
}
