package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/schema"
)

var profileJSONSchema bool

func init() {
	schemaProfileCmd.Flags().BoolVar(&profileJSONSchema, "json-schema", false,
		"print the JSON Schema that profile documents must satisfy")
	schemaCmd.AddCommand(schemaTypesCmd)
	schemaCmd.AddCommand(schemaCheckCmd)
	schemaCmd.AddCommand(schemaProfileCmd)
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect the validation schema",
	Long: `Inspect the shapes, class definitions and profile records are validated
against. The embedded resources are used unless schema.shapes,
schema.classes or profile are configured.`,
}

var schemaTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the supported resource types",
	Example: `  # List supported types
  edmx schema types

See Also: edmx schema check`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := loadSchema(loadedConfig())
		if err != nil {
			return err
		}
		for _, t := range s.Supported().Sorted() {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	},
}

var schemaCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the schema and report problems",
	Long: `Load the configured profile, shapes and class definitions and check
that records can be validated against them. Shapes declaring a severity
other than sh:Violation, sh:Warning or sh:Info are reported as errors.`,
	Example: `  # Check a custom shapes file
  EDMX_SCHEMA_SHAPES=shapes.ttl edmx schema check

See Also: edmx schema types`,
	Args: cobra.NoArgs,
	RunE: runSchemaCheck,
}

var schemaProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print the active validation profile",
	Example: `  # Print the profile as YAML
  edmx schema profile

  # Print the profile JSON Schema
  edmx schema profile --json-schema

See Also: edmx config get profile`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if profileJSONSchema {
			_, err := cmd.OutOrStdout().Write(schema.ProfileSchema())
			return errors.Wrap(err, "writing profile schema")
		}
		s, err := loadSchema(loadedConfig())
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(s.Profile())
		if err != nil {
			return errors.Wrap(err, "marshaling profile")
		}
		_, err = cmd.OutOrStdout().Write(data)
		return errors.Wrap(err, "writing profile")
	},
}

func runSchemaCheck(cmd *cobra.Command, _ []string) error {
	s, err := loadSchema(loadedConfig())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	p := s.Profile()
	fmt.Fprintf(w, "Profile:     %s\n", p.Name)
	fmt.Fprintf(w, "Shapes:      %s (%d shapes, %d targeted)\n",
		s.ShapesSource(), s.Shapes().Len(), len(s.Shapes().Targeted()))
	fmt.Fprintf(w, "Classes:     %s (%d triples)\n", s.ClassesSource(), s.HierarchyLen())
	fmt.Fprintf(w, "Supported:   %d types\n", s.Supported().Len())

	if custom := s.CustomSeverities(); len(custom) > 0 {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrUnknownSeverity, "shapes use %s", strings.Join(custom, ", ")),
			"Use sh:Violation, sh:Warning or sh:Info",
		)
	}
	fmt.Fprintln(w, "OK")
	return nil
}
