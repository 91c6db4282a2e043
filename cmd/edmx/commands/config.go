package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/edmx/internal/config"
	"github.com/thoreinstein/edmx/internal/editor"
	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/paths"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage edmx configuration",
	Long: `Manage edmx configuration stored in ~/.config/edmx/config.yaml.

Every key can be overridden with an EDMX_ environment variable, e.g.
EDMX_OUTPUT_FORMAT=json. Variables in ./.env are loaded first.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  edmx config

  # Get a specific value
  edmx config get output.format

See Also: edmx config init`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys.`,
	Example: `  # Get the record size limit
  edmx config get limits.max_record_size

See Also: edmx config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all configuration values in YAML format.`,
	Example: `  # List all configuration
  edmx config list

See Also: edmx config get`,
	RunE: runConfigList,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default values",
	Example: `  # Create ~/.config/edmx/config.yaml
  edmx config init

See Also: edmx config list`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your editor and check it when the
editor exits.

Uses $EDMX_EDITOR, $EDITOR or $VISUAL, falling back to nano or vi.`,
	Example: `  # Open config in default editor
  edmx config edit

  # Open with specific editor
  EDITOR=nano edmx config edit

See Also: edmx config init`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])
	if !config.IsKey(key) {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "unknown key %q", key),
			"Known keys: "+strings.Join(config.Keys(), ", "),
		)
	}
	fmt.Fprintln(cmd.OutOrStdout(), viper.GetString(key))
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(loadedConfig())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return errors.Wrap(err, "writing config")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configFile
	if path == "" {
		path = paths.ConfigFile()
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return errors.NewUserError(
			errors.Newf("config file already exists at %s", path),
			"Use --force to overwrite it",
		)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := configFile
	if path == "" {
		path = paths.ConfigFile()
	}
	if _, err := os.Stat(path); err != nil {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "config file not found at %s", path),
			"Run: edmx config init",
		)
	}

	e := editor.New()
	e.Stdin, e.Stdout, e.Stderr = cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()
	if err := e.Open(cmd.Context(), path); err != nil {
		return err
	}

	config.Init()
	if _, err := config.Load(path); err != nil {
		return errors.NewConfigError(err)
	}
	return nil
}
