package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/hdkit/internal/config"
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// configView renders the effective configuration as YAML in text mode.
type configView struct {
	*config.Config
}

// Text implements output.Texter.
func (v configView) Text(w io.Writer) error {
	data, err := yaml.Marshal(v.Config)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View and initialize the hdkit configuration file.`,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Create a default configuration file at <home>/config.yaml.

An existing file is left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := GetCmdContext(cmd)

			if _, err := os.Stat(c.ConfigPath); err == nil && !force {
				return kiterr.WithSuggestion(
					kiterr.WithDetails(kiterr.ErrGeneral, map[string]string{"path": c.ConfigPath}),
					"configuration already exists; use --force to overwrite",
				)
			}

			defaults := config.Defaults()
			defaults.Home = c.Config.Home
			if err := config.Save(defaults, c.ConfigPath); err != nil {
				return kiterr.Wrap(err, "writing config file")
			}

			c.Logger.Info("wrote config to %s", c.ConfigPath)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", c.ConfigPath)
			return err
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Display the configuration after environment and flag overrides.

Example:
  hdkit config show
  hdkit config show -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := GetCmdContext(cmd)
			return c.Fmt.Print(configView{c.Config})
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), GetCmdContext(cmd).ConfigPath)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd, pathCmd)
	return cmd
}
