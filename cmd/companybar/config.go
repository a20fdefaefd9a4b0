package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"companybar/internal/config"
	"companybar/internal/ui/searchbar"
)

func newConfigCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := config.NewConfigService(*configPath)
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(svc.Path()); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", svc.Path())
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", svc.Path())
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after defaults, the config file and environment overrides. The API key is masked.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := config.NewConfigService(*configPath)
			cfg, err := svc.Load()
			if err != nil {
				return err
			}
			if cfg.API.Key != "" {
				cfg.API.Key = "********"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", svc.Path())
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	}

	stylesCmd := &cobra.Command{
		Use:   "styles",
		Short: "List the element names accepted under [widget.styles]",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range searchbar.StyleNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}

	cmd.AddCommand(initCmd, showCmd, stylesCmd)
	return cmd
}
