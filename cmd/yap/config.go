package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cenkalti/yap/internal/config"
	"github.com/cenkalti/yap/internal/ui"
)

var configCmd = &cobra.Command{
	Use:     "config",
	GroupID: "data",
	Short:   "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return fmt.Errorf("failed to locate home directory: %w", err)
			}
		}
		force, _ := cmd.Flags().GetBool("force")
		if err := config.WriteDefault(path, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", ui.RenderPass("✓"), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: run(func(cmd *cobra.Command, _ []string, a *app) error {
		return a.cfg.Encode(cmd.OutOrStdout())
	}),
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
