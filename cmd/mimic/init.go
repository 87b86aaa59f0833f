package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/mimic/storage"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the storage layout and a default config",
	Long: `Create the storage directories and write config.toml with default values.

An existing config file is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	layout, err := storage.Resolve(homeFlag)
	if err != nil {
		return err
	}
	if err := layout.Ensure(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "storage: %s\nconfig:  %s\n", layout.Root, layout.Config)
	return nil
}
