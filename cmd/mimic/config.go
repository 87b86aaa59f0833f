package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/mimic/config"
	"github.com/lixenwraith/mimic/storage"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	layout, err := storage.Resolve(homeFlag)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(layout)
	if err != nil {
		return err
	}
	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// loadConfig reads the --config file, or the layout's file when present
func loadConfig(layout storage.Layout) (config.Config, error) {
	if configFlag != "" {
		return config.Load(configFlag)
	}
	return config.LoadOrDefault(layout.Config)
}
