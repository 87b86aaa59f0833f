package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mimic",
	Short: "Multi-window front end for emulated terminal computers",
	Long: `mimic presents emulated terminal computers as windows inside one terminal.

Each window is an independent instance. Inside a window:
  Ctrl+N / Ctrl+Shift+N   open a normal / advanced computer
  Ctrl+B / Ctrl+Shift+B   open a normal / advanced pocket computer
                          (Ctrl+Alt+N / Ctrl+Alt+B where the terminal drops Shift)
  Ctrl+A                  attach or detach the modem
  Ctrl+V                  paste the clipboard
  hold Ctrl+R / S / T     reboot / shut down / terminate

Desktop keys:
  Ctrl+W   close the focused window
  Ctrl+Q   close every window
  Alt+Tab  cycle focus`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMimic,
}

var (
	homeFlag     string
	configFlag   string
	advancedFlag bool
	pocketFlag   bool
	countFlag    int
	backendFlag  string
	debugFlag    bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&homeFlag, "home", "", "storage root (default $MIMIC_HOME or <user config dir>/mimic)")
	pf.StringVarP(&configFlag, "config", "c", "", "config file (default <home>/config.toml)")

	f := rootCmd.Flags()
	f.BoolVarP(&advancedFlag, "advanced", "a", false, "start with advanced computers")
	f.BoolVarP(&pocketFlag, "pocket", "p", false, "start with pocket computers")
	f.IntVarP(&countFlag, "count", "n", 1, "number of computers to open at start")
	f.StringVar(&backendFlag, "backend", "", "backend kind override: echo or bridge")
	f.BoolVar(&debugFlag, "debug", false, "write a debug log to <home>/logs/mimic.log")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mimic:", err)
		os.Exit(1)
	}
}
