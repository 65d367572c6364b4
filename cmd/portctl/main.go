// Portctl is a terminal control panel for serial-attached hardware.
//
// Buttons defined in a JSON layout send strings to a serial device, run
// local shell commands, or open a terminal session on the device. Buttons
// are grouped by unit type so one file can describe a whole bench.
//
// Usage:
//
//	portctl [command] [flags]
//
// Running without arguments opens the control panel.
// See 'portctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/portctl/internal/appenv"
	"github.com/muurk/portctl/internal/logging"
	"github.com/muurk/portctl/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.Sync()
		os.Exit(1)
	}
	logging.Sync()
}

// Global flags
var (
	configPath string
	logLevel   string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "portctl",
	Short: "Terminal control panel for serial devices",
	Long: `A terminal control panel for serial-attached hardware.

Buttons are read from a JSON layout (config.json by default). Each button
sends a string to the serial device, runs a local command, presses a BIOS
key, or opens and closes a screen session on the device.

If no command is specified, the control panel opens.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: runPanel,
}

// env is filled by setup before any command runs.
var env = appenv.Default()

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Button layout file (default $PORTCTL_CONFIG or ./config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Diagnostics log level: debug, info, warn, error (default $PORTCTL_LOG_LEVEL, silent)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Diagnostics log file (default $PORTCTL_LOG_FILE or the user cache dir)")

	rootCmd.AddCommand(versionCmd)
}

// setup merges flags over the environment and starts diagnostics logging.
func setup(cmd *cobra.Command) error {
	loaded, err := appenv.Load()
	if err != nil {
		return err
	}
	env = loaded

	if cmd.Flags().Changed("config") {
		env.ConfigPath = configPath
	}
	if logLevel != "" {
		env.LogLevel = logLevel
	}
	if logFile != "" {
		env.LogFile = logFile
	}

	if err := logging.Initialize(logging.Options{Level: env.LogLevel, File: env.LogFile}); err != nil {
		return fmt.Errorf("failed to start logging: %w", err)
	}
	logging.Debug("portctl starting")
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("portctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
