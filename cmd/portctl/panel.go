package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/portctl/internal/config"
	"github.com/muurk/portctl/internal/logbus"
	"github.com/muurk/portctl/internal/logging"
	"github.com/muurk/portctl/internal/prefs"
	"github.com/muurk/portctl/internal/runner"
	"github.com/muurk/portctl/internal/session"
	"github.com/muurk/portctl/internal/tui"
	"github.com/muurk/portctl/internal/ui"
)

var unitTypeFlag string

func init() {
	rootCmd.Flags().StringVarP(&unitTypeFlag, "unit-type", "u", "", "Unit type to show first (default: the one used last)")
}

func runPanel(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
		return fmt.Errorf("the control panel needs an interactive terminal; use 'portctl show' to print the layout")
	}

	store, err := config.OpenStore(env.ConfigPath)
	if err != nil {
		return err
	}

	var runnerOpts []runner.Option
	if env.Shell != "" {
		argv, err := runner.ParseShell(env.Shell)
		if err != nil {
			return fmt.Errorf("PORTCTL_SHELL: %w", err)
		}
		runnerOpts = append(runnerOpts, runner.WithShell(argv...))
	}

	reg, prefsPath, err := prefs.Load()
	if err != nil {
		logging.Warn("preferences unavailable, using defaults", zap.Error(err))
		reg, prefsPath = prefs.NewRegistry(), ""
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	events, err := store.Watch(ctx, config.DefaultDebounce)
	if err != nil {
		logging.Warn("config watcher unavailable", zap.Error(err))
		events = nil
	}

	bus := logbus.NewBus(0)
	defer bus.Close()
	buf := logbus.NewBuffer(0)

	model := tui.New(tui.Options{
		Store:      store,
		Runner:     runner.New(bus, runnerOpts...),
		Sessions:   session.NewManager(buf),
		Bus:        bus,
		Log:        buf,
		Prefs:      reg,
		PrefsPath:  prefsPath,
		FileEvents: events,
		UnitType:   unitTypeFlag,
	})

	var programOpts []tea.ProgramOption
	if !env.NoAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		return fmt.Errorf("control panel error: %w", err)
	}
	return nil
}
