package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/portctl/internal/command"
	"github.com/muurk/portctl/internal/config"
	"github.com/muurk/portctl/internal/session"
	"github.com/muurk/portctl/internal/ui"
)

var (
	outputFormat string
	forceInit    bool
)

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(initCmd)

	showCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json, yaml)")
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file without asking")
}

// validateCmd checks a layout without opening the panel.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the button layout and launcher prerequisites",
	Long: `Load and validate the button layout, fill in every button's
placeholders, and check that the programs needed to open a screen session
are installed.

Exits with status 1 if anything fails.`,
	Example: `  # Check ./config.json
  portctl validate

  # Check another file
  portctl validate --config /etc/portctl/bench.json`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.NewHeader("Config check", "portctl validate",
		ui.Param{Key: "Config", Value: env.ConfigPath}).Render())
	fmt.Fprintln(out)

	cfg, err := config.Load(env.ConfigPath)
	if err != nil {
		fmt.Fprintln(out, ui.NewFailureResult("Layout could not be loaded", err, loadTroubleshooting(err)...).Render())
		return errChecksFailed
	}

	settings := cfg.Settings.Strings()
	buttons := ui.NewCheckList("Buttons")
	for _, name := range cfg.UnitTypeNames() {
		for _, g := range cfg.UnitType(name).ButtonGroups {
			for _, b := range g.Buttons {
				label := fmt.Sprintf("%s / %s / %s", name, g.Title, b.Text)
				if !b.Action.NeedsPayload() {
					buttons.Pass(label, string(b.Action))
					continue
				}
				payload, err := command.Format(b.Payload(), settings)
				if err != nil {
					buttons.Fail(label, err)
					continue
				}
				buttons.Pass(label, payload)
			}
		}
	}
	fmt.Fprintln(out, buttons.Render())

	prereqs := ui.NewCheckList("Screen session")
	result := session.CheckPrerequisites(settings, nil)
	for _, c := range result.Checks {
		if c.Available {
			prereqs.Pass(c.Name, c.Path)
		} else {
			prereqs.Add(c.Name, ui.CheckFailed, c.Message)
		}
	}
	fmt.Fprintln(out, prereqs.Render())

	if failed := buttons.Failed() + prereqs.Failed(); failed > 0 {
		fmt.Fprintln(out, ui.NewFailureResult("Layout has problems",
			fmt.Errorf("%d check(s) failed", failed),
			"Buttons with unknown placeholders are disabled in the panel",
			"Install the missing programs or set terminal_command in settings").Render())
		return errChecksFailed
	}

	fmt.Fprintln(out, ui.NewSuccessResult("Layout is valid",
		ui.Param{Key: "Unit types", Value: strconv.Itoa(len(cfg.UnitTypes))},
		ui.Param{Key: "Buttons", Value: strconv.Itoa(len(buttons.Checks))},
	).Render())
	return nil
}

func loadTroubleshooting(err error) []string {
	var (
		nf *config.NotFoundError
		pe *config.ParseError
		ms *config.MissingSettingError
	)
	switch {
	case errors.As(err, &nf):
		return []string{"Run 'portctl init' to write a starter layout", "Or pass --config with the path to your layout"}
	case errors.As(err, &pe):
		return []string{"Check the JSON syntax near the reported line"}
	case errors.As(err, &ms):
		return []string{fmt.Sprintf("Add %q to the settings object", ms.Name)}
	}
	return nil
}

// showCmd prints the layout.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the button layout",
	Long: `Print the settings and every unit type, group and button.

The text format fills in each button's placeholders; json and yaml print
the layout as stored.`,
	Example: `  # Tree view
  portctl show

  # YAML for reading, JSON for scripting
  portctl show --format yaml
  portctl show --format json`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env.ConfigPath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch outputFormat {
	case "json":
		data, err := config.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = out.Write(data)
		return err
	case "yaml":
		data, err := toYAML(cfg)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "text":
		fmt.Fprint(out, ui.RenderLayout(cfg))
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", outputFormat)
	}
}

// toYAML converts through the JSON form so keys and omitted fields match
// the file.
func toYAML(cfg *config.Config) ([]byte, error) {
	data, err := config.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert to YAML: %w", err)
	}
	plainStyle(&doc)
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return out, nil
}

// plainStyle drops the flow and quoting style inherited from JSON.
func plainStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle | yaml.DoubleQuotedStyle
	for _, c := range n.Content {
		plainStyle(c)
	}
}

// initCmd writes a starter layout.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter button layout",
	Long: `Write a small example layout to the config path so the panel has
something to show. Asks before replacing an existing file.`,
	Example: `  portctl init
  portctl init --config bench.json --force`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := env.ConfigPath
	if _, err := os.Stat(path); err == nil && !forceInit {
		ok := ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "File exists",
			[]string{path + " already exists", "Its buttons will be replaced by the starter layout"},
			"Overwrite it?")
		if !ok {
			return nil
		}
	}

	if err := config.Save(config.Starter(), path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.NewSuccessResult("Starter layout written",
		ui.Param{Key: "Config", Value: path},
		ui.Param{Key: "Next", Value: "edit serial_device, then run portctl"},
	).Render())
	return nil
}

// errChecksFailed is returned after the report has been printed.
var errChecksFailed = errors.New("validation failed")
