// Package prefs stores portctl's UI preferences.
//
// The button layout itself lives in the JSON file passed with --config. This
// package keeps the small amount of per-user state the terminal UI wants to
// restore between runs: the last selected unit type for each layout file and
// a few display options. It is YAML, kept in the platform config directory:
//   - Linux: $XDG_CONFIG_HOME/portctl/prefs.yaml or $HOME/.config/portctl/prefs.yaml
//   - macOS: $HOME/.config/portctl/prefs.yaml
//   - Windows: %LOCALAPPDATA%\portctl\prefs.yaml
//
// Losing the file only loses convenience; callers log and carry on when a
// load or save fails.
package prefs
