// Package ui renders the output of the non-interactive portctl commands.
//
// Unlike the control panel in package tui, these components follow a
// "print once and exit" pattern:
//
//   - Header: command banner with the config path and other parameters
//   - CheckList: pass/fail lines for validate
//   - Result: success, failure or warning box with troubleshooting tips
//   - RenderLayout: the configured unit types, groups and buttons as a tree
//   - Confirm: a y/N prompt behind a warning box
//
// Example:
//
//	fmt.Println(ui.NewHeader("Config check", "portctl validate",
//	    ui.Param{Key: "Config", Value: path}).Render())
//	checks := ui.NewCheckList("Prerequisites")
//	checks.Pass("xterm", "/usr/bin/xterm")
//	fmt.Print(checks.Render())
//
// Diagnostic logging stays silent unless PORTCTL_LOG_LEVEL is set, so the
// curated output is never interleaved with log lines.
package ui
