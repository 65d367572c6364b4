// Package logging provides the diagnostics log for portctl.
//
// This is not the log pane the operator sees (that is package logbus). It is a
// zap logger for troubleshooting the tool itself: job dispatch, session spawn
// and kill, config saves and reloads. It is silent unless a level is set:
//
//	PORTCTL_LOG_LEVEL=debug portctl --config bench.json
//
// Output goes to a size-rotated file (lumberjack) because the terminal UI owns
// the screen. The default location is <user cache dir>/portctl/portctl.log and
// PORTCTL_LOG_FILE or --log-file override it.
//
// # Usage
//
//	if err := logging.Initialize(logging.Options{Level: "info"}); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
//	logging.LogSession("started", pid, argv)
//
// All functions are safe for concurrent use.
package logging
