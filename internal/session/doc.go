// Package session starts and stops the external serial terminal.
//
// A Manager is either Idle or Running. Open spawns the terminal program
// for the configured device and baud rate:
//
//	xterm -bg black -fg white -e screen <serial_device> <serial_baudrate>   (Unix)
//	putty -serial <serial_device> -sercfg <serial_baudrate>                (Windows)
//
// A terminal_command setting replaces the built-in launcher; it is
// formatted with the settings and split with shell quoting rules.
//
// Close asks the process to exit, waits for a grace period and kills it if
// it is still there. At most one session exists at a time. The Manager is
// not safe for concurrent use; the UI calls it from its update loop.
package session
