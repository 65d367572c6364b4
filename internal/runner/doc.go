// Package runner executes button actions off the UI goroutine.
//
// Every RunLocal, SendSerial and SendBIOSKey call starts its own goroutine.
// Jobs are not pooled, queued, cancelled or retried. Each job reports its
// progress to a logbus.Emitter in order, so lines from one job never
// reorder even when several jobs interleave.
//
// Local commands go through the platform shell (/bin/sh -c, or cmd /C on
// Windows). Serial writes open the device path write-only, write the
// payload, and close it again; there is no read-back.
package runner
