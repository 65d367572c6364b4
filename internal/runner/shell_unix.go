//go:build !windows

package runner

const shellFlag = "-c"

func defaultShell() []string {
	return []string{"/bin/sh", "-c"}
}
