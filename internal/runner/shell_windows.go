//go:build windows

package runner

const shellFlag = "/C"

func defaultShell() []string {
	return []string{"cmd", "/C"}
}
