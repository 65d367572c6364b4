//go:build windows

package session

func defaultLauncher(device, baud string) []string {
	return []string{"putty", "-serial", device, "-sercfg", baud}
}

func programsIn(argv []string) []string {
	return []string{argv[0]}
}
