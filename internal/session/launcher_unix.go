//go:build !windows

package session

func defaultLauncher(device, baud string) []string {
	return []string{"xterm", "-bg", "black", "-fg", "white", "-e", "screen", device, baud}
}

// programsIn lists the programs an argv depends on: the terminal itself
// and, for xterm -e, the program it runs.
func programsIn(argv []string) []string {
	programs := []string{argv[0]}
	for i, arg := range argv {
		if arg == "-e" && i+1 < len(argv) {
			programs = append(programs, argv[i+1])
			break
		}
	}
	return programs
}
