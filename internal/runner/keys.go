package runner

import (
	"sort"
	"strings"
)

// namedKeys maps key names to the VT100 sequences a serial console expects.
var namedKeys = map[string]string{
	"ESC":   "\x1b",
	"ENTER": "\r",
	"TAB":   "\t",
	"DEL":   "\x1b[3~",
	"BKSP":  "\x7f",
	"SPACE": " ",
	"UP":    "\x1b[A",
	"DOWN":  "\x1b[B",
	"RIGHT": "\x1b[C",
	"LEFT":  "\x1b[D",
	"HOME":  "\x1b[1~",
	"END":   "\x1b[4~",
	"PGUP":  "\x1b[5~",
	"PGDN":  "\x1b[6~",
	"F1":    "\x1bOP",
	"F2":    "\x1bOQ",
	"F3":    "\x1bOR",
	"F4":    "\x1bOS",
	"F5":    "\x1b[15~",
	"F6":    "\x1b[17~",
	"F7":    "\x1b[18~",
	"F8":    "\x1b[19~",
	"F9":    "\x1b[20~",
	"F10":   "\x1b[21~",
	"F11":   "\x1b[23~",
	"F12":   "\x1b[24~",
}

// ResolveKey returns the byte sequence for key and a printable name for
// the log. Unknown names are sent verbatim.
func ResolveKey(key string) (seq, name string) {
	upper := strings.ToUpper(strings.TrimSpace(key))
	if seq, ok := namedKeys[upper]; ok {
		return seq, upper
	}
	return key, strings.TrimSpace(strings.NewReplacer("\x1b", "^[", "\r", "\\r", "\n", "\\n").Replace(key))
}

// KeyNames lists the recognised key names, sorted.
func KeyNames() []string {
	names := make([]string, 0, len(namedKeys))
	for name := range namedKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
