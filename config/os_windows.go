//go:build windows

package config

import (
	"os"
	"strings"
	"unicode"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

// CleanFileName makes single path segment out of in: characters reserved by
// windows and control characters are dropped together with trailing dots
// and surrounding spaces.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(`<>":/\|?*`+string(os.PathListSeparator), sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimRight(strings.TrimSpace(out), ". ")
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}

// windows 10 and later understand VT100 sequences once asked.
func vtCapable() bool {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("CurrentMajorVersionNumber")
	return err == nil && v >= 10
}

// EnableColorOutput checks if colorized output is possible and
// enables proper VT100 sequence processing in Windows console.
func EnableColorOutput(stream *os.File) bool {
	if !vtCapable() || !term.IsTerminal(int(stream.Fd())) {
		return false
	}

	const enableVirtualTerminalProcessing uint32 = 0x4

	var mode uint32
	if err := windows.GetConsoleMode(windows.Handle(stream.Fd()), &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(windows.Handle(stream.Fd()), mode|enableVirtualTerminalProcessing) == nil
}
