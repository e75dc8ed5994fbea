//go:build !windows

package config

import (
	"os"
	"strings"
	"unicode"

	"golang.org/x/term"
)

// CleanFileName makes single path segment out of in: separators and control
// characters are dropped, as are leading dots and surrounding spaces, so
// segment could never become hidden or climb up.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym == os.PathSeparator || sym == os.PathListSeparator || unicode.IsControl(sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimLeft(strings.TrimSpace(out), ".")
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}

// EnableColorOutput reports whether stream is a terminal able to show
// colored log levels.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
