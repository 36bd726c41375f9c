package inspect

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripControl removes escape sequences and C0/C1 control characters from captured text
// so it can be written to a terminal as plain text. Newlines and tabs are kept.
func StripControl(s string) string {
	if s == "" {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20, r == 0x7f, r >= 0x80 && r <= 0x9f:
			return -1
		}
		return r
	}, ansi.Strip(s))
}
