package display

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"
)

// DefaultWidth fits a classic 80 column terminal.
const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth.
func Wrap(text string) string {
	return WrapWidth(text, DefaultWidth)
}

// WrapWidth word-wraps text to width, also breaking after hyphens so long
// compound item names do not overflow. Existing line breaks are kept and
// trailing spaces left by the wrapper are trimmed.
func WrapWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	w := wordwrap.NewWriter(width)
	w.Breakpoints = []rune{'-'}
	w.KeepNewlines = true
	_, _ = w.Write([]byte(text))
	_ = w.Close()

	lines := strings.Split(w.String(), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
