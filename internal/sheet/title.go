package sheet

import (
	"strings"
	"unicode/utf8"
)

const (
	titleMaxChars     = 30
	titleCharsPerLine = 10
	titleMaxLines     = 3
)

// WrapTitle truncates title to 30 runes on a word boundary and wraps it
// greedily into at most three lines of up to ten runes. A word longer than a
// line stays whole on its own line.
func WrapTitle(title string) string {
	words := strings.Fields(truncate(strings.TrimSpace(title), titleMaxChars))

	var lines []string
	cur := ""
	for _, w := range words {
		switch {
		case cur == "":
			cur = w
		case utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(w) <= titleCharsPerLine:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	if len(lines) > titleMaxLines {
		lines = lines[:titleMaxLines]
	}

	return strings.Join(lines, "\n")
}

// truncate cuts s to at most limit runes, backing off to the last space.
// It hard-cuts only when the first word alone exceeds limit.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}

	cut := string(r[:limit])
	if r[limit] == ' ' {
		return strings.TrimSpace(cut)
	}
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		return strings.TrimSpace(cut[:i])
	}

	return cut
}
