// Package textwrap breaks catalog option labels into short lines.
package textwrap

import "strings"

// DefaultWidth is the line width used for option labels.
const DefaultWidth = 75

// Wrap splits text into lines of at most width runes. A line ends after
// the last ';' that fits, otherwise at the last space that fits, otherwise
// exactly at width. Lines are trimmed of surrounding spaces.
func Wrap(text string, width int) string {
	return strings.Join(Lines(text, width), "\n")
}

// Lines is Wrap returning the individual lines.
func Lines(text string, width int) []string {
	if width <= 0 {
		width = DefaultWidth
	}

	rs := []rune(text)

	var lines []string

	for len(rs) > width {
		cut := width

		if i := lastIndex(rs[:width], ';'); i >= 0 {
			cut = i + 1
		} else if i := lastIndex(rs[:width], ' '); i > 0 {
			cut = i
		}

		lines = append(lines, strings.TrimSpace(string(rs[:cut])))
		rs = []rune(strings.TrimSpace(string(rs[cut:])))
	}

	return append(lines, string(rs))
}

func lastIndex(rs []rune, r rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == r {
			return i
		}
	}

	return -1
}
