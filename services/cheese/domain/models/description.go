package models

import "strings"

const (
	// LineBreakMarkup is inserted before every line break of a stored description.
	LineBreakMarkup = "<br />"

	// ShortDescriptionLength is the number of characters kept by ShortDescription.
	ShortDescriptionLength = 40

	// TruncationMarker is appended to a shortened description.
	TruncationMarker = "..."
)

// NormalizeLineBreaks inserts LineBreakMarkup before each line break
// ("\r\n", "\n\r", "\n" or "\r") that is not already preceded by it.
// Applying it to its own output returns the output unchanged.
func NormalizeLineBreaks(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8*strings.Count(s, "\n"))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\n' && c != '\r' {
			b.WriteByte(c)
			i++
			continue
		}

		n := 1
		if i+1 < len(s) && (s[i+1] == '\n' || s[i+1] == '\r') && s[i+1] != c {
			n = 2
		}
		if !strings.HasSuffix(b.String(), LineBreakMarkup) {
			b.WriteString(LineBreakMarkup)
		}
		b.WriteString(s[i : i+n])
		i += n
	}
	return b.String()
}

// Shorten returns s unchanged when it has fewer than ShortDescriptionLength
// characters, otherwise its first ShortDescriptionLength characters followed
// by TruncationMarker. Length is counted in runes.
func Shorten(s string) string {
	r := []rune(s)
	if len(r) < ShortDescriptionLength {
		return s
	}
	return string(r[:ShortDescriptionLength]) + TruncationMarker
}
