package models

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no line breaks", "Creamy brie", "Creamy brie"},
		{"empty", "", ""},
		{"unix newline", "Line1\nLine2", "Line1<br />\nLine2"},
		{"windows newline", "Line1\r\nLine2", "Line1<br />\r\nLine2"},
		{"reversed pair", "Line1\n\rLine2", "Line1<br />\n\rLine2"},
		{"old mac newline", "Line1\rLine2", "Line1<br />\rLine2"},
		{"blank line", "a\n\nb", "a<br />\n<br />\nb"},
		{"trailing newline", "a\n", "a<br />\n"},
		{"already normalized", "a<br />\nb", "a<br />\nb"},
		{"multibyte text", "Käse\nfromage", "Käse<br />\nfromage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLineBreaks(tt.in); got != tt.want {
				t.Fatalf("NormalizeLineBreaks(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeLineBreaks_Idempotent(t *testing.T) {
	inputs := []string{
		"Line1\nLine2",
		"a\r\n\r\nb",
		"a\n\rb\rc\n",
		"\n\n\n",
		"plain",
	}
	for _, in := range inputs {
		once := NormalizeLineBreaks(in)
		twice := NormalizeLineBreaks(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestShorten(t *testing.T) {
	t.Run("shorter than limit is returned verbatim", func(t *testing.T) {
		s := strings.Repeat("x", 39)
		if got := Shorten(s); got != s {
			t.Fatalf("expected verbatim, got %q", got)
		}
	})

	t.Run("exactly the limit is truncated", func(t *testing.T) {
		s := strings.Repeat("x", 40)
		want := s + "..."
		if got := Shorten(s); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	})

	t.Run("longer than limit keeps 40 characters", func(t *testing.T) {
		s := strings.Repeat("abcde", 20)
		got := Shorten(s)
		if got != s[:40]+"..." {
			t.Fatalf("unexpected result %q", got)
		}
		if utf8.RuneCountInString(got) != 43 {
			t.Fatalf("expected 43 characters, got %d", utf8.RuneCountInString(got))
		}
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		s := strings.Repeat("é", 39)
		if got := Shorten(s); got != s {
			t.Fatalf("39 two-byte characters must not be truncated, got %q", got)
		}
		long := strings.Repeat("é", 45)
		got := Shorten(long)
		if utf8.RuneCountInString(got) != 43 || !strings.HasSuffix(got, TruncationMarker) {
			t.Fatalf("unexpected truncation %q", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := Shorten(""); got != "" {
			t.Fatalf("expected empty, got %q", got)
		}
	})
}
