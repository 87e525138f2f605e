package models

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Username is a value object holding a valid public user name.
type Username string

const (
	minUsernameLength = 2
	maxUsernameLength = 50
)

// NewUsername constructs a valid Username or returns an error if constraints are violated.
//
// Rules:
//   - 2 to 50 characters
//   - no leading or trailing whitespace
//   - no control characters
//   - no consecutive spaces
func NewUsername(s string) (Username, error) {
	n := utf8.RuneCountInString(s)
	if n < minUsernameLength {
		return "", fmt.Errorf("username must be at least %d characters", minUsernameLength)
	}
	if n > maxUsernameLength {
		return "", fmt.Errorf("username must not exceed %d characters", maxUsernameLength)
	}
	if s != strings.TrimSpace(s) {
		return "", fmt.Errorf("username must not have leading or trailing whitespace")
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("username must not contain control characters")
		}
	}
	if strings.Contains(s, "  ") {
		return "", fmt.Errorf("username must not contain consecutive spaces")
	}
	return Username(s), nil
}

// String returns the underlying string value.
func (u Username) String() string {
	return string(u)
}
