package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
	"unicode"
)

const specialChars = "!@#$%^&*"

// GeneratePassword synthesises a bootstrap password from an employee's name and hire
// date: two uppercase initials, the hire year, one special character and one digit.
// The result is always 8 characters.
//
// The space of generated passwords for a known name and year is tiny (80
// combinations), so the credential is only usable as a one-time bootstrap: the
// account is flagged to force a password change on first login.
func GeneratePassword(name string, hireDate time.Time) string {
	initials := deriveInitials(name)

	year := hireDate.Year()
	if hireDate.IsZero() {
		year = time.Now().Year()
	}

	var b strings.Builder
	b.Grow(8)
	b.WriteString(initials)
	b.WriteString(formatYear(year))
	b.WriteByte(specialChars[randomIndex(len(specialChars))])
	b.WriteByte(byte('0') + byte(randomIndex(10)))
	return b.String()
}

// deriveInitials returns two uppercase letters: first letters of the first and last
// name tokens, the first two letters of a single token, or "US" when the name is
// unusable.
func deriveInitials(name string) string {
	tokens := strings.Fields(name)
	switch {
	case len(tokens) >= 2:
		first := firstLetter(tokens[0])
		last := firstLetter(tokens[len(tokens)-1])
		if first != 0 && last != 0 {
			return string([]rune{first, last})
		}
	case len(tokens) == 1:
		runes := []rune(tokens[0])
		if len(runes) >= 2 {
			return strings.ToUpper(string(runes[:2]))
		}
	}
	return "US"
}

func firstLetter(token string) rune {
	for _, r := range token {
		return unicode.ToUpper(r)
	}
	return 0
}

func formatYear(year int) string {
	digits := [4]byte{}
	for i := 3; i >= 0; i-- {
		digits[i] = byte('0') + byte(year%10)
		year /= 10
	}
	return string(digits[:])
}

func randomIndex(n int) int {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the platform source is broken; fall back to a
		// fixed index rather than panicking in a credential path.
		return 0
	}
	return int(idx.Int64())
}
