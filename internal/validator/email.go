// Package validator checks submitted email addresses against a fixed list of
// syntax rules and reports every rule a given address breaks.
//
// The rule list is deliberately pragmatic. It does not parse RFC 5322 quoted
// strings or comments, and it does not know about internationalized domains.
package validator

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ValidMarker is what the outside world sees in place of the message list
// for an accepted address.
const ValidMarker = "Valido"

const (
	MaxLocalPartLength  = 64
	MaxDomainPartLength = 255
)

// Characters that may not sit directly before or after a dot in the domain.
var notAllowedNextToDot = []byte{
	' ', ',', ';', ':', '!', '?', '\'', '"', '+', '-', '_', '*', '/', '$', '%', '&', '=', '\r', '\n', '\t',
}

// Address is the raw input split on its first at-sign. It is not normalized.
type Address struct {
	Raw    string
	Local  string
	Domain string
	HasAt  bool
}

// Split splits email on its first "@". Without an at-sign both parts are empty.
func Split(email string) Address {
	addr := Address{Raw: email}
	if at := strings.IndexByte(email, '@'); at >= 0 {
		addr.HasAt = true
		addr.Local = email[:at]
		addr.Domain = email[at+1:]
	}
	return addr
}

// Validate runs every rule against email in table order. It never stops at
// the first failure and never panics, whatever the input.
func Validate(email string) Outcome {
	addr := Split(email)

	var violations []Violation
	for _, r := range rules {
		if r.fails(addr) {
			violations = append(violations, Violation{Rule: r.ID, Message: r.Message})
		}
	}
	return Outcome{Violations: violations}
}

// byteAt returns the byte at i, or false when i is out of range.
func byteAt(s string, i int) (byte, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	return s[i], true
}

// lastChar returns the final character of s, or false for an empty string.
func lastChar(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[len(s)-size:], true
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}

func hasConsecutiveDots(s string) bool {
	return strings.Contains(s, "..")
}

func isNotAllowedNextToDot(b byte, ok bool) bool {
	if !ok {
		return false
	}
	for _, n := range notAllowedNextToDot {
		if b == n {
			return true
		}
	}
	return false
}

// hasBadDotNeighbour reports whether any dot in s is directly preceded or
// followed by one of notAllowedNextToDot.
func hasBadDotNeighbour(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '.' {
			continue
		}
		if isNotAllowedNextToDot(byteAt(s, i-1)) || isNotAllowedNextToDot(byteAt(s, i+1)) {
			return true
		}
	}
	return false
}

// isCaseless reports whether upper- and lower-casing c give the same text,
// which is the case for digits and symbols but not for letters.
// Casers hold state, so a fresh pair is made per call.
func isCaseless(c string) bool {
	upper := cases.Upper(language.Und).String(c)
	lower := cases.Lower(language.Und).String(c)
	return upper == lower
}
