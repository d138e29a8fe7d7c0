package grade

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeAnswer canonicalizes typed text for comparison: NFC composition,
// collapsed whitespace and, unless policy is case sensitive, full case
// folding ("STRASSE" and "straße" compare equal).
func NormalizeAnswer(value string, policy Policy) string {
	value = norm.NFC.String(value)
	value = strings.Join(strings.Fields(value), " ")
	if !policy.CaseSensitive {
		value = cases.Fold().String(value)
	}
	return value
}

// Equivalent reports whether given matches expected under policy.
func Equivalent(given, expected string, policy Policy) bool {
	return NormalizeAnswer(given, policy) == NormalizeAnswer(expected, policy)
}
