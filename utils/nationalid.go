package utils

import "strings"

// NationalIDLength is the digit count every stored national ID must have.
const NationalIDLength = 11

// NormalizeNationalID strips everything but digits. Callers decide whether a
// non-11-digit result is an error; this function only canonicalizes.
func NormalizeNationalID(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatNationalID renders an 11-digit ID in the punctuated display form the
// legacy store uses (XXX.XXX.XXX-XX). IDs of any other length are returned
// unchanged.
func FormatNationalID(digits string) string {
	if len(digits) != NationalIDLength {
		return digits
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
}

// ValidNationalID reports whether raw normalizes to exactly 11 digits.
func ValidNationalID(raw string) bool {
	return len(NormalizeNationalID(raw)) == NationalIDLength
}
