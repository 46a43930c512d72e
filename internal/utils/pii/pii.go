package pii

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s.-]{7,}\d`)
)

// Email returns a stable short hash for an email address so log lines can be
// correlated without storing the address.
func Email(address string) string {
	if address == "" {
		return ""
	}
	return "[EMAIL:" + hash(address) + "]"
}

// Text hashes email addresses and masks phone numbers found in free text.
func Text(input string) string {
	out := emailPattern.ReplaceAllStringFunc(input, Email)
	return phonePattern.ReplaceAllString(out, "[PHONE:REDACTED]")
}

func hash(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])[:8]
}
