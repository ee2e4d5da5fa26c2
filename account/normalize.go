package account

import "strings"

// NormalizeEmail canonicalizes an email address for storage and lookup.
// Surrounding whitespace is trimmed and the domain part after the last
// "@" is lower-cased; the local part keeps its case. Input without an
// "@" is returned trimmed but otherwise unchanged. Idempotent.
func NormalizeEmail(raw string) string {
	email := strings.TrimSpace(raw)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
