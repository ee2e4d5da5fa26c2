package account

import (
	"errors"
	"strings"
)

var (
	// ErrValidation rejects a provisioning request with a missing or
	// inconsistent field. The wrapped message names the field.
	ErrValidation = errors.New("account: invalid")

	// ErrDuplicateEmail rejects creation when the normalized email is
	// already registered.
	ErrDuplicateEmail = errors.New("account: email already registered")

	// ErrNotFound signals a lookup miss.
	ErrNotFound = errors.New("account: not found")
)

// isUniqueViolation detects duplicate-key errors from common database drivers.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") ||
		strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "already exists")
}
