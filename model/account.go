package model

import (
	"strings"
	"time"
)

// Account is a user account keyed by its email address. The stored
// email is always in normalized form (lower-cased domain part).
type Account struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;size:128;not null" json:"email"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	FirstName    string `gorm:"size:30" json:"first_name"`
	LastName     string `gorm:"size:30" json:"last_name"`

	IsStaff     bool `gorm:"default:false" json:"is_staff"`
	IsSuperuser bool `gorm:"default:false" json:"is_superuser"`

	// AccountLocked refuses authentication outright when set.
	// FailedLoginAttempts is bookkeeping for a future lockout policy;
	// nothing in this module increments or resets it yet.
	AccountLocked       bool  `gorm:"default:false" json:"account_locked"`
	FailedLoginAttempts *uint `gorm:"default:0" json:"failed_login_attempts"`

	DateJoined time.Time  `gorm:"autoCreateTime" json:"date_joined"`
	LastLogin  *time.Time `json:"last_login"`
}

// FullName returns the first and last name joined by a space, trimmed.
func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// ShortName returns the first name.
func (a *Account) ShortName() string {
	return a.FirstName
}

// EmailAddress returns the stored (normalized) email.
func (a *Account) EmailAddress() string {
	return a.Email
}

// NaturalKey returns the human-meaningful unique key of the account.
func (a *Account) NaturalKey() string {
	return a.Email
}
