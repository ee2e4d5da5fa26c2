// Package auth authenticates presented credentials against the account
// store and records login bookkeeping.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kasuganosora/clientauth/account"
	"github.com/kasuganosora/clientauth/audit"
	"github.com/kasuganosora/clientauth/model"
	"github.com/kasuganosora/clientauth/password"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is the single failure returned for an unknown
// identifier, a wrong secret, an unusable password or a locked account.
// Callers cannot tell these apart, which keeps identifier enumeration
// off the table.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Backend resolves an identifier to an account and verifies the
// presented secret. On success it stamps last_login through the login
// handler and returns the account.
type Backend struct {
	db       *gorm.DB
	accounts *account.Manager
	hasher   *password.Hasher
	logins   *LastLoginUpdater
	audit    *audit.Service
	logger   *zap.Logger
	decoy    string
}

// NewBackend creates a new Backend. auditSvc may be nil to disable
// event recording; clock may be nil to use time.Now.
func NewBackend(db *gorm.DB, accounts *account.Manager, hasher *password.Hasher, auditSvc *audit.Service, logger *zap.Logger, clock func() time.Time) *Backend {
	// A throwaway digest to verify against when the identifier does not
	// resolve, so a miss costs the same hashing work as a mismatch.
	decoy, _ := hasher.Hash("decoy")
	return &Backend{
		db:       db,
		accounts: accounts,
		hasher:   hasher,
		logins:   NewLastLoginUpdater(db, clock),
		audit:    auditSvc,
		logger:   logger,
		decoy:    decoy,
	}
}

// Authenticate verifies secret for the account identified by
// identifier (an email, normalized before lookup). The failure mode is
// uniform; on success the account is returned with last_login updated.
func (b *Backend) Authenticate(ctx context.Context, identifier, secret string) (*model.Account, error) {
	acc, err := b.accounts.GetByNaturalKey(ctx, identifier)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			b.hasher.Verify(secret, b.decoy)
			b.recordAttempt(identifier, nil, false)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok := b.hasher.Verify(secret, acc.PasswordHash)
	if !ok || acc.AccountLocked {
		b.recordAttempt(acc.Email, &acc.ID, false)
		return nil, ErrInvalidCredentials
	}

	if err := b.logins.OnLoginSucceeded(ctx, acc); err != nil {
		// The login itself stands; only the bookkeeping write failed.
		b.logger.Warn("last_login update failed",
			zap.Int64("account_id", acc.ID), zap.Error(err))
	}
	b.recordAttempt(acc.Email, &acc.ID, true)
	return acc, nil
}

// GetByID returns the account with the given surrogate id, or
// account.ErrNotFound. No side effects.
func (b *Backend) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	var acc model.Account
	err := b.db.WithContext(ctx).First(&acc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrNotFound
		}
		return nil, fmt.Errorf("auth: lookup by id: %w", err)
	}
	return &acc, nil
}

func (b *Backend) recordAttempt(email string, accountID *int64, success bool) {
	if b.audit != nil {
		b.audit.Log(audit.Entry{
			AccountID: accountID,
			Email:     account.NormalizeEmail(email),
			Action:    audit.ActionLogin,
			Success:   success,
		})
	}
	if !success {
		b.logger.Debug("authentication failed")
	}
}
