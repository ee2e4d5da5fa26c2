package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/kasuganosora/clientauth/model"
	"gorm.io/gorm"
)

// LastLoginUpdater reacts to successful authentication by stamping the
// account's last_login column. The backend calls it directly after
// verification, so ordering is explicit and testable.
type LastLoginUpdater struct {
	db  *gorm.DB
	now func() time.Time
}

// NewLastLoginUpdater creates a LastLoginUpdater. clock may be nil to
// use time.Now.
func NewLastLoginUpdater(db *gorm.DB, clock func() time.Time) *LastLoginUpdater {
	if clock == nil {
		clock = time.Now
	}
	return &LastLoginUpdater{db: db, now: clock}
}

// OnLoginSucceeded persists last_login and nothing else. The
// single-column update must not clobber concurrent edits to other
// fields. acc is updated in place on success.
func (u *LastLoginUpdater) OnLoginSucceeded(ctx context.Context, acc *model.Account) error {
	now := u.now()
	err := u.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", acc.ID).
		Update("last_login", now).Error
	if err != nil {
		return fmt.Errorf("auth: updating last_login: %w", err)
	}
	acc.LastLogin = &now
	return nil
}
