// Package account owns account provisioning and natural-key lookup.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kasuganosora/clientauth/audit"
	"github.com/kasuganosora/clientauth/model"
	"github.com/kasuganosora/clientauth/password"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Extra enumerates the optional fields recognized at creation time.
// Nil flag pointers mean "use the default for this creation path".
type Extra struct {
	FirstName   string
	LastName    string
	IsStaff     *bool
	IsSuperuser *bool
}

// Manager creates and looks up accounts. Email uniqueness is enforced
// by the store's unique index, so concurrent creation of the same
// normalized email cannot race past an application-level check.
type Manager struct {
	db     *gorm.DB
	hasher *password.Hasher
	audit  *audit.Service
	logger *zap.Logger
}

// NewManager creates a new Manager. auditSvc may be nil to disable
// event recording.
func NewManager(db *gorm.DB, hasher *password.Hasher, auditSvc *audit.Service, logger *zap.Logger) *Manager {
	return &Manager{db: db, hasher: hasher, audit: auditSvc, logger: logger}
}

// CreateUser provisions a regular account. Privilege flags default to
// false unless overridden through extra. An empty pw produces an
// account that can never authenticate (unusable password sentinel).
func (m *Manager) CreateUser(ctx context.Context, email, pw string, extra Extra) (*model.Account, error) {
	return m.create(ctx, email, pw, extra, false, false)
}

// CreateSuperuser provisions a staff superuser account. Explicitly
// overriding either privilege flag to false is rejected; both must end
// up true.
func (m *Manager) CreateSuperuser(ctx context.Context, email, pw string, extra Extra) (*model.Account, error) {
	if extra.IsStaff != nil && !*extra.IsStaff {
		return nil, fmt.Errorf("%w: superuser must have is_staff=true", ErrValidation)
	}
	if extra.IsSuperuser != nil && !*extra.IsSuperuser {
		return nil, fmt.Errorf("%w: superuser must have is_superuser=true", ErrValidation)
	}
	return m.create(ctx, email, pw, extra, true, true)
}

// SignupRequest is the form-like provisioning input, with a password
// confirmation and the required profile fields.
type SignupRequest struct {
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
}

// Signup provisions a regular account from a SignupRequest, applying
// the stricter front-end policy: the password must be confirmed and
// first/last name are required.
func (m *Manager) Signup(ctx context.Context, req SignupRequest) (*model.Account, error) {
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if req.Password != req.PasswordConfirm {
		return nil, fmt.Errorf("%w: passwords do not match", ErrValidation)
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return nil, fmt.Errorf("%w: first name is required", ErrValidation)
	}
	if strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: last name is required", ErrValidation)
	}
	return m.CreateUser(ctx, req.Email, req.Password, Extra{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
}

// GetByNaturalKey returns the account whose stored email matches the
// normalized form of email, or ErrNotFound.
func (m *Manager) GetByNaturalKey(ctx context.Context, email string) (*model.Account, error) {
	var acc model.Account
	err := m.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("account: lookup: %w", err)
	}
	return &acc, nil
}

func (m *Manager) create(ctx context.Context, email, pw string, extra Extra, defStaff, defSuper bool) (*model.Account, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: a valid email address is required", ErrValidation)
	}

	isStaff := flagOrDefault(extra.IsStaff, defStaff)
	isSuper := flagOrDefault(extra.IsSuperuser, defSuper)
	if isSuper && !isStaff {
		return nil, fmt.Errorf("%w: superuser must have is_staff=true", ErrValidation)
	}

	hash := password.UnusablePassword()
	if pw != "" {
		var err error
		hash, err = m.hasher.Hash(pw)
		if err != nil {
			return nil, fmt.Errorf("account: hashing password: %w", err)
		}
	}

	acc := &model.Account{
		Email:        email,
		PasswordHash: hash,
		FirstName:    extra.FirstName,
		LastName:     extra.LastName,
		IsStaff:      isStaff,
		IsSuperuser:  isSuper,
	}
	if err := m.db.WithContext(ctx).Create(acc).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("account: creating %q: %w", email, err)
	}

	if m.audit != nil {
		m.audit.Log(audit.Entry{
			AccountID: &acc.ID,
			Email:     acc.Email,
			Action:    audit.ActionAccountCreated,
			Success:   true,
			Detail:    map[string]bool{"is_staff": isStaff, "is_superuser": isSuper},
		})
	}
	m.logger.Info("account created",
		zap.String("email", acc.Email),
		zap.Bool("is_superuser", acc.IsSuperuser),
	)
	return acc, nil
}

func flagOrDefault(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}
