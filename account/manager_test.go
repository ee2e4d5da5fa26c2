package account_test

import (
	"context"
	"testing"

	"github.com/kasuganosora/clientauth/account"
	"github.com/kasuganosora/clientauth/password"
	"github.com/kasuganosora/clientauth/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newManager(t *testing.T) *account.Manager {
	db := testutil.SetupTestDB(t)
	return account.NewManager(db, testutil.NewTestHasher(), nil, zap.NewNop())
}

func boolPtr(b bool) *bool { return &b }

func TestCreateUserDefaults(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	acc, err := m.CreateUser(ctx, "alice@Example.COM", "pw12345", account.Extra{
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", acc.Email)
	assert.False(t, acc.IsStaff)
	assert.False(t, acc.IsSuperuser)
	assert.False(t, acc.AccountLocked)
	assert.Nil(t, acc.LastLogin)
	assert.False(t, acc.DateJoined.IsZero())
	assert.True(t, password.IsUsable(acc.PasswordHash))
}

func TestCreateUserEmptyEmail(t *testing.T) {
	m := newManager(t)

	for _, email := range []string{"", "   "} {
		_, err := m.CreateUser(context.Background(), email, "pw", account.Extra{})
		assert.ErrorIs(t, err, account.ErrValidation, "email %q", email)
	}
}

func TestCreateUserWithoutPassword(t *testing.T) {
	m := newManager(t)

	acc, err := m.CreateUser(context.Background(), "nopw@example.com", "", account.Extra{})
	require.NoError(t, err)
	assert.False(t, password.IsUsable(acc.PasswordHash))
	assert.NotEmpty(t, acc.PasswordHash)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	_, err := m.CreateUser(ctx, "dup@example.com", "pw", account.Extra{})
	require.NoError(t, err)

	// Differs only by domain case: same normalized email.
	_, err = m.CreateUser(ctx, "dup@EXAMPLE.com", "pw", account.Extra{})
	assert.ErrorIs(t, err, account.ErrDuplicateEmail)
}

func TestCreateUserSuperuserRequiresStaff(t *testing.T) {
	m := newManager(t)

	_, err := m.CreateUser(context.Background(), "odd@example.com", "pw", account.Extra{
		IsSuperuser: boolPtr(true),
	})
	assert.ErrorIs(t, err, account.ErrValidation)

	acc, err := m.CreateUser(context.Background(), "ok@example.com", "pw", account.Extra{
		IsStaff:     boolPtr(true),
		IsSuperuser: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, acc.IsStaff)
	assert.True(t, acc.IsSuperuser)
}

func TestCreateSuperuser(t *testing.T) {
	m := newManager(t)

	acc, err := m.CreateSuperuser(context.Background(), "root@example.com", "pw", account.Extra{})
	require.NoError(t, err)
	assert.True(t, acc.IsStaff)
	assert.True(t, acc.IsSuperuser)
}

func TestCreateSuperuserRejectsFalseFlags(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	_, err := m.CreateSuperuser(ctx, "a@example.com", "pw", account.Extra{IsStaff: boolPtr(false)})
	assert.ErrorIs(t, err, account.ErrValidation)

	_, err = m.CreateSuperuser(ctx, "b@example.com", "pw", account.Extra{IsSuperuser: boolPtr(false)})
	assert.ErrorIs(t, err, account.ErrValidation)

	// Explicit true is fine.
	_, err = m.CreateSuperuser(ctx, "c@example.com", "pw", account.Extra{
		IsStaff:     boolPtr(true),
		IsSuperuser: boolPtr(true),
	})
	assert.NoError(t, err)
}

func TestGetByNaturalKey(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	created, err := m.CreateUser(ctx, "a@b.com", "pw", account.Extra{})
	require.NoError(t, err)

	found, err := m.GetByNaturalKey(ctx, "A@B.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "a@b.com", found.Email)

	// The local part is case-sensitive.
	_, err = m.GetByNaturalKey(ctx, "missing@b.com")
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestSignup(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	acc, err := m.Signup(ctx, account.SignupRequest{
		Email:           "form@Example.com",
		Password:        "secret1",
		PasswordConfirm: "secret1",
		FirstName:       "Form",
		LastName:        "User",
	})
	require.NoError(t, err)
	assert.Equal(t, "form@example.com", acc.Email)
	assert.Equal(t, "Form User", acc.FullName())
}

func TestSignupValidation(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	cases := []account.SignupRequest{
		{Email: "x@example.com", Password: "a", PasswordConfirm: "b", FirstName: "X", LastName: "Y"},
		{Email: "x@example.com", Password: "", PasswordConfirm: "", FirstName: "X", LastName: "Y"},
		{Email: "x@example.com", Password: "a", PasswordConfirm: "a", FirstName: " ", LastName: "Y"},
		{Email: "x@example.com", Password: "a", PasswordConfirm: "a", FirstName: "X", LastName: ""},
	}
	for i, req := range cases {
		_, err := m.Signup(ctx, req)
		assert.ErrorIs(t, err, account.ErrValidation, "case %d", i)
	}
}
