package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/kasuganosora/clientauth/config"
	dbadapter "github.com/kasuganosora/clientauth/db"
	"github.com/kasuganosora/clientauth/model"
	"github.com/kasuganosora/clientauth/password"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupTestDB creates an in-memory SQLite DB and runs AutoMigrate.
// Each call gets a uniquely named database, so it is safe to use in
// parallel tests and requires no external services.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := dbadapter.Open(config.DatabaseConfig{
		Mode:       dbadapter.ModeSQLite,
		SQLitePath: dsn,
	})
	require.NoError(t, err, "SetupTestDB: Open")
	require.NoError(t, model.AutoMigrate(db), "SetupTestDB: AutoMigrate")
	return db
}

// NewTestHasher returns a hasher with deliberately cheap argon2
// parameters so tests stay fast.
func NewTestHasher() *password.Hasher {
	return password.NewHasher(config.SecurityConfig{
		Argon2Memory:      8 * 1024,
		Argon2Iterations:  1,
		Argon2Parallelism: 1,
		Argon2SaltLength:  8,
		Argon2KeyLength:   16,
	})
}
