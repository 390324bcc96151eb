package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createLoginTokenTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE login_tokens (
		id TEXT PRIMARY KEY,
		token TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		callback_url TEXT,
		device_binding_hash TEXT,
		issued_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		consumed_at DATETIME,
		created_at DATETIME
	);`)
}

func createVerificationLinkTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE verification_links (
		correlation_id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		artifact_url TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME
	);`)
}
