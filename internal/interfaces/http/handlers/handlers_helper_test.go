package handlers_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"passlink.backend/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("development")
}

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE login_tokens (
		id TEXT PRIMARY KEY,
		token TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		callback_url TEXT,
		device_binding_hash TEXT,
		issued_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		consumed_at DATETIME,
		created_at DATETIME
	);`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE verification_links (
		correlation_id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		artifact_url TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME
	);`).Error)
	return db
}
