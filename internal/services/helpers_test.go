package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/diewo77/computer-store/internal/config"
	"github.com/diewo77/computer-store/internal/db"
	"github.com/diewo77/computer-store/internal/session"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "store.db"), BusyTimeout: 1000})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, db.Init(gdb))
	return gdb
}

// loggedIn returns a session manager with admin logged in.
func loggedIn(t *testing.T, gdb *gorm.DB) *session.Manager {
	t.Helper()
	m := session.NewManager(gdb)
	_, err := m.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)
	return m
}
