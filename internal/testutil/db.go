// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/art_gallery/internal/repo"
	pkgdb "github.com/Skotchmaster/art_gallery/pkg/db"
)

// NewRepo returns a migrated repository over a private in-memory sqlite database.
func NewRepo(t *testing.T) (*repo.GormRepo, *gorm.DB) {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := pkgdb.Open(context.Background(), pkgdb.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := repo.New(db)
	require.NoError(t, r.Migrate(context.Background()))
	return r, db
}
