package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fileserver/internal/web/files/dao"
	"fileserver/internal/web/files/model"
)

// newTestDB creates an in-memory sqlite database with the storage schema.
func newTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s-%d?mode=memory&cache=shared", t.Name(), time.Now().UTC().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(context.Background(), db, nil))
	return db
}

// newTestService constructs a service over a temp dir with a 1 MiB limit.
func newTestService(t *testing.T) (*Service, *gorm.DB) {
	db := newTestDB(t)
	svc, err := New(dao.New(db, nil), t.TempDir(), 1024, nil)
	require.NoError(t, err)
	return svc, db
}

// newTestUser persists a user row.
func newTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	user := &model.User{Username: username, Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// uploadBytes drives Save with in-memory content.
func uploadBytes(t *testing.T, svc *Service, user *model.User, path, name string, content []byte) *model.File {
	file, err := svc.Save(context.Background(), user, path, bytes.NewReader(content), name)
	require.NoError(t, err)
	return file
}
