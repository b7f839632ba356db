package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"fileserver/internal/web/files/dao"
	"fileserver/internal/web/files/model"
)

// TestEnsurePathIdempotent verifies materializing the same segments
// twice yields the same id and no duplicate rows or directories.
func TestEnsurePathIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	user := newTestUser(t, db, "alice")
	segments := []string{"alice", "docs", "reports"}

	first, err := svc.ensurePath(context.Background(), user, segments)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.ensurePath(context.Background(), user, segments)
	require.NoError(t, err)
	require.NotNil(t, second)
	require.Equal(t, *first, *second)

	var count int64
	require.NoError(t, db.Model(&model.Directory{}).Count(&count).Error)
	require.EqualValues(t, 3, count)

	info, err := os.Stat(filepath.Join(svc.baseDir, "alice", "docs", "reports"))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

// TestEnsurePathEmptySegments verifies the user-root upload path.
func TestEnsurePathEmptySegments(t *testing.T) {
	svc, db := newTestService(t)
	user := newTestUser(t, db, "alice")

	id, err := svc.ensurePath(context.Background(), user, nil)
	require.NoError(t, err)
	require.Nil(t, id)
}

// TestSaveLargeFile verifies the size limit aborts mid-stream, leaves
// nothing on disk and persists no rows.
func TestSaveLargeFile(t *testing.T) {
	db := newTestDB(t)
	baseDir := t.TempDir()
	svc, err := New(dao.New(db, nil), baseDir, 1, nil) // 1 KB limit
	require.NoError(t, err)
	user := newTestUser(t, db, "alice")

	_, err = svc.Save(context.Background(), user, "big.bin",
		bytes.NewReader(make([]byte, 4096)), "big.bin")
	require.Error(t, err)
	require.True(t, IsCode(err, ErrCodeLargeFile))

	_, statErr := os.Stat(filepath.Join(baseDir, "alice", "big.bin"))
	require.True(t, os.IsNotExist(statErr))

	var count int64
	require.NoError(t, db.Model(&model.File{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

// TestSaveDeduplicatesRevisions verifies identical bytes re-uploaded to
// the same logical path keep one file row and one revision row.
func TestSaveDeduplicatesRevisions(t *testing.T) {
	svc, db := newTestService(t)
	user := newTestUser(t, db, "alice")
	content := []byte("same bytes every time")

	first := uploadBytes(t, svc, user, "docs/data.txt", "data.txt", content)
	second := uploadBytes(t, svc, user, "docs/data.txt", "data.txt", content)
	require.Equal(t, first.ID, second.ID)

	var fileCount, revisionCount int64
	require.NoError(t, db.Model(&model.File{}).Count(&fileCount).Error)
	require.NoError(t, db.Model(&model.Revision{}).Count(&revisionCount).Error)
	require.EqualValues(t, 1, fileCount)
	require.EqualValues(t, 1, revisionCount)
}

// TestSaveNewContentAddsRevision verifies changed bytes at the same path
// update the file row and add a second revision.
func TestSaveNewContentAddsRevision(t *testing.T) {
	svc, db := newTestService(t)
	user := newTestUser(t, db, "alice")

	first := uploadBytes(t, svc, user, "docs/data.txt", "data.txt", []byte("v1"))
	second := uploadBytes(t, svc, user, "docs/data.txt", "data.txt", []byte("v2 longer"))
	require.Equal(t, first.ID, second.ID)
	require.EqualValues(t, 9, second.Size)

	var revisionCount int64
	require.NoError(t, db.Model(&model.Revision{}).Count(&revisionCount).Error)
	require.EqualValues(t, 2, revisionCount)
}

// TestSaveRevisionFailureRollsBackFile verifies the file upsert is not
// visible when the revision insert fails for a non-conflict cause.
func TestSaveRevisionFailureRollsBackFile(t *testing.T) {
	svc, db := newTestService(t)
	user := newTestUser(t, db, "alice")

	require.NoError(t, db.Migrator().DropTable(&model.Revision{}))

	_, err := svc.Save(context.Background(), user, "docs/data.txt",
		bytes.NewReader([]byte("payload")), "data.txt")
	require.Error(t, err)
	require.False(t, IsCode(err, ErrCodeLargeFile))

	var count int64
	require.NoError(t, db.Model(&model.File{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

// TestSaveWritesPhysicalTree verifies the physical tree mirrors the
// logical path under the user namespace.
func TestSaveWritesPhysicalTree(t *testing.T) {
	svc, db := newTestService(t)
	user := newTestUser(t, db, "alice")

	file := uploadBytes(t, svc, user, "docs/one/two", "test.txt", []byte("hello"))
	require.Equal(t, filepath.Join(svc.baseDir, "alice", "docs", "one", "two", "test.txt"), file.Path)

	raw, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), raw)
	require.EqualValues(t, 5, file.Size)
}
