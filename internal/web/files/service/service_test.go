package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"fileserver/internal/web/files/model"
)

func TestListPagination(t *testing.T) {
	svc, db := newTestService(t)
	user := newTestUser(t, db, "alice")
	uploadBytes(t, svc, user, "a.txt", "upload.bin", []byte("a"))
	uploadBytes(t, svc, user, "b.txt", "upload.bin", []byte("b"))
	uploadBytes(t, svc, user, "c.txt", "upload.bin", []byte("c"))

	page, err := svc.List(context.Background(), user, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)

	rest, err := svc.List(context.Background(), user, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
}

// TestSearchOrderBySize verifies ascending ordering over the requested
// column.
func TestSearchOrderBySize(t *testing.T) {
	svc, db := newTestService(t)
	user := newTestUser(t, db, "alice")
	uploadBytes(t, svc, user, "docs/big.txt", "upload.bin", make([]byte, 353753))
	uploadBytes(t, svc, user, "docs/mid.txt", "upload.bin", make([]byte, 306207))
	uploadBytes(t, svc, user, "docs/small.txt", "upload.bin", make([]byte, 176))

	files, err := svc.Search(context.Background(), user, "", "txt", model.OrderBySize, 10)
	require.NoError(t, err)
	require.Len(t, files, 3)
	require.EqualValues(t, 176, files[0].Size)
	require.EqualValues(t, 306207, files[1].Size)
	require.EqualValues(t, 353753, files[2].Size)
}

// TestSearchByExtension verifies the extension filter matches against
// the file name.
func TestSearchByExtension(t *testing.T) {
	svc, db := newTestService(t)
	user := newTestUser(t, db, "alice")
	uploadBytes(t, svc, user, "docs/report.pdf", "upload.bin", []byte("pdf"))
	uploadBytes(t, svc, user, "docs/notes.txt", "upload.bin", []byte("txt"))

	files, err := svc.Search(context.Background(), user, "", "pdf", model.OrderByName, 10)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "report.pdf", files[0].Name)
}

// TestSearchByID verifies UUID-shaped search input filters by file id.
func TestSearchByID(t *testing.T) {
	svc, db := newTestService(t)
	user := newTestUser(t, db, "alice")
	inside := uploadBytes(t, svc, user, "docs/inside.txt", "upload.bin", []byte("in"))
	uploadBytes(t, svc, user, "other/outside.txt", "upload.bin", []byte("out"))

	files, err := svc.Search(context.Background(), user,
		inside.ID.String(), "", model.OrderByName, 10)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, inside.ID, files[0].ID)
}

func TestRevisionsByPath(t *testing.T) {
	svc, db := newTestService(t)
	user := newTestUser(t, db, "alice")
	file := uploadBytes(t, svc, user, "docs/data.txt", "upload.bin", []byte("v1"))
	uploadBytes(t, svc, user, "docs/data.txt", "upload.bin", []byte("v2"))

	rows, err := svc.Revisions(context.Background(), user, file.Path, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Equal(t, file.ID, row.ID)
		require.Equal(t, file.Path, row.Path)
		require.NotEmpty(t, row.Hash)
	}
	require.NotEqual(t, rows[0].Hash, rows[1].Hash)
}

func TestRevisionsByID(t *testing.T) {
	svc, db := newTestService(t)
	user := newTestUser(t, db, "alice")
	file := uploadBytes(t, svc, user, "docs/data.txt", "upload.bin", []byte("v1"))

	rows, err := svc.Revisions(context.Background(), user, file.ID.String(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, file.ID, rows[0].ID)
}

// TestStatus verifies per-directory usage aggregation, empty directories
// included.
func TestStatus(t *testing.T) {
	svc, db := newTestService(t)
	user := newTestUser(t, db, "alice")
	uploadBytes(t, svc, user, "docs/a.txt", "upload.bin", make([]byte, 100))
	uploadBytes(t, svc, user, "docs/b.txt", "upload.bin", make([]byte, 50))

	status, err := svc.Status(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, user.ID, status.Info.AccountID)
	require.NotNil(t, status.Info.HomeFolderID)

	usage := map[string][2]int64{}
	for _, folder := range status.Folders {
		for name, stat := range folder {
			usage[name] = [2]int64{stat.Used, stat.Files}
		}
	}
	require.Equal(t, [2]int64{150, 2}, usage["docs"])
	require.Equal(t, [2]int64{0, 0}, usage["alice"])
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Register(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", user.Password)

	authed, err := svc.Authenticate(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	require.Equal(t, user.ID, authed.ID)

	_, err = svc.Authenticate(context.Background(), "alice", "wrong")
	require.Error(t, err)
	require.True(t, IsCode(err, ErrCodeUnauthenticated))

	_, err = svc.Authenticate(context.Background(), "nobody", "s3cret")
	require.Error(t, err)
	require.True(t, IsCode(err, ErrCodeUnauthenticated))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), "alice", "one")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "two")
	require.Error(t, err)
	require.True(t, IsCode(err, ErrCodeConflict))
}
