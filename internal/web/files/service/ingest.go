package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	errors "github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"

	"fileserver/internal/web/files/model"
)

// uploadChunkSize is the streaming read granularity; the running size
// check fires before any chunk beyond the limit reaches disk buffers.
const uploadChunkSize = 1024

// Save streams an upload into the user's tree and records its metadata
// and revision. The logical path decides the target directory; the
// directories are materialized first, then the content is streamed to
// its physical path with an incremental hash and size check, then the
// file row and revision row are written in one transaction.
func (s *Service) Save(ctx context.Context,
	user *model.User,
	inPath string,
	upload io.Reader,
	uploadName string,
) (*model.File, error) {
	segments, leaf, _ := resolvePath(user.Username, inPath, uploadName)

	directoryID, err := s.ensurePath(ctx, user, segments)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	fullPath := filepath.Join(append([]string{s.baseDir}, append(segments, leaf)...)...)
	size, hash, err := s.streamToDisk(upload, fullPath)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	file := &model.File{
		Name:        leaf,
		Path:        fullPath,
		Size:        size,
		CreatedAt:   time.Now(),
		DirectoryID: dirID(directoryID),
		UserID:      user.ID,
	}
	if err = s.dao.UpsertFileWithRevision(ctx, file, hash); err != nil {
		return nil, errors.WithStack(err)
	}

	s.logger.Debug("saved file",
		zap.String("path", fullPath),
		zap.Int64("size", size),
		zap.String("hash", hash))
	return file, nil
}

// streamToDisk copies the upload to path in fixed-size chunks, keeping a
// running byte count and content hash. Exceeding the size limit aborts
// the copy, removes the partial file and returns a LARGE_FILE error; no
// partial file survives any failure.
func (s *Service) streamToDisk(upload io.Reader, path string) (size int64, hexDigest string, err error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, "", errors.Wrapf(err, "create file `%s`", path)
	}

	cleanup := func() {
		_ = out.Close()
		if removeErr := os.Remove(path); removeErr != nil {
			s.logger.Error("remove partial file",
				zap.String("path", path), zap.Error(removeErr))
		}
	}

	digest := md5.New() // change detection only, not a security boundary
	buf := make([]byte, uploadChunkSize)
	for {
		n, readErr := upload.Read(buf)
		if n > 0 {
			size += int64(n)
			if size > s.maxFileSize {
				cleanup()
				return 0, "", NewError(ErrCodeLargeFile,
					fmt.Sprintf("file must not exceed %d kb", s.maxFileSize/1024))
			}

			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				cleanup()
				return 0, "", errors.Wrapf(writeErr, "write file `%s`", path)
			}
			digest.Write(buf[:n])
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			cleanup()
			return 0, "", errors.Wrap(readErr, "read upload stream")
		}
	}

	if err = out.Close(); err != nil {
		return 0, "", errors.Wrapf(err, "close file `%s`", path)
	}

	return size, hex.EncodeToString(digest.Sum(nil)), nil
}
