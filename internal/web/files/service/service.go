// Package service implements the file ingestion and addressing core:
// logical path resolution, directory materialization, streaming uploads
// with content hashing, and subtree archive assembly.
package service

import (
	"context"

	errors "github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/google/uuid"

	"fileserver/internal/web/files/dao"
	"fileserver/internal/web/files/dto"
	"fileserver/internal/web/files/model"
	"fileserver/library/log"
)

// Service coordinates the storage core. Query methods are stateless and
// cache-agnostic; caching is a decorator at the HTTP boundary.
type Service struct {
	dao         *dao.Dao
	logger      logSDK.Logger
	baseDir     string
	maxFileSize int64 // bytes
}

// New constructs the storage service. maxFileSizeKB bounds uploads;
// baseDir is the physical root every user tree lives under.
func New(d *dao.Dao, baseDir string, maxFileSizeKB int64, logger logSDK.Logger) (*Service, error) {
	if d == nil {
		return nil, errors.New("dao is required")
	}
	if baseDir == "" {
		return nil, errors.New("base dir is required")
	}
	if maxFileSizeKB <= 0 {
		return nil, errors.New("max file size must be positive")
	}
	if logger == nil {
		logger = log.Logger.Named("files_service")
	}

	return &Service{
		dao:         d,
		logger:      logger,
		baseDir:     baseDir,
		maxFileSize: maxFileSizeKB * 1024,
	}, nil
}

// List returns a page of the user's files.
func (s *Service) List(ctx context.Context, user *model.User, limit, offset int) ([]model.File, error) {
	files, err := s.dao.ListFiles(ctx, user.ID, limit, offset)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return files, nil
}

// Search filters the user's files by path-or-id and extension, ordered
// by the requested column.
func (s *Service) Search(ctx context.Context,
	user *model.User,
	path, extension string,
	orderBy model.FileOrderBy,
	limit int,
) ([]model.File, error) {
	files, err := s.dao.SearchFiles(ctx, user.ID, path, extension, orderBy, limit)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return files, nil
}

// Revisions returns the revision history of one file addressed by path
// or id.
func (s *Service) Revisions(ctx context.Context, user *model.User, pathOrID string, limit int) ([]dao.RevisionRow, error) {
	rows, err := s.dao.ListRevisions(ctx, user.ID, pathOrID, limit)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return rows, nil
}

// Status summarizes the user's disk usage per directory. HomeFolderID is
// whichever directory the grouped query yields first; the aggregate has
// no defined order.
func (s *Service) Status(ctx context.Context, user *model.User) (*dto.UserStatus, error) {
	rows, err := s.dao.DirectoryUsage(ctx, user.ID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	status := &dto.UserStatus{
		Info:    dto.StatusInfo{AccountID: user.ID},
		Folders: []map[string]dto.FolderUsage{},
	}

	for i, row := range rows {
		if i == 0 {
			id := row.ID
			status.Info.HomeFolderID = &id
		}

		var used int64
		if row.Used != nil {
			used = *row.Used
		}
		status.Folders = append(status.Folders, map[string]dto.FolderUsage{
			row.Name: {Used: used, Files: row.Files},
		})
	}

	return status, nil
}

// dirID dereferences a materialized directory id for file metadata.
func dirID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
