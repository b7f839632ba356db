package dao

import (
	"context"
	"strings"

	errors "github.com/Laisky/errors/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fileserver/internal/web/files/model"
)

// UpsertFileWithRevision persists file metadata and its derived revision
// atomically. The file upsert is keyed by the (name, directory_id)
// uniqueness constraint; uploading the same name into the same directory
// overwrites the existing row. The revision insert runs in the same
// transaction: a duplicate (hash, file_id) is swallowed, any other
// revision failure rolls back the file upsert too.
func (d *Dao) UpsertFileWithRevision(ctx context.Context, file *model.File, hash string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	err := d.rw.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}, {Name: "directory_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"path", "size", "created_at", "user_id",
			}),
		}).Create(file).Error; err != nil {
			return errors.Wrap(err, "upsert file")
		}

		// the generated id in file does not match the surviving row when
		// the conflict branch ran, read the row back
		var saved model.File
		if err := tx.Where("name = ? AND directory_id = ?", file.Name, file.DirectoryID).
			First(&saved).Error; err != nil {
			return errors.Wrap(err, "read upserted file")
		}
		*file = saved

		// the duplicate must be conflict-free at the SQL level: a failed
		// INSERT inside this transaction aborts it on postgres, so the
		// commit would undo the file upsert even with the error swallowed
		revision := &model.Revision{Hash: hash, FileID: saved.ID}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hash"}, {Name: "file_id"}},
			DoNothing: true,
		}).Create(revision).Error; err != nil {
			return errors.Wrap(err, "create revision")
		}

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "save file `%s`", file.Name)
	}

	return nil
}

// GetFileByID returns the user's file or nil when absent.
func (d *Dao) GetFileByID(ctx context.Context, id, userID uuid.UUID) (*model.File, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var file model.File
	err := d.ro.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get file `%s`", id)
	}

	return &file, nil
}

// GetFileByPath returns the user's file with that exact physical path or
// nil when absent.
func (d *Dao) GetFileByPath(ctx context.Context, path string, userID uuid.UUID) (*model.File, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var file model.File
	err := d.ro.WithContext(ctx).Where("path = ? AND user_id = ?", path, userID).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get file `%s`", path)
	}

	return &file, nil
}

// ListFiles returns a page of the user's files.
func (d *Dao) ListFiles(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.File, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := d.ro.WithContext(ctx).Where("user_id = ?", userID)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var files []model.File
	if err := query.Find(&files).Error; err != nil {
		return nil, errors.Wrap(err, "list files")
	}

	return files, nil
}

// SearchFiles filters the user's files by path-or-id and extension, and
// sorts by the requested column ascending. A UUID-shaped path filters by
// file id, any other path by exact physical path.
func (d *Dao) SearchFiles(ctx context.Context,
	userID uuid.UUID,
	path, extension string,
	orderBy model.FileOrderBy,
	limit int,
) ([]model.File, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := d.ro.WithContext(ctx).Where("user_id = ?", userID)

	if path != "" {
		if id, err := uuid.Parse(path); err == nil {
			query = query.Where("id = ?", id)
		} else {
			query = query.Where("path = ?", path)
		}
	}

	if extension != "" {
		// case-insensitive on every dialect
		query = query.Where("LOWER(name) LIKE ?", "%."+strings.ToLower(extension)+"%")
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	if !orderBy.Valid() {
		orderBy = model.OrderByCreatedAt
	}
	query = query.Order(string(orderBy))

	var files []model.File
	if err := query.Find(&files).Error; err != nil {
		return nil, errors.Wrap(err, "search files")
	}

	return files, nil
}
