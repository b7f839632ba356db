package dao

import (
	"context"

	errors "github.com/Laisky/errors/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fileserver/internal/web/files/model"
)

// CreateOrGetDirectory inserts the directory row; when another upload
// already created it, the existing row is read back and dir is updated
// in place. Two concurrent uploads materializing the same segment both
// end up with the surviving row's id.
//
// The recovery read is keyed by (name, user_id) and deliberately not
// scoped by parent, matching the legacy uniqueness constraint on the
// table itself.
func (d *Dao) CreateOrGetDirectory(ctx context.Context, dir *model.Directory) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	err := createOrRead(d.rw.WithContext(ctx), dir, func(tx *gorm.DB) error {
		var existing model.Directory
		if err := tx.Where("name = ? AND user_id = ?", dir.Name, dir.UserID).
			First(&existing).Error; err != nil {
			return errors.Wrapf(err, "read existing directory `%s`", dir.Name)
		}
		*dir = existing
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "create directory `%s`", dir.Name)
	}

	return nil
}

// GetDirectoryByID returns the user's directory or nil when absent.
func (d *Dao) GetDirectoryByID(ctx context.Context, id, userID uuid.UUID) (*model.Directory, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var dir model.Directory
	err := d.ro.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&dir).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get directory `%s`", id)
	}

	return &dir, nil
}

// GetDirectoryByName returns the user's directory with that name or nil
// when absent. Names are unique per user, so at most one row matches.
func (d *Dao) GetDirectoryByName(ctx context.Context, name string, userID uuid.UUID) (*model.Directory, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var dir model.Directory
	err := d.ro.WithContext(ctx).Where("name = ? AND user_id = ?", name, userID).First(&dir).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get directory `%s`", name)
	}

	return &dir, nil
}
