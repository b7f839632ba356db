package dao

import (
	"context"

	errors "github.com/Laisky/errors/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fileserver/internal/web/files/model"
)

// CreateUser inserts a new user. A duplicate username surfaces as
// gorm.ErrDuplicatedKey; registration is the one place where a
// uniqueness conflict is a caller-visible error.
func (d *Dao) CreateUser(ctx context.Context, user *model.User) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	if err := d.rw.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrapf(err, "create user `%s`", user.Username)
	}

	return nil
}

// GetUserByUsername returns the user or nil when absent.
func (d *Dao) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var user model.User
	err := d.ro.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get user `%s`", username)
	}

	return &user, nil
}

// GetUserByID returns the user or nil when absent.
func (d *Dao) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var user model.User
	err := d.ro.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get user `%s`", id)
	}

	return &user, nil
}
