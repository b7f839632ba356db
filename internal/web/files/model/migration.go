package model

import (
	"context"

	errors "github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"gorm.io/gorm"

	"fileserver/library/log"
)

// Migrate ensures the storage tables and unique indexes exist.
func Migrate(ctx context.Context, db *gorm.DB, logger logSDK.Logger) error {
	if db == nil {
		return errors.New("gorm db is required")
	}
	if logger == nil {
		logger = log.Logger.Named("files_migration")
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&User{},
		&Directory{},
		&File{},
		&Revision{},
	); err != nil {
		return errors.Wrap(err, "auto migrate storage tables")
	}

	logger.Debug("files migrations completed")
	return nil
}
