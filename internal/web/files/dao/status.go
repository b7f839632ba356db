package dao

import (
	"context"

	errors "github.com/Laisky/errors/v2"
	"github.com/google/uuid"
)

// UsageRow aggregates one directory's disk usage. Used is nil for a
// directory without files.
type UsageRow struct {
	ID    uuid.UUID
	Name  string
	Used  *int64
	Files int64
}

// DirectoryUsage returns per-directory used bytes and file counts for
// the user. Row order is whatever the grouped query yields; callers must
// not rely on it.
func (d *Dao) DirectoryUsage(ctx context.Context, userID uuid.UUID) ([]UsageRow, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var rows []UsageRow
	err := d.ro.WithContext(ctx).
		Table("directories").
		Select("directories.id AS id, directories.name AS name, " +
			"SUM(files.size) AS used, COUNT(files.id) AS files").
		Joins("LEFT JOIN files ON files.directory_id = directories.id").
		Where("directories.user_id = ?", userID).
		Group("directories.id, directories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "aggregate directory usage")
	}

	return rows, nil
}
