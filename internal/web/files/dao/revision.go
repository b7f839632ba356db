package dao

import (
	"context"
	"time"

	errors "github.com/Laisky/errors/v2"
	"github.com/google/uuid"
)

// RevisionRow is one row of the revision history listing, joining file
// metadata with its revisions.
type RevisionRow struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	CreatedAt  time.Time `json:"created_at"`
	RevisionID uuid.UUID `json:"revision_id"`
	Hash       string    `json:"hash"`
	ModifiedAt time.Time `json:"modified_at"`
}

// ListRevisions returns the revision history of one file, addressed by
// file id (UUID-shaped input) or exact physical path.
func (d *Dao) ListRevisions(ctx context.Context, userID uuid.UUID, pathOrID string, limit int) ([]RevisionRow, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	query := d.ro.WithContext(ctx).
		Table("revisions").
		Select("files.id AS id, files.name AS name, files.path AS path, files.created_at AS created_at, " +
			"revisions.id AS revision_id, revisions.hash AS hash, revisions.modified_at AS modified_at").
		Joins("JOIN files ON files.id = revisions.file_id").
		Where("files.user_id = ?", userID)

	if id, err := uuid.Parse(pathOrID); err == nil {
		query = query.Where("files.id = ?", id)
	} else {
		query = query.Where("files.path = ?", pathOrID)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []RevisionRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list revisions")
	}

	return rows, nil
}
