package service

import (
	"context"
	"os"
	"path/filepath"

	errors "github.com/Laisky/errors/v2"
	"github.com/google/uuid"

	"fileserver/internal/web/files/model"
)

// ensurePath materializes every directory segment, both on disk and as a
// row, chaining parent ids. Returns the deepest directory's id, or nil
// when segments is empty.
//
// Segments must be processed in order since each row supplies the parent
// id of the next; independent uploads may still run concurrently, the
// dao recovers the row when another upload wins the insert race.
func (s *Service) ensurePath(ctx context.Context, user *model.User, segments []string) (*uuid.UUID, error) {
	var parentID *uuid.UUID
	accumulated := s.baseDir

	for _, segment := range segments {
		accumulated = filepath.Join(accumulated, segment)
		if err := os.MkdirAll(accumulated, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create directory `%s`", accumulated)
		}

		dir := &model.Directory{
			Name:     segment,
			UserID:   user.ID,
			ParentID: parentID,
		}
		if err := s.dao.CreateOrGetDirectory(ctx, dir); err != nil {
			return nil, errors.WithStack(err)
		}

		id := dir.ID
		parentID = &id
	}

	return parentID, nil
}
