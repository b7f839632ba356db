// Package dao implements storage access for the file storage tables.
package dao

import (
	"context"
	"time"

	errors "github.com/Laisky/errors/v2"
	"gorm.io/gorm"
)

// opTimeout bounds every database operation. Timeouts surface to the
// caller as recoverable failures; retry policy belongs to the caller.
const opTimeout = 30 * time.Second

// Dao routes reads to the read-only pool and writes to the read-write
// pool. Both may point at the same database.
type Dao struct {
	rw *gorm.DB
	ro *gorm.DB
}

// New creates a Dao over the given pools. A nil ro falls back to rw.
func New(rw, ro *gorm.DB) *Dao {
	if ro == nil {
		ro = rw
	}
	return &Dao{rw: rw, ro: ro}
}

// opCtx derives a per-operation context with the standard timeout.
func opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

// createOrRead inserts row within tx; when the insert loses a uniqueness
// race it invokes read to recover the surviving row instead of failing.
// A nil read swallows the conflict entirely.
//
// Must not run inside an open transaction: postgres aborts the whole
// transaction on the failed INSERT, so recovering from the error is only
// possible when gorm wraps the insert on its own. Statements that need a
// conflict ignored mid-transaction use an ON CONFLICT DO NOTHING clause
// instead (see UpsertFileWithRevision).
func createOrRead(tx *gorm.DB, row any, read func(tx *gorm.DB) error) error {
	if err := tx.Create(row).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.WithStack(err)
		}
		if read == nil {
			return nil
		}
		return read(tx)
	}
	return nil
}

// IsDuplicated reports whether err is a uniqueness-constraint violation.
func IsDuplicated(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
