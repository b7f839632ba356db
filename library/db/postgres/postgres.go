// Package postgres constructs the shared relational pools.
package postgres

import (
	"context"
	"time"

	errors "github.com/Laisky/errors/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DialInfo postgres dial info.
//
// RODSN may be empty, in which case read-only traffic shares the
// read-write pool.
type DialInfo struct {
	RWDSN,
	RODSN string
}

// DB holds the two connection pools. Read-only queries must go through
// RO so a replica can serve them; writes always go through RW.
type DB struct {
	rw *gorm.DB
	ro *gorm.DB
}

// New create the process-wide postgres pools
func New(ctx context.Context, dialInfo DialInfo) (*DB, error) {
	rw, err := open(ctx, dialInfo.RWDSN)
	if err != nil {
		return nil, errors.Wrap(err, "open rw pool")
	}

	ro := rw
	if dialInfo.RODSN != "" && dialInfo.RODSN != dialInfo.RWDSN {
		if ro, err = open(ctx, dialInfo.RODSN); err != nil {
			return nil, errors.Wrap(err, "open ro pool")
		}
	}

	return &DB{rw: rw, ro: ro}, nil
}

// RW returns the read-write pool.
func (d *DB) RW() *gorm.DB { return d.rw }

// RO returns the read-only pool.
func (d *DB) RO() *gorm.DB { return d.ro }

// Close shuts down both pools.
func (d *DB) Close() error {
	rwDB, err := d.rw.DB()
	if err != nil {
		return errors.Wrap(err, "get rw sql db")
	}
	if err = rwDB.Close(); err != nil {
		return errors.Wrap(err, "close rw pool")
	}

	if d.ro != d.rw {
		roDB, err := d.ro.DB()
		if err != nil {
			return errors.Wrap(err, "get ro sql db")
		}
		if err = roDB.Close(); err != nil {
			return errors.Wrap(err, "close ro pool")
		}
	}

	return nil
}

func open(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// unique violations must surface as gorm.ErrDuplicatedKey,
		// the upsert-or-read primitives key off it
		TranslateError: true,
		Logger:         newTruncatingParamsLogger(gormLogger.Default),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql db")
	}

	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "ping postgres")
	}

	// config db
	sqlDB.SetMaxIdleConns(6)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
