package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Revision records one observed content state of a file, identified by
// content hash. (hash, file_id) is unique: uploading identical bytes
// again does not add a row.
type Revision struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Hash       string    `gorm:"size:500;not null;uniqueIndex:uix_revision_hash_file_id" json:"hash"`
	ModifiedAt time.Time `gorm:"not null" json:"modified_at"`
	FileID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uix_revision_hash_file_id" json:"file_id"`
}

// TableName returns the database table name.
func (Revision) TableName() string {
	return "revisions"
}

// BeforeCreate assigns the id so inserts behave the same on every dialect.
func (r *Revision) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.ModifiedAt.IsZero() {
		r.ModifiedAt = time.Now()
	}
	return nil
}
