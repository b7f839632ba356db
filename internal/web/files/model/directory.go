package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Directory is one node of a per-user tree. ParentID is nil for
// root-level directories.
//
// The uniqueness constraint is (name, user_id) for the whole tree, not
// (name, user_id, parent_id): a user cannot reuse a directory name at
// any depth. Inherited from the legacy schema; see DESIGN.md before
// changing it.
type Directory struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null;index;uniqueIndex:uix_directory_name_user_id" json:"name"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uix_directory_name_user_id" json:"user_id"`
	ParentID  *uuid.UUID `gorm:"type:uuid" json:"parent_id,omitempty"`
}

// TableName returns the database table name.
func (Directory) TableName() string {
	return "directories"
}

// BeforeCreate assigns the id so inserts behave the same on every dialect.
func (d *Directory) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
