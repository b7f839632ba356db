package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileOrderBy enumerates the sortable file columns.
type FileOrderBy string

const (
	OrderByName      FileOrderBy = "name"
	OrderBySize      FileOrderBy = "size"
	OrderByCreatedAt FileOrderBy = "created_at"
)

// Valid reports whether the order column is one of the allowed values.
// The value is interpolated into SQL and must never come from user input
// unchecked.
func (o FileOrderBy) Valid() bool {
	switch o {
	case OrderByName, OrderBySize, OrderByCreatedAt:
		return true
	}
	return false
}

// File is a leaf object in the directory tree. Path is the full physical
// path and is unique across the whole system; (name, directory_id) is
// unique so re-uploading the same name into the same directory updates
// the existing row.
type File struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;index;uniqueIndex:uix_file_name_directory_id" json:"name"`
	Path        string    `gorm:"size:500;not null;uniqueIndex" json:"path"`
	Size        int64     `gorm:"not null" json:"size"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	DirectoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uix_file_name_directory_id" json:"directory_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
}

// TableName returns the database table name.
func (File) TableName() string {
	return "files"
}

// BeforeCreate assigns the id so inserts behave the same on every dialect.
func (f *File) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
