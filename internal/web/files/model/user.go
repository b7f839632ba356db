package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the identity anchor; every directory and file row belongs to
// exactly one user.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Password string    `gorm:"size:200;not null" json:"-"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the id so inserts behave the same on every dialect.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
