package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a shared vocabulary entity referenced by positions. Like Skill it is
// reference-counted: the last position pointing at a role takes the role with
// it when the position is deleted or reassigned.
type Role struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name string    `json:"name" db:"name" gorm:"type:text;not null;unique"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
