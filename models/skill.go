package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill is a shared vocabulary entity. A skill exists only while at least one
// position or one user profile references it; the services layer releases it
// once the last reference is gone.
type Skill struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name string    `json:"name" db:"name" gorm:"type:text;not null;unique"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
