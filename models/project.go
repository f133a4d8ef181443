package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is the aggregate root of the position graph. Active is derived
// state: true iff at least one position has no assigned user. It is
// recomputed inside every transaction that changes position assignments.
type Project struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name         string    `json:"name" db:"name" gorm:"type:text;not null"`
	Description  string    `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Timeline     string    `json:"timeline" db:"timeline" gorm:"type:text;not null;default:''"`
	Requirements string    `json:"requirements" db:"requirements" gorm:"type:text;not null;default:''"`
	URL          string    `json:"url" db:"url" gorm:"type:text;not null;default:''"`
	OwnerID      uuid.UUID `json:"owner_id" db:"owner_id" gorm:"type:uuid;not null;index:idx_project_owner_id"`
	Active       bool      `json:"active" db:"active" gorm:"not null;default:true"`

	Owner     *User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
	Positions []Position `json:"positions,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// HasUnfilledPosition reports whether any loaded position lacks an assignee.
// Positions must be preloaded.
func (p *Project) HasUnfilledPosition() bool {
	for _, position := range p.Positions {
		if position.UserID == nil {
			return true
		}
	}
	return false
}
