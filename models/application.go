package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application statuses. An application starts as new; accepted and rejected
// are set by the project owner. Rejected is terminal for the (applicant,
// position) pair: the uniqueness constraint blocks re-application.
const (
	ApplicationStatusNew      = "new"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Application is a (applicant, position) pair with a status. At most one
// application may exist per pair, enforced by idx_application_unique.
type Application struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ApplicantID uuid.UUID `json:"applicant_id" db:"applicant_id" gorm:"type:uuid;not null;uniqueIndex:idx_application_unique"`
	PositionID  uuid.UUID `json:"position_id" db:"position_id" gorm:"type:uuid;not null;uniqueIndex:idx_application_unique;index:idx_application_position_id"`
	Status      string    `json:"status" db:"status" gorm:"type:text;not null;default:'new'"`

	Applicant *User     `json:"applicant,omitempty" gorm:"foreignKey:ApplicantID;references:ID"`
	Position  *Position `json:"position,omitempty" gorm:"foreignKey:PositionID;references:ID;constraint:OnDelete:CASCADE"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
