package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account identity. Credential storage and the login flow live
// behind the auth boundary; the backend only needs the row for ownership and
// application foreign keys.
type User struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email string    `json:"email" db:"email" gorm:"type:text;not null;unique"`

	Profile *UserProfile `json:"profile,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
