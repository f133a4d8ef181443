package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile holds the public profile of a user. Exactly one profile exists
// per user; it is created in the same transaction as the user row.
type UserProfile struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID     uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;unique"`
	FullName   string    `json:"full_name" db:"full_name" gorm:"type:text;not null;default:''"`
	Biography  string    `json:"biography" db:"biography" gorm:"type:text;not null;default:''"`
	AvatarPath string    `json:"avatar_path" db:"avatar_path" gorm:"type:text;not null;default:''"`

	Skills []UserProfileSkill `json:"skills,omitempty" gorm:"foreignKey:UserProfileID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// SkillNames returns the per-entry skill names of the profile.
func (p *UserProfile) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, entry := range p.Skills {
		names = append(names, entry.SkillName)
	}
	return names
}
