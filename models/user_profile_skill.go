package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfileSkill links a profile to a skill. The entry carries its own copy
// of the skill name so a profile edit can tell renamed entries apart from
// untouched ones.
type UserProfileSkill struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserProfileID uuid.UUID `json:"user_profile_id" db:"user_profile_id" gorm:"type:uuid;not null;index:idx_user_profile_skill_profile_id"`
	SkillID       uuid.UUID `json:"skill_id" db:"skill_id" gorm:"type:uuid;not null;index:idx_user_profile_skill_skill_id"`
	SkillName     string    `json:"skill_name" db:"skill_name" gorm:"type:text;not null"`

	Skill *Skill `json:"skill,omitempty" gorm:"foreignKey:SkillID;references:ID"`
}

func (s *UserProfileSkill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
