package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Position is a role-shaped opening within a project: one role, a set of
// required skills, optionally an assigned user once an application has been
// accepted.
type Position struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID   uuid.UUID  `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_position_project_id"`
	RoleID      *uuid.UUID `json:"role_id,omitempty" db:"role_id" gorm:"type:uuid;index:idx_position_role_id"`
	Description string     `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Involvement string     `json:"involvement" db:"involvement" gorm:"type:text;not null;default:''"`
	UserID      *uuid.UUID `json:"user_id,omitempty" db:"user_id" gorm:"type:uuid"`

	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
	Role    *Role    `json:"role,omitempty" gorm:"foreignKey:RoleID;references:ID"`
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Skills  []Skill  `json:"skills,omitempty" gorm:"many2many:position_skills"`
}

func (p *Position) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// RoleName returns the role name or the empty string when the role is not
// set or not preloaded.
func (p *Position) RoleName() string {
	if p.Role == nil {
		return ""
	}
	return p.Role.Name
}

// SkillNames returns the names of the required skills. Skills must be
// preloaded.
func (p *Position) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, skill := range p.Skills {
		names = append(names, skill.Name)
	}
	return names
}
