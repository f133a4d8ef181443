package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teambuilder/backend/models"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns all skills from the database
func (r *SkillRepo) FindAll() ([]*models.Skill, error) {
	var skills []*models.Skill
	err := r.db.Order("name").Find(&skills).Error
	return skills, err
}

// FindByName returns the skill whose name matches case-insensitively, or nil
// when no such skill exists.
func (r *SkillRepo) FindByName(name string) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&skill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// FindByIDLocked returns the skill row locked for update so a concurrent
// release check cannot decide on a stale reference count. Returns nil when
// the row is already gone. The lock clause only applies on dialects that
// support SELECT ... FOR UPDATE.
func (r *SkillRepo) FindByIDLocked(id uuid.UUID) (*models.Skill, error) {
	q := r.db
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var skill models.Skill
	err := q.First(&skill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// CountReferences counts every live reference to the skill across position
// requirements and user profile skill entries.
func (r *SkillRepo) CountReferences(id uuid.UUID) (int64, error) {
	var positionRefs int64
	if err := r.db.Table("position_skills").Where("skill_id = ?", id).Count(&positionRefs).Error; err != nil {
		return 0, err
	}
	var profileRefs int64
	if err := r.db.Model(&models.UserProfileSkill{}).Where("skill_id = ?", id).Count(&profileRefs).Error; err != nil {
		return 0, err
	}
	return positionRefs + profileRefs, nil
}

// Add inserts a new skill into the database
func (r *SkillRepo) Add(skill *models.Skill) error {
	return r.db.Create(skill).Error
}

// Delete removes a skill from the database by id
func (r *SkillRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Skill{}, "id = ?", id).Error
}
