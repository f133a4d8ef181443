package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teambuilder/backend/models"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// FindByUserID returns the profile of a user with its skill entries, or nil
// when the user has no profile.
func (r *ProfileRepo) FindByUserID(userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.Preload("Skills.Skill").Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update persists changes to the profile row itself (not its skill entries).
func (r *ProfileRepo) Update(profile *models.UserProfile) error {
	return r.db.Omit("Skills").Save(profile).Error
}

// AddSkillEntry inserts a profile-to-skill link.
func (r *ProfileRepo) AddSkillEntry(entry *models.UserProfileSkill) error {
	return r.db.Create(entry).Error
}

// UpdateSkillEntry saves an existing profile-to-skill link.
func (r *ProfileRepo) UpdateSkillEntry(entry *models.UserProfileSkill) error {
	return r.db.Save(entry).Error
}

// FindSkillEntry returns a skill entry by id, or nil when not found.
func (r *ProfileRepo) FindSkillEntry(id uuid.UUID) (*models.UserProfileSkill, error) {
	var entry models.UserProfileSkill
	err := r.db.First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteSkillEntry removes a profile-to-skill link by id.
func (r *ProfileRepo) DeleteSkillEntry(id uuid.UUID) error {
	return r.db.Delete(&models.UserProfileSkill{}, "id = ?", id).Error
}
