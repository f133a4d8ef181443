package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teambuilder/backend/models"
)

type PositionRepo struct {
	db *gorm.DB
}

func NewPositionRepo(db *gorm.DB) *PositionRepo {
	return &PositionRepo{db}
}

// FindByID returns a position with its role, skills and project, or nil when
// not found.
func (r *PositionRepo) FindByID(id uuid.UUID) (*models.Position, error) {
	var position models.Position
	err := r.db.
		Preload("Role").
		Preload("Skills").
		Preload("Project").
		First(&position, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &position, nil
}

// FindByProject returns all positions of a project with roles and skills.
func (r *PositionRepo) FindByProject(projectID uuid.UUID) ([]*models.Position, error) {
	var positions []*models.Position
	err := r.db.
		Preload("Role").
		Preload("Skills").
		Where("project_id = ?", projectID).
		Find(&positions).Error
	return positions, err
}

// Add inserts a new position into the database
func (r *PositionRepo) Add(position *models.Position) error {
	return r.db.Omit("Skills", "Role", "Project", "User").Create(position).Error
}

// Update updates the position row in the database
func (r *PositionRepo) Update(position *models.Position) error {
	return r.db.Omit("Skills", "Role", "Project", "User").Save(position).Error
}

// Assign sets or clears the assigned user of a position.
func (r *PositionRepo) Assign(id uuid.UUID, userID *uuid.UUID) error {
	return r.db.Model(&models.Position{}).Where("id = ?", id).Update("user_id", userID).Error
}

// ReplaceSkills performs a set-replace of the position's skill associations.
// The caller is responsible for releasing skills that dropped their last
// reference.
func (r *PositionRepo) ReplaceSkills(position *models.Position, skills []models.Skill) error {
	refs := make([]interface{}, 0, len(skills))
	for i := range skills {
		refs = append(refs, &skills[i])
	}
	return r.db.Model(position).Association("Skills").Replace(refs...)
}

// ClearSkills removes all skill associations of a position.
func (r *PositionRepo) ClearSkills(position *models.Position) error {
	return r.db.Model(position).Association("Skills").Clear()
}

// Delete removes a position row by id.
func (r *PositionRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Position{}, "id = ?", id).Error
}

// RoleNamesForProjects returns the role names of positions across the given
// projects, for the "needs" filter vocabulary.
func (r *PositionRepo) RoleNamesForProjects(projectIDs []uuid.UUID) ([]string, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var names []string
	err := r.db.Model(&models.Position{}).
		Joins("JOIN roles ON roles.id = positions.role_id").
		Where("positions.project_id IN ?", projectIDs).
		Distinct().
		Order("roles.name").
		Pluck("roles.name", &names).Error
	return names, err
}
