package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teambuilder/backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func (r *ProjectRepo) preloaded() *gorm.DB {
	return r.db.
		Preload("Owner").
		Preload("Positions.Role").
		Preload("Positions.Skills").
		Preload("Positions.User")
}

// FindByID returns a project with its full position graph, or nil when not
// found.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.preloaded().First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindActive returns active projects, optionally narrowed by a free-text
// term over name and description and by an exact case-insensitive role name.
func (r *ProjectRepo) FindActive(term, roleName string) ([]*models.Project, error) {
	q := r.preloaded().Model(&models.Project{}).Where("projects.active = ?", true)

	if term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(projects.name) LIKE ? OR LOWER(projects.description) LIKE ?", like, like)
	}
	if roleName != "" {
		q = q.Joins("JOIN positions ON positions.project_id = projects.id").
			Joins("JOIN roles ON roles.id = positions.role_id").
			Where("LOWER(roles.name) = LOWER(?)", roleName).
			Distinct("projects.*")
	}

	var projects []*models.Project
	err := q.Find(&projects).Error
	return projects, err
}

// FindByOwner returns all projects owned by a user.
func (r *ProjectRepo) FindByOwner(ownerID uuid.UUID) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.preloaded().Where("owner_id = ?", ownerID).Find(&projects).Error
	return projects, err
}

// FindByPositionHolder returns the projects where the user holds a position.
func (r *ProjectRepo) FindByPositionHolder(userID uuid.UUID) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.preloaded().Model(&models.Project{}).
		Joins("JOIN positions ON positions.project_id = projects.id").
		Where("positions.user_id = ?", userID).
		Distinct("projects.*").
		Find(&projects).Error
	return projects, err
}

// NamesByOwner returns the names of all projects owned by a user, for the
// application filter vocabulary.
func (r *ProjectRepo) NamesByOwner(ownerID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.Model(&models.Project{}).Where("owner_id = ?", ownerID).
		Order("name").Pluck("name", &names).Error
	return names, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Omit("Positions", "Owner").Create(project).Error
}

// Update updates the project row in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Omit("Positions", "Owner").Save(project).Error
}

// SetActive persists the derived active flag.
func (r *ProjectRepo) SetActive(id uuid.UUID, active bool) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Update("active", active).Error
}

// Delete removes the project row by id. Position cleanup happens in the
// services layer before this is called.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}
