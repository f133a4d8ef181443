package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teambuilder/backend/models"
)

type ApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) *ApplicationRepo {
	return &ApplicationRepo{db}
}

// ApplicationFilter narrows the owner-scoped application listing.
type ApplicationFilter struct {
	RoleName    string // exact, case-insensitive
	ProjectName string // exact, case-insensitive
	Status      string // new, accepted or rejected
}

// FindByID returns an application with its position and owning project, or
// nil when not found.
func (r *ApplicationRepo) FindByID(id uuid.UUID) (*models.Application, error) {
	var application models.Application
	err := r.db.
		Preload("Applicant.Profile").
		Preload("Position.Role").
		Preload("Position.Project").
		First(&application, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// Exists reports whether an application for the (applicant, position) pair
// exists, regardless of status.
func (r *ApplicationRepo) Exists(applicantID, positionID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("applicant_id = ? AND position_id = ?", applicantID, positionID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new application into the database
func (r *ApplicationRepo) Add(application *models.Application) error {
	return r.db.Omit("Applicant", "Position").Create(application).Error
}

// UpdateStatus persists a status transition.
func (r *ApplicationRepo) UpdateStatus(id uuid.UUID, status string) error {
	return r.db.Model(&models.Application{}).Where("id = ?", id).Update("status", status).Error
}

// FindCompetingForPosition returns the other applications on a position that
// are not yet rejected. Used when an acceptance force-rejects the rest.
func (r *ApplicationRepo) FindCompetingForPosition(positionID, excludeID uuid.UUID) ([]*models.Application, error) {
	var applications []*models.Application
	err := r.db.
		Preload("Applicant.Profile").
		Where("position_id = ? AND id <> ? AND status <> ?",
			positionID, excludeID, models.ApplicationStatusRejected).
		Find(&applications).Error
	return applications, err
}

// FindForOwner returns applications to positions of projects owned by the
// given user, narrowed by the filter.
func (r *ApplicationRepo) FindForOwner(ownerID uuid.UUID, filter ApplicationFilter) ([]*models.Application, error) {
	q := r.db.Model(&models.Application{}).
		Joins("JOIN positions ON positions.id = applications.position_id").
		Joins("JOIN projects ON projects.id = positions.project_id").
		Where("projects.owner_id = ?", ownerID)

	if filter.RoleName != "" {
		q = q.Joins("JOIN roles ON roles.id = positions.role_id").
			Where("LOWER(roles.name) = LOWER(?)", filter.RoleName)
	}
	if filter.ProjectName != "" {
		q = q.Where("LOWER(projects.name) = LOWER(?)", filter.ProjectName)
	}
	if filter.Status != "" {
		q = q.Where("applications.status = ?", filter.Status)
	}

	var applications []*models.Application
	err := q.
		Preload("Applicant.Profile").
		Preload("Position.Role").
		Preload("Position.Project").
		Find(&applications).Error
	return applications, err
}

// DeleteByPosition removes all applications for a position. Used by the
// project cascade.
func (r *ApplicationRepo) DeleteByPosition(positionID uuid.UUID) error {
	return r.db.Delete(&models.Application{}, "position_id = ?", positionID).Error
}
