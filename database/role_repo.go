package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teambuilder/backend/models"
)

type RoleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) *RoleRepo {
	return &RoleRepo{db}
}

// FindAll returns all roles from the database
func (r *RoleRepo) FindAll() ([]*models.Role, error) {
	var roles []*models.Role
	err := r.db.Order("name").Find(&roles).Error
	return roles, err
}

// FindByName returns the role whose name matches case-insensitively, or nil
// when no such role exists.
func (r *RoleRepo) FindByName(name string) (*models.Role, error) {
	var role models.Role
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByIDLocked returns the role row locked for update, or nil when the row
// is already gone. See SkillRepo.FindByIDLocked.
func (r *RoleRepo) FindByIDLocked(id uuid.UUID) (*models.Role, error) {
	q := r.db
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var role models.Role
	err := q.First(&role, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// CountReferences counts the positions still pointing at the role.
func (r *RoleRepo) CountReferences(id uuid.UUID) (int64, error) {
	var refs int64
	err := r.db.Model(&models.Position{}).Where("role_id = ?", id).Count(&refs).Error
	return refs, err
}

// Add inserts a new role into the database
func (r *RoleRepo) Add(role *models.Role) error {
	return r.db.Create(role).Error
}

// Delete removes a role from the database by id
func (r *RoleRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Role{}, "id = ?", id).Error
}
