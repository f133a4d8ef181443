package services

import (
	"github.com/google/uuid"

	"github.com/teambuilder/backend/database"
	"github.com/teambuilder/backend/models"
)

// The vocabulary store manages Skill and Role as deduplicated shared
// entities whose existence is tied to their references. Lookups are
// case-insensitive; the first writer's casing wins and is preserved on every
// later match. Release checks run inside the same transaction as the
// mutation that removed the reference, against a locked row, so two
// concurrent removals cannot both decide on stale counts.

// GetOrCreateSkill returns the existing skill matching name
// case-insensitively, or creates one with the given casing.
func GetOrCreateSkill(tx database.Database, name string) (*models.Skill, error) {
	skill, err := tx.SkillRepo().FindByName(name)
	if err != nil {
		return nil, err
	}
	if skill != nil {
		return skill, nil
	}
	skill = &models.Skill{Name: name}
	if err := tx.SkillRepo().Add(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// GetOrCreateRole returns the existing role matching name
// case-insensitively, or creates one with the given casing.
func GetOrCreateRole(tx database.Database, name string) (*models.Role, error) {
	role, err := tx.RoleRepo().FindByName(name)
	if err != nil {
		return nil, err
	}
	if role != nil {
		return role, nil
	}
	role = &models.Role{Name: name}
	if err := tx.RoleRepo().Add(role); err != nil {
		return nil, err
	}
	return role, nil
}

// ReleaseSkillIfUnused deletes the skill iff no position or profile
// references remain. Calling it for an already deleted skill is a no-op.
func ReleaseSkillIfUnused(tx database.Database, id uuid.UUID) error {
	skill, err := tx.SkillRepo().FindByIDLocked(id)
	if err != nil {
		return err
	}
	if skill == nil {
		// already released by an earlier call
		return nil
	}
	refs, err := tx.SkillRepo().CountReferences(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return nil
	}
	return tx.SkillRepo().Delete(id)
}

// ReleaseRoleIfUnused deletes the role iff no position references remain.
// Calling it for an already deleted role is a no-op.
func ReleaseRoleIfUnused(tx database.Database, id uuid.UUID) error {
	role, err := tx.RoleRepo().FindByIDLocked(id)
	if err != nil {
		return err
	}
	if role == nil {
		return nil
	}
	refs, err := tx.RoleRepo().CountReferences(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return nil
	}
	return tx.RoleRepo().Delete(id)
}
