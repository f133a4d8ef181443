package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/teambuilder/backend/database"
	"github.com/teambuilder/backend/errs"
	"github.com/teambuilder/backend/models"
)

// PositionEdit is one row of the position form set attached to a project
// save. A nil ID means a new position; Delete marks an existing one for
// removal.
type PositionEdit struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	RoleName    string     `json:"role_name"`
	Description string     `json:"description"`
	Involvement string     `json:"involvement"`
	Skills      string     `json:"skills"` // comma separated
	Delete      bool       `json:"delete,omitempty"`
}

// ProjectInput is the full project save payload.
type ProjectInput struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Timeline     string         `json:"timeline"`
	Requirements string         `json:"requirements"`
	URL          string         `json:"url"`
	Positions    []PositionEdit `json:"positions"`
}

type ProjectService struct {
	db     database.Database
	files  FileStore
	logger zerolog.Logger
}

// imageCleanup is an old/new rich-text pair collected during a transaction.
// The file diff is deleted only after commit, so a rollback never removes
// files whose references the database still holds.
type imageCleanup struct {
	oldText string
	newText string
}

func NewProjectService(db database.Database, files FileStore) ProjectService {
	return ProjectService{
		db:     db,
		files:  files,
		logger: log.With().Str("serviceName", "projectService").Logger(),
	}
}

// Save creates or updates a project together with its positions as one
// all-or-nothing transaction. Validation happens before any persistence: a
// save that would leave the project without a single surviving position
// fails with a MinPositions validation error and mutates nothing.
func (s ProjectService) Save(actorID uuid.UUID, projectID *uuid.UUID, input ProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errs.NewBadRequestErrorWithField("missing required field", "name", "Project name is required")
	}

	surviving := 0
	for _, edit := range input.Positions {
		if !edit.Delete {
			surviving++
		}
	}
	if surviving == 0 {
		return nil, errs.NewMinPositionsError()
	}
	for _, edit := range input.Positions {
		if !edit.Delete && strings.TrimSpace(edit.RoleName) == "" {
			return nil, errs.NewBadRequestErrorWithField("missing required field", "role_name", "Position role is required")
		}
	}

	var saved *models.Project
	var cleanups []imageCleanup
	err := s.db.Transaction(func(tx database.Database) error {
		project, err := s.upsertProject(tx, actorID, projectID, input, &cleanups)
		if err != nil {
			return err
		}

		for _, edit := range input.Positions {
			if edit.Delete {
				if edit.ID == nil {
					continue
				}
				if err := s.deletePosition(tx, project, *edit.ID, &cleanups); err != nil {
					return err
				}
				continue
			}
			if err := s.savePosition(tx, project, edit, &cleanups); err != nil {
				return err
			}
		}

		if err := recomputeProjectActive(tx, project.ID); err != nil {
			return err
		}

		saved, err = tx.ProjectRepo().FindByID(project.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.runCleanups(cleanups)
	return saved, nil
}

func (s ProjectService) runCleanups(cleanups []imageCleanup) {
	for _, c := range cleanups {
		CleanupRemovedImages(s.files, s.logger, c.oldText, c.newText)
	}
}

func (s ProjectService) upsertProject(tx database.Database, actorID uuid.UUID, projectID *uuid.UUID, input ProjectInput, cleanups *[]imageCleanup) (*models.Project, error) {
	if projectID == nil {
		project := &models.Project{
			Name:         input.Name,
			Description:  input.Description,
			Timeline:     input.Timeline,
			Requirements: input.Requirements,
			URL:          input.URL,
			OwnerID:      actorID,
			Active:       true,
		}
		if err := tx.ProjectRepo().Add(project); err != nil {
			return nil, err
		}
		return project, nil
	}

	project, err := tx.ProjectRepo().FindByID(*projectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.OwnerID != actorID {
		return nil, errs.NewOwnershipError("project")
	}

	*cleanups = append(*cleanups, imageCleanup{project.Description, input.Description})

	project.Name = input.Name
	project.Description = input.Description
	project.Timeline = input.Timeline
	project.Requirements = input.Requirements
	project.URL = input.URL
	if err := tx.ProjectRepo().Update(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s ProjectService) savePosition(tx database.Database, project *models.Project, edit PositionEdit, cleanups *[]imageCleanup) error {
	var position *models.Position
	if edit.ID != nil {
		existing, err := tx.PositionRepo().FindByID(*edit.ID)
		if err != nil {
			return err
		}
		if existing == nil || existing.ProjectID != project.ID {
			return errs.NewOwnershipError("position")
		}
		position = existing
	} else {
		position = &models.Position{ProjectID: project.ID}
	}

	// Role resolution. Reassigning releases the previous role once the
	// position no longer counts as one of its references.
	var previousRoleID *uuid.UUID
	if position.Role == nil || !strings.EqualFold(position.Role.Name, edit.RoleName) {
		role, err := GetOrCreateRole(tx, edit.RoleName)
		if err != nil {
			return err
		}
		previousRoleID = position.RoleID
		position.RoleID = &role.ID
		position.Role = role
	}

	if edit.ID != nil {
		*cleanups = append(*cleanups, imageCleanup{position.Description, edit.Description})
	}
	position.Description = edit.Description
	position.Involvement = edit.Involvement

	if edit.ID == nil {
		if err := tx.PositionRepo().Add(position); err != nil {
			return err
		}
	} else {
		if err := tx.PositionRepo().Update(position); err != nil {
			return err
		}
	}

	if err := s.replacePositionSkills(tx, position, edit.Skills); err != nil {
		return err
	}

	if previousRoleID != nil {
		if err := ReleaseRoleIfUnused(tx, *previousRoleID); err != nil {
			return err
		}
	}
	return nil
}

// replacePositionSkills performs a set-replace of the position's skill
// associations and releases every skill whose last reference was dropped.
func (s ProjectService) replacePositionSkills(tx database.Database, position *models.Position, skillList string) error {
	names := ParseSkillList(skillList)

	resolved := make([]models.Skill, 0, len(names))
	keep := make(map[uuid.UUID]struct{}, len(names))
	for _, name := range names {
		skill, err := GetOrCreateSkill(tx, name)
		if err != nil {
			return err
		}
		resolved = append(resolved, *skill)
		keep[skill.ID] = struct{}{}
	}

	var removed []uuid.UUID
	for _, old := range position.Skills {
		if _, ok := keep[old.ID]; !ok {
			removed = append(removed, old.ID)
		}
	}

	if err := tx.PositionRepo().ReplaceSkills(position, resolved); err != nil {
		return err
	}
	for _, id := range removed {
		if err := ReleaseSkillIfUnused(tx, id); err != nil {
			return err
		}
	}
	position.Skills = resolved
	return nil
}

// deletePosition removes one position and everything hanging off it: its
// applications, its skill associations (releasing orphaned skills), its role
// (released if this was the last position holding it) and the files embedded
// in its description.
func (s ProjectService) deletePosition(tx database.Database, project *models.Project, positionID uuid.UUID, cleanups *[]imageCleanup) error {
	position, err := tx.PositionRepo().FindByID(positionID)
	if err != nil {
		return err
	}
	if position == nil {
		return nil
	}
	if position.ProjectID != project.ID {
		return errs.NewOwnershipError("position")
	}

	if err := tx.ApplicationRepo().DeleteByPosition(position.ID); err != nil {
		return err
	}

	skillIDs := make([]uuid.UUID, 0, len(position.Skills))
	for _, skill := range position.Skills {
		skillIDs = append(skillIDs, skill.ID)
	}
	if err := tx.PositionRepo().ClearSkills(position); err != nil {
		return err
	}

	if err := tx.PositionRepo().Delete(position.ID); err != nil {
		return err
	}

	for _, id := range skillIDs {
		if err := ReleaseSkillIfUnused(tx, id); err != nil {
			return err
		}
	}
	if position.RoleID != nil {
		if err := ReleaseRoleIfUnused(tx, *position.RoleID); err != nil {
			return err
		}
	}

	*cleanups = append(*cleanups, imageCleanup{position.Description, ""})
	return nil
}

// Delete removes a project owned by the actor, cascading through every
// position with the same per-position cleanup as a position removed from
// the edit form.
func (s ProjectService) Delete(actorID, projectID uuid.UUID) error {
	var cleanups []imageCleanup
	err := s.db.Transaction(func(tx database.Database) error {
		project, err := tx.ProjectRepo().FindByID(projectID)
		if err != nil {
			return err
		}
		if project == nil || project.OwnerID != actorID {
			return errs.NewOwnershipError("project")
		}

		for _, position := range project.Positions {
			if err := s.deletePosition(tx, project, position.ID, &cleanups); err != nil {
				return err
			}
		}

		cleanups = append(cleanups, imageCleanup{project.Description, ""})
		return tx.ProjectRepo().Delete(project.ID)
	})
	if err != nil {
		return err
	}

	s.runCleanups(cleanups)
	return nil
}

// recomputeProjectActive re-derives the active flag from position occupancy
// and persists it when it changed.
func recomputeProjectActive(tx database.Database, projectID uuid.UUID) error {
	positions, err := tx.PositionRepo().FindByProject(projectID)
	if err != nil {
		return err
	}
	unfilled := false
	for _, position := range positions {
		if position.UserID == nil {
			unfilled = true
			break
		}
	}

	project, err := tx.ProjectRepo().FindByID(projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return nil
	}
	if project.Active != unfilled {
		return tx.ProjectRepo().SetActive(projectID, unfilled)
	}
	return nil
}
