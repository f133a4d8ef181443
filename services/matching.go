package services

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/teambuilder/backend/database"
	"github.com/teambuilder/backend/errs"
	"github.com/teambuilder/backend/models"
)

// FitsUser reports whether a position's required skills are covered by the
// user's skills. Both sides are compared as lower-cased sets; an empty
// requirement set always fits.
func FitsUser(requiredNames, userNames []string) bool {
	userSet := NormalizeSkillSet(userNames)
	for _, name := range requiredNames {
		if _, ok := userSet[strings.ToLower(name)]; !ok {
			return false
		}
	}
	return true
}

type MatchingService struct {
	db database.Database
}

func NewMatchingService(db database.Database) MatchingService {
	return MatchingService{db: db}
}

// SearchProjects lists active projects narrowed by a free-text term over
// name and description and an optional exact role name.
func (s MatchingService) SearchProjects(term, roleName string) ([]*models.Project, error) {
	return s.db.ProjectRepo().FindActive(term, roleName)
}

// ProjectsFittingUser returns the active projects that have at least one
// position fitting the user, optionally narrowed by role name. A position
// with no required skills fits everyone, so projects with skill-less
// positions always appear.
func (s MatchingService) ProjectsFittingUser(userID uuid.UUID, roleName string) ([]*models.Project, error) {
	profile, err := s.db.ProfileRepo().FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errs.NewNotFound("profile")
	}
	userSkills := profile.SkillNames()

	projects, err := s.db.ProjectRepo().FindActive("", roleName)
	if err != nil {
		return nil, err
	}

	var fitting []*models.Project
	for _, project := range projects {
		for _, position := range project.Positions {
			if FitsUser(position.SkillNames(), userSkills) {
				fitting = append(fitting, project)
				break
			}
		}
	}
	return fitting, nil
}

// NeedsForProjects returns the sorted, lower-cased, deduplicated role names
// across the given projects, for the listing filter vocabulary.
func (s MatchingService) NeedsForProjects(projects []*models.Project) ([]string, error) {
	ids := make([]uuid.UUID, 0, len(projects))
	for _, project := range projects {
		ids = append(ids, project.ID)
	}
	names, err := s.db.PositionRepo().RoleNamesForProjects(ids)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(names))
	var needs []string
	for _, name := range names {
		lowered := strings.ToLower(name)
		if _, ok := seen[lowered]; ok {
			continue
		}
		seen[lowered] = struct{}{}
		needs = append(needs, lowered)
	}
	sort.Strings(needs)
	return needs, nil
}
