package services

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/teambuilder/backend/database"
	"github.com/teambuilder/backend/errs"
	"github.com/teambuilder/backend/models"
)

// SkillEntryEdit is one row of the profile's skill list as submitted by the
// client. An entry with an ID and a blank name is a deletion; an entry
// without an ID is a new skill.
type SkillEntryEdit struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	SkillName string     `json:"skill_name"`
	Delete    bool       `json:"delete,omitempty"`
}

// ProfileInput is the payload of a profile save.
type ProfileInput struct {
	FullName  string           `json:"full_name"`
	Biography string           `json:"biography"`
	Avatar    string           `json:"avatar,omitempty"` // base64 PNG, optional
	Skills    []SkillEntryEdit `json:"skills"`
}

// ProfileDetail is a profile together with the projects the user has been
// accepted into.
type ProfileDetail struct {
	Profile      *models.UserProfile `json:"profile"`
	PastProjects []*models.Project   `json:"past_projects"`
}

// ProfileService edits user profiles and their skill entries. Skill entries
// follow the same reference-counting rules as position skills: every entry
// holds exactly one reference, and removing the last reference deletes the
// skill itself.
type ProfileService struct {
	db     database.Database
	files  FileStore
	logger zerolog.Logger
}

func NewProfileService(db database.Database, files FileStore) ProfileService {
	return ProfileService{
		db:     db,
		files:  files,
		logger: log.With().Str("serviceName", "profileService").Logger(),
	}
}

// Detail returns a user's profile with its skill entries and the projects
// the user holds a position in.
func (s ProfileService) Detail(userID uuid.UUID) (*ProfileDetail, error) {
	profile, err := s.db.ProfileRepo().FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errs.NewNotFound("profile")
	}
	projects, err := s.db.ProjectRepo().FindByPositionHolder(userID)
	if err != nil {
		return nil, err
	}
	return &ProfileDetail{Profile: profile, PastProjects: projects}, nil
}

// Save applies a profile edit: name, biography with image diff cleanup, an
// optional new avatar, and the skill entry list. Two entries resolving to
// the same skill name in one submission fail the whole save.
func (s ProfileService) Save(userID uuid.UUID, input ProfileInput) (*models.UserProfile, error) {
	var saved *models.UserProfile
	var oldBiography, oldAvatar string

	err := s.db.Transaction(func(tx database.Database) error {
		profile, err := tx.ProfileRepo().FindByUserID(userID)
		if err != nil {
			return err
		}
		if profile == nil {
			return errs.NewNotFound("profile")
		}
		if err := checkDuplicateEntries(profile, input.Skills); err != nil {
			return err
		}
		oldBiography = profile.Biography
		oldAvatar = profile.AvatarPath

		profile.FullName = input.FullName
		profile.Biography = input.Biography

		if input.Avatar != "" {
			path, err := s.storeAvatar(profile, input)
			if err != nil {
				return err
			}
			profile.AvatarPath = path
		}

		if err := tx.ProfileRepo().Update(profile); err != nil {
			return err
		}

		for _, edit := range input.Skills {
			if err := s.saveSkillEntry(tx, profile, edit); err != nil {
				return err
			}
		}

		saved, err = tx.ProfileRepo().FindByUserID(userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	CleanupRemovedImages(s.files, s.logger, oldBiography, saved.Biography)
	if oldAvatar != "" && oldAvatar != saved.AvatarPath {
		if err := s.files.Delete(oldAvatar); err != nil {
			s.logger.Warn().Err(err).Str("path", oldAvatar).Msg("failed to delete previous avatar")
		}
	}
	return saved, nil
}

// saveSkillEntry applies one skill entry edit. A blank name on an existing
// entry deletes it; a changed name moves the entry to another skill and
// releases the previous one.
func (s ProfileService) saveSkillEntry(tx database.Database, profile *models.UserProfile, edit SkillEntryEdit) error {
	name := strings.TrimSpace(edit.SkillName)

	if edit.ID == nil {
		if name == "" {
			return nil
		}
		skill, err := GetOrCreateSkill(tx, name)
		if err != nil {
			return err
		}
		entry := models.UserProfileSkill{
			UserProfileID: profile.ID,
			SkillID:       skill.ID,
			SkillName:     skill.Name,
		}
		return tx.ProfileRepo().AddSkillEntry(&entry)
	}

	entry, err := tx.ProfileRepo().FindSkillEntry(*edit.ID)
	if err != nil {
		return err
	}
	if entry == nil || entry.UserProfileID != profile.ID {
		return errs.NewNotFound("skill entry")
	}

	if edit.Delete || name == "" {
		if err := tx.ProfileRepo().DeleteSkillEntry(entry.ID); err != nil {
			return err
		}
		return ReleaseSkillIfUnused(tx, entry.SkillID)
	}

	if strings.EqualFold(name, entry.SkillName) {
		return nil
	}

	previousSkillID := entry.SkillID
	skill, err := GetOrCreateSkill(tx, name)
	if err != nil {
		return err
	}
	entry.SkillID = skill.ID
	entry.SkillName = skill.Name
	if err := tx.ProfileRepo().UpdateSkillEntry(entry); err != nil {
		return err
	}
	return ReleaseSkillIfUnused(tx, previousSkillID)
}

// storeAvatar decodes the base64 PNG payload and stores it under a name
// derived from the profile's full name.
func (s ProfileService) storeAvatar(profile *models.UserProfile, input ProfileInput) (string, error) {
	payload := input.Avatar
	if idx := strings.Index(payload, "base64,"); idx >= 0 {
		payload = payload[idx+len("base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", errs.NewBadRequestError("invalid avatar payload")
	}
	slug := slugify(input.FullName)
	if slug == "" {
		slug = profile.UserID.String()
	}
	return s.files.Store(fmt.Sprintf("avatars/%s.png", slug), data)
}

// checkDuplicateEntries rejects a save whose surviving skill names collide.
// Stored entries count too: an entry the submission does not touch keeps its
// name, so submitting a skill the profile already holds is a duplicate.
func checkDuplicateEntries(profile *models.UserProfile, edits []SkillEntryEdit) error {
	byID := make(map[uuid.UUID]SkillEntryEdit, len(edits))
	for _, edit := range edits {
		if edit.ID != nil {
			byID[*edit.ID] = edit
		}
	}

	seen := make(map[string]struct{}, len(profile.Skills)+len(edits))
	survives := func(name string) error {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return errs.NewDuplicateSkillError(name)
		}
		seen[key] = struct{}{}
		return nil
	}

	for _, entry := range profile.Skills {
		name := entry.SkillName
		if edit, ok := byID[entry.ID]; ok {
			name = strings.TrimSpace(edit.SkillName)
			if edit.Delete || name == "" {
				continue
			}
		}
		if err := survives(name); err != nil {
			return err
		}
	}
	for _, edit := range edits {
		if edit.ID != nil {
			continue
		}
		name := strings.TrimSpace(edit.SkillName)
		if name == "" {
			continue
		}
		if err := survives(name); err != nil {
			return err
		}
	}
	return nil
}

// slugify lowers a name and collapses everything outside [a-z0-9] into
// single hyphens.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
