package services

import (
	"encoding/base64"
	"testing"

	"github.com/teambuilder/backend/errs"
)

func TestSaveProfileSkillEntries(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user@example.com")

	svc := NewProfileService(db, newFakeStore())

	profile, err := svc.Save(user.ID, ProfileInput{
		FullName: "Ada Lovelace",
		Skills: []SkillEntryEdit{
			{SkillName: "Go"},
			{SkillName: "Rust"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(profile.Skills) != 2 {
		t.Fatalf("expected 2 skill entries, got %d", len(profile.Skills))
	}

	// rename one entry: new skill created, old one released
	var goEntry, rustEntry SkillEntryEdit
	for _, entry := range profile.Skills {
		id := entry.ID
		switch entry.SkillName {
		case "Go":
			goEntry = SkillEntryEdit{ID: &id, SkillName: "Zig"}
		case "Rust":
			rustEntry = SkillEntryEdit{ID: &id, SkillName: "Rust"}
		}
	}

	profile, err = svc.Save(user.ID, ProfileInput{
		FullName: "Ada Lovelace",
		Skills:   []SkillEntryEdit{goEntry, rustEntry},
	})
	if err != nil {
		t.Fatal(err)
	}
	if skill, _ := db.SkillRepo().FindByName("Go"); skill != nil {
		t.Error("renamed-away skill lost its last reference but still exists")
	}
	if skill, _ := db.SkillRepo().FindByName("Zig"); skill == nil {
		t.Error("renamed-to skill missing")
	}

	// blank name on an existing entry deletes it
	var edits []SkillEntryEdit
	for _, entry := range profile.Skills {
		id := entry.ID
		name := entry.SkillName
		if name == "Zig" {
			name = ""
		}
		edits = append(edits, SkillEntryEdit{ID: &id, SkillName: name})
	}
	profile, err = svc.Save(user.ID, ProfileInput{FullName: "Ada Lovelace", Skills: edits})
	if err != nil {
		t.Fatal(err)
	}
	if len(profile.Skills) != 1 || profile.Skills[0].SkillName != "Rust" {
		t.Errorf("expected only Rust to survive, got %v", profile.SkillNames())
	}
	if skill, _ := db.SkillRepo().FindByName("Zig"); skill != nil {
		t.Error("deleted entry's skill still exists")
	}
}

func TestSaveProfileRejectsDuplicateSkills(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user@example.com")

	svc := NewProfileService(db, newFakeStore())
	_, err := svc.Save(user.ID, ProfileInput{
		FullName: "Ada",
		Skills: []SkillEntryEdit{
			{SkillName: "Go"},
			{SkillName: "go"},
		},
	})
	if !errs.IsDuplicateSkillError(err) {
		t.Fatalf("expected duplicate skill error, got %v", err)
	}
}

// Uniqueness holds across stored entries too: submitting a skill the
// profile already holds must fail instead of creating a second entry.
func TestSaveProfileRejectsSkillAlreadyHeld(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user@example.com")

	svc := NewProfileService(db, newFakeStore())
	profile, err := svc.Save(user.ID, ProfileInput{
		FullName: "Ada",
		Skills:   []SkillEntryEdit{{SkillName: "Go"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Save(user.ID, ProfileInput{
		FullName: "Ada",
		Skills:   []SkillEntryEdit{{SkillName: "go"}},
	})
	if !errs.IsDuplicateSkillError(err) {
		t.Fatalf("expected duplicate skill error, got %v", err)
	}

	reloaded, err := db.ProfileRepo().FindByUserID(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Skills) != 1 {
		t.Errorf("expected 1 skill entry, got %v", reloaded.SkillNames())
	}

	// renaming the held entry to its own name is not a collision
	entryID := profile.Skills[0].ID
	if _, err := svc.Save(user.ID, ProfileInput{
		FullName: "Ada",
		Skills:   []SkillEntryEdit{{ID: &entryID, SkillName: "GO"}},
	}); err != nil {
		t.Errorf("self-rename flagged as duplicate: %v", err)
	}
}

func TestSaveProfileAvatar(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user@example.com")

	store := newFakeStore()
	svc := NewProfileService(db, store)

	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png bytes"))
	profile, err := svc.Save(user.ID, ProfileInput{FullName: "Ada Lovelace", Avatar: payload})
	if err != nil {
		t.Fatal(err)
	}
	if profile.AvatarPath != "avatars/ada-lovelace.png" {
		t.Errorf("unexpected avatar path %q", profile.AvatarPath)
	}
	if _, ok := store.files[profile.AvatarPath]; !ok {
		t.Error("avatar file not stored")
	}

	// replacing the avatar deletes the previous file
	payload2 := base64.StdEncoding.EncodeToString([]byte("new png"))
	profile, err = svc.Save(user.ID, ProfileInput{FullName: "Ada King", Avatar: payload2})
	if err != nil {
		t.Fatal(err)
	}
	if profile.AvatarPath != "avatars/ada-king.png" {
		t.Errorf("unexpected avatar path %q", profile.AvatarPath)
	}
	if _, ok := store.files["avatars/ada-lovelace.png"]; ok {
		t.Error("previous avatar file not deleted")
	}
}

func TestSaveProfileInvalidAvatar(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user@example.com")

	svc := NewProfileService(db, newFakeStore())
	if _, err := svc.Save(user.ID, ProfileInput{FullName: "Ada", Avatar: "not base64 at all!!"}); err == nil {
		t.Fatal("expected error for malformed avatar payload")
	}
}

func TestProfileDetailIncludesPastProjects(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	applicant := createUser(t, db, "applicant@example.com")

	project := seedProject(t, db, owner, "compilers",
		PositionEdit{RoleName: "Developer"})

	applications := NewApplicationService(db, NewDispatcher(nil, true))
	app, err := applications.Apply(applicant.ID, project.Positions[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := applications.Accept(owner.ID, app.ID); err != nil {
		t.Fatal(err)
	}

	detail, err := NewProfileService(db, newFakeStore()).Detail(applicant.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.PastProjects) != 1 || detail.PastProjects[0].Name != "compilers" {
		t.Errorf("expected compilers in past projects, got %d entries", len(detail.PastProjects))
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Ada Lovelace", "ada-lovelace"},
		{"  spaced  out  ", "spaced-out"},
		{"Ada_Lovelace 2", "ada-lovelace-2"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
