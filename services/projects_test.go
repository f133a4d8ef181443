package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/teambuilder/backend/errs"
)

func TestSaveProjectCreates(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")

	svc := NewProjectService(db, newFakeStore())
	project, err := svc.Save(owner.ID, nil, ProjectInput{
		Name:        "compilers",
		Description: "a compiler project",
		Positions: []PositionEdit{
			{RoleName: "Developer", Skills: "Go,Rust"},
			{RoleName: "Designer", Skills: "Figma"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if !project.Active {
		t.Error("new project with unfilled positions should be active")
	}
	if len(project.Positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(project.Positions))
	}

	roles := map[string]bool{}
	for _, position := range project.Positions {
		roles[position.RoleName()] = true
	}
	if !roles["Developer"] || !roles["Designer"] {
		t.Errorf("unexpected roles %v", roles)
	}

	for _, name := range []string{"Go", "Rust", "Figma"} {
		if skill, _ := db.SkillRepo().FindByName(name); skill == nil {
			t.Errorf("skill %q not created", name)
		}
	}
}

func TestSaveProjectRequiresName(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")

	svc := NewProjectService(db, newFakeStore())
	_, err := svc.Save(owner.ID, nil, ProjectInput{
		Name:      "   ",
		Positions: []PositionEdit{{RoleName: "Developer"}},
	})
	if err == nil {
		t.Fatal("expected validation error for blank name")
	}
}

// Deleting the sole position through the edit form must fail the whole save
// and mutate nothing.
func TestSaveProjectKeepsMinimumPositions(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")

	project := seedProject(t, db, owner, "compilers",
		PositionEdit{RoleName: "Developer", Skills: "Go"})
	positionID := project.Positions[0].ID

	svc := NewProjectService(db, newFakeStore())
	_, err := svc.Save(owner.ID, &project.ID, ProjectInput{
		Name: "renamed",
		Positions: []PositionEdit{
			{ID: &positionID, Delete: true},
		},
	})
	if !errs.IsMinPositionsError(err) {
		t.Fatalf("expected min positions error, got %v", err)
	}

	// nothing mutated
	reloaded, err := db.ProjectRepo().FindByID(project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Name != "compilers" {
		t.Errorf("project name mutated to %q", reloaded.Name)
	}
	if len(reloaded.Positions) != 1 {
		t.Errorf("expected position to survive, got %d positions", len(reloaded.Positions))
	}
	if skill, _ := db.SkillRepo().FindByName("Go"); skill == nil {
		t.Error("skill released by a failed save")
	}
}

// Removing a skill from a position deletes it when nothing else references
// it, and keeps it when another position still does.
func TestRemoveSkillReleasesOrphanOnly(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")

	project := seedProject(t, db, owner, "compilers",
		PositionEdit{RoleName: "Developer", Skills: "S1,S4"},
		PositionEdit{RoleName: "Reviewer", Skills: "S1"},
	)

	edits := make([]PositionEdit, 0, len(project.Positions))
	for _, position := range project.Positions {
		id := position.ID
		edits = append(edits, PositionEdit{ID: &id, RoleName: position.RoleName(), Skills: "S1"})
	}

	svc := NewProjectService(db, newFakeStore())
	if _, err := svc.Save(owner.ID, &project.ID, ProjectInput{
		Name:      "compilers",
		Positions: edits,
	}); err != nil {
		t.Fatal(err)
	}

	if skill, _ := db.SkillRepo().FindByName("S4"); skill != nil {
		t.Error("S4 lost its last reference but still exists")
	}
	if skill, _ := db.SkillRepo().FindByName("S1"); skill == nil {
		t.Error("S1 is still referenced and must persist")
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	applicant := createUser(t, db, "applicant@example.com")

	project := seedProject(t, db, owner, "compilers",
		PositionEdit{RoleName: "Developer", Skills: "Go", Description: "see ![](uploads/diagram.png)"})
	positionID := project.Positions[0].ID

	applications := NewApplicationService(db, NewDispatcher(nil, true))
	if _, err := applications.Apply(applicant.ID, positionID); err != nil {
		t.Fatal(err)
	}

	store := newFakeStore()
	store.Store("uploads/diagram.png", []byte("img"))

	svc := NewProjectService(db, store)
	if err := svc.Delete(owner.ID, project.ID); err != nil {
		t.Fatal(err)
	}

	if got, _ := db.ProjectRepo().FindByID(project.ID); got != nil {
		t.Error("project still exists")
	}
	if got, _ := db.PositionRepo().FindByID(positionID); got != nil {
		t.Error("position still exists")
	}
	if skill, _ := db.SkillRepo().FindByName("Go"); skill != nil {
		t.Error("orphaned skill still exists")
	}
	if role, _ := db.RoleRepo().FindByName("Developer"); role != nil {
		t.Error("orphaned role still exists")
	}
	if exists, _ := db.ApplicationRepo().Exists(applicant.ID, positionID); exists {
		t.Error("application survived the cascade")
	}
	if _, ok := store.files["uploads/diagram.png"]; ok {
		t.Error("embedded image survived the cascade")
	}
}

func TestSaveProjectRollbackKeepsImages(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")

	store := newFakeStore()
	store.Store("uploads/diagram.png", []byte("img"))

	svc := NewProjectService(db, store)
	project, err := svc.Save(owner.ID, nil, ProjectInput{
		Name:        "compilers",
		Description: "see ![](uploads/diagram.png)",
		Positions:   []PositionEdit{{RoleName: "Developer"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	// An edit referencing a position the project does not own fails after
	// the description diff was already computed. The file must survive.
	foreign := uuid.New()
	_, err = svc.Save(owner.ID, &project.ID, ProjectInput{
		Name:      "compilers",
		Positions: []PositionEdit{{ID: &foreign, RoleName: "Developer"}},
	})
	if !errs.IsNotFound(err) {
		t.Fatalf("expected not-found for foreign position, got %v", err)
	}

	if _, ok := store.files["uploads/diagram.png"]; !ok {
		t.Error("image deleted although the save rolled back")
	}
	stored, _ := db.ProjectRepo().FindByID(project.ID)
	if stored == nil || stored.Description != "see ![](uploads/diagram.png)" {
		t.Error("project description changed despite the rollback")
	}

	// The same description change committed deletes the orphaned file.
	surviving := project.Positions[0].ID
	if _, err := svc.Save(owner.ID, &project.ID, ProjectInput{
		Name:      "compilers",
		Positions: []PositionEdit{{ID: &surviving, RoleName: "Developer"}},
	}); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.files["uploads/diagram.png"]; ok {
		t.Error("orphaned image not deleted after commit")
	}
}

func TestSaveProjectOwnershipHidesExistence(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	stranger := createUser(t, db, "stranger@example.com")

	project := seedProject(t, db, owner, "compilers",
		PositionEdit{RoleName: "Developer"})

	svc := NewProjectService(db, newFakeStore())
	_, err := svc.Save(stranger.ID, &project.ID, ProjectInput{
		Name:      "stolen",
		Positions: []PositionEdit{{RoleName: "Developer"}},
	})
	if !errs.IsNotFound(err) {
		t.Fatalf("expected not-found for foreign project, got %v", err)
	}

	if err := svc.Delete(stranger.ID, project.ID); !errs.IsNotFound(err) {
		t.Fatalf("expected not-found for foreign delete, got %v", err)
	}
}

func TestReassignRoleReleasesPrevious(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")

	project := seedProject(t, db, owner, "compilers",
		PositionEdit{RoleName: "Developer"})
	positionID := project.Positions[0].ID

	svc := NewProjectService(db, newFakeStore())
	if _, err := svc.Save(owner.ID, &project.ID, ProjectInput{
		Name: "compilers",
		Positions: []PositionEdit{
			{ID: &positionID, RoleName: "Maintainer"},
		},
	}); err != nil {
		t.Fatal(err)
	}

	if role, _ := db.RoleRepo().FindByName("Developer"); role != nil {
		t.Error("previous role lost its last reference but still exists")
	}
	if role, _ := db.RoleRepo().FindByName("Maintainer"); role == nil {
		t.Error("new role missing")
	}
}
