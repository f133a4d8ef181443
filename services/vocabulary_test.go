package services

import (
	"testing"

	"github.com/teambuilder/backend/database"
)

func TestGetOrCreateSkillCaseInsensitive(t *testing.T) {
	db := newTestDB(t)

	var firstID, secondID string
	err := db.Transaction(func(tx database.Database) error {
		first, err := GetOrCreateSkill(tx, "Go")
		if err != nil {
			return err
		}
		second, err := GetOrCreateSkill(tx, "gO")
		if err != nil {
			return err
		}
		firstID, secondID = first.ID.String(), second.ID.String()
		if second.Name != "Go" {
			t.Errorf("expected first casing preserved, got %q", second.Name)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if firstID != secondID {
		t.Errorf("case-insensitive lookup created a second skill: %s != %s", firstID, secondID)
	}
}

func TestReleaseSkillDeletesOnlyUnreferenced(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")

	seedProject(t, db, owner, "p1", PositionEdit{RoleName: "Dev", Skills: "Go"})

	skill, err := db.SkillRepo().FindByName("Go")
	if err != nil || skill == nil {
		t.Fatalf("expected skill Go to exist: %v", err)
	}

	// referenced: release must not delete
	err = db.Transaction(func(tx database.Database) error {
		return ReleaseSkillIfUnused(tx, skill.ID)
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := db.SkillRepo().FindByName("Go"); got == nil {
		t.Fatal("skill with live reference was deleted")
	}
}

func TestReleaseSkillIdempotent(t *testing.T) {
	db := newTestDB(t)

	var skillID string
	err := db.Transaction(func(tx database.Database) error {
		skill, err := GetOrCreateSkill(tx, "Orphan")
		if err != nil {
			return err
		}
		skillID = skill.ID.String()

		// no references: first release deletes
		if err := ReleaseSkillIfUnused(tx, skill.ID); err != nil {
			return err
		}
		// second release is a no-op
		return ReleaseSkillIfUnused(tx, skill.ID)
	})
	if err != nil {
		t.Fatalf("double release errored: %v", err)
	}
	if got, _ := db.SkillRepo().FindByName("Orphan"); got != nil {
		t.Errorf("unreferenced skill %s still in storage", skillID)
	}
}

func TestReleaseRoleDeletesOnlyUnreferenced(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")

	seedProject(t, db, owner, "p1", PositionEdit{RoleName: "Designer"})

	role, err := db.RoleRepo().FindByName("Designer")
	if err != nil || role == nil {
		t.Fatalf("expected role Designer to exist: %v", err)
	}

	err = db.Transaction(func(tx database.Database) error {
		return ReleaseRoleIfUnused(tx, role.ID)
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := db.RoleRepo().FindByName("Designer"); got == nil {
		t.Fatal("role with live reference was deleted")
	}
}
