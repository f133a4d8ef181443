package services

import (
	"testing"
)

func TestFitsUser(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		user     []string
		want     bool
	}{
		{"superset fits", []string{"Go", "Rust"}, []string{"Go", "Rust", "Python"}, true},
		{"missing skill does not fit", []string{"Go", "Rust"}, []string{"Go"}, false},
		{"exact match fits", []string{"Go"}, []string{"Go"}, true},
		{"case-insensitive", []string{"go", "RUST"}, []string{"Go", "rust"}, true},
		{"no requirements fits everyone", nil, nil, true},
		{"no requirements fits skilled user", nil, []string{"Go"}, true},
		{"requirements but no skills", []string{"Go"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitsUser(tt.required, tt.user); got != tt.want {
				t.Errorf("FitsUser(%v, %v) = %v, want %v", tt.required, tt.user, got, tt.want)
			}
		})
	}
}

// Adding a skill to the user's set can turn a non-fitting position into a
// fitting one but never the reverse.
func TestFitsUserMonotonic(t *testing.T) {
	required := []string{"Go", "Rust"}
	userSkills := []string{}

	previous := FitsUser(required, userSkills)
	for _, added := range []string{"Python", "Go", "TypeScript", "Rust", "SQL"} {
		userSkills = append(userSkills, added)
		current := FitsUser(required, userSkills)
		if previous && !current {
			t.Fatalf("adding %q flipped a fitting position to non-fitting", added)
		}
		previous = current
	}
	if !previous {
		t.Fatal("expected full skill set to fit")
	}
}

func TestProjectsFittingUser(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	skilled := createUser(t, db, "skilled@example.com")
	junior := createUser(t, db, "junior@example.com")

	seedProject(t, db, owner, "compilers",
		PositionEdit{RoleName: "Developer", Skills: "Go,Rust"})
	setUserSkills(t, db, skilled, "Go", "Rust", "Python")
	setUserSkills(t, db, junior, "Go")

	matching := NewMatchingService(db)

	fitting, err := matching.ProjectsFittingUser(skilled.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(fitting) != 1 || fitting[0].Name != "compilers" {
		t.Errorf("expected skilled user to fit compilers, got %d projects", len(fitting))
	}

	fitting, err = matching.ProjectsFittingUser(junior.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(fitting) != 0 {
		t.Errorf("expected junior user to fit nothing, got %d projects", len(fitting))
	}
}

func TestProjectsFittingUserSkillLessPosition(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	user := createUser(t, db, "user@example.com")

	seedProject(t, db, owner, "open-to-all", PositionEdit{RoleName: "Helper"})

	fitting, err := NewMatchingService(db).ProjectsFittingUser(user.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(fitting) != 1 {
		t.Errorf("position without required skills should fit everyone, got %d projects", len(fitting))
	}
}

func TestSearchProjects(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")

	seedProject(t, db, owner, "compilers",
		PositionEdit{RoleName: "Developer", Skills: "Go"})
	seedProject(t, db, owner, "website",
		PositionEdit{RoleName: "Designer", Skills: "CSS"})

	matching := NewMatchingService(db)

	found, err := matching.SearchProjects("compil", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].Name != "compilers" {
		t.Errorf("term search: got %d projects", len(found))
	}

	found, err = matching.SearchProjects("", "designer")
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].Name != "website" {
		t.Errorf("role search: got %d projects", len(found))
	}

	needs, err := matching.NeedsForProjects(found)
	if err != nil {
		t.Fatal(err)
	}
	if len(needs) != 1 || needs[0] != "designer" {
		t.Errorf("needs vocabulary: got %v", needs)
	}
}
