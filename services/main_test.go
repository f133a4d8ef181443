package services

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/teambuilder/backend/database"
	"github.com/teambuilder/backend/models"
)

var testDBCounter int64

// newTestDB opens a fresh in-memory database with the full schema. Each test
// gets its own named instance so parallel tests can not see each other.
func newTestDB(t *testing.T) database.Database {
	t.Helper()

	name := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return database.New(db)
}

func createUser(t *testing.T, db database.Database, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email}
	if err := db.UserRepo().Add(user); err != nil {
		t.Fatalf("creating user %s: %v", email, err)
	}
	return user
}

// setUserSkills replaces the user's profile skill list through the regular
// profile save path.
func setUserSkills(t *testing.T, db database.Database, user *models.User, names ...string) {
	t.Helper()
	edits := make([]SkillEntryEdit, 0, len(names))
	for _, name := range names {
		edits = append(edits, SkillEntryEdit{SkillName: name})
	}
	svc := NewProfileService(db, newFakeStore())
	if _, err := svc.Save(user.ID, ProfileInput{FullName: user.Email, Skills: edits}); err != nil {
		t.Fatalf("setting skills for %s: %v", user.Email, err)
	}
}

func seedProject(t *testing.T, db database.Database, owner *models.User, name string, positions ...PositionEdit) *models.Project {
	t.Helper()
	svc := NewProjectService(db, newFakeStore())
	project, err := svc.Save(owner.ID, nil, ProjectInput{Name: name, Positions: positions})
	if err != nil {
		t.Fatalf("seeding project %s: %v", name, err)
	}
	return project
}

// fakeStore records stored and deleted paths in memory.
type fakeStore struct {
	files   map[string][]byte
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: make(map[string][]byte)}
}

func (s *fakeStore) Store(name string, data []byte) (string, error) {
	s.files[name] = data
	return name, nil
}

func (s *fakeStore) Delete(path string) error {
	delete(s.files, path)
	s.deleted = append(s.deleted, path)
	return nil
}

// fakeNotifier records deliveries, optionally failing every one of them.
type fakeNotifier struct {
	sent []string
	fail bool
}

func (n *fakeNotifier) Notify(recipient *models.User, subject, body string) error {
	if n.fail {
		return errors.New("delivery failed")
	}
	n.sent = append(n.sent, fmt.Sprintf("%s: %s", recipient.Email, subject))
	return nil
}
