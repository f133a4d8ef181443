package database

import (
	"gorm.io/gorm"
)

type Database struct {
	db              *gorm.DB
	skillRepo       *SkillRepo
	roleRepo        *RoleRepo
	userRepo        *UserRepo
	profileRepo     *ProfileRepo
	projectRepo     *ProjectRepo
	positionRepo    *PositionRepo
	applicationRepo *ApplicationRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:              db,
		skillRepo:       NewSkillRepo(db),
		roleRepo:        NewRoleRepo(db),
		userRepo:        NewUserRepo(db),
		profileRepo:     NewProfileRepo(db),
		projectRepo:     NewProjectRepo(db),
		positionRepo:    NewPositionRepo(db),
		applicationRepo: NewApplicationRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) RoleRepo() *RoleRepo {
	return d.roleRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) PositionRepo() *PositionRepo {
	return d.positionRepo
}

func (d Database) ApplicationRepo() *ApplicationRepo {
	return d.applicationRepo
}

// DB returns the underlying GORM instance for code that needs raw access.
func (d Database) DB() *gorm.DB {
	return d.db
}

// Transaction runs fn against a repository set bound to one database
// transaction. Every mutating domain operation goes through here so the
// cascade rules and the vocabulary release checks stay atomic with the
// mutation that triggered them.
func (d Database) Transaction(fn func(tx Database) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
