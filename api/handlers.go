package api

import (
	"github.com/teambuilder/backend/database"
	"github.com/teambuilder/backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, backendPassword string, files services.FileStore, dispatcher *services.Dispatcher) *routeHandlers {
	return &routeHandlers{
		projectHandler:     newProjectHandler(db, files),
		applicationHandler: newApplicationHandler(db, dispatcher),
		profileHandler:     newProfileHandler(db, files),
		userHandler:        newUserHandler(db, backendPassword),
	}
}
