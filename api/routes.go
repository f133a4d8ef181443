package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes sets up the public listing, the authenticated marketplace
// routes and the provisioning endpoint
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/projects", handlers.projectHandler.listProjects())
		r.Post("/user", handlers.userHandler.createUser())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Project Handler endpoints
		r.Get("/projects/fitme", handlers.projectHandler.fitMeProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Post("/project", handlers.projectHandler.createProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

		// Application Handler endpoints
		r.Get("/applications", handlers.applicationHandler.listApplications())
		r.Post("/position/{positionID}/applications", handlers.applicationHandler.createApplication())
		r.Post("/application/{applicationID}/accept", handlers.applicationHandler.acceptApplication())
		r.Post("/application/{applicationID}/reject", handlers.applicationHandler.rejectApplication())

		// Profile Handler endpoints
		r.Get("/profile/{userID}", handlers.profileHandler.getProfile())
		r.Put("/profile", handlers.profileHandler.updateProfile())
	})
}
