package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/teambuilder/backend/database"
	"github.com/teambuilder/backend/errs"
	"github.com/teambuilder/backend/models"
	"github.com/teambuilder/backend/services"
)

type applicationHandler struct {
	responder    Responder
	logger       zerolog.Logger
	db           database.Database
	applications services.ApplicationService
}

func newApplicationHandler(db database.Database, dispatcher *services.Dispatcher) applicationHandler {
	logger := log.With().Str("handlerName", "applicationHandler").Logger()

	return applicationHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		db:           db,
		applications: services.NewApplicationService(db, dispatcher),
	}
}

// ApplicationCollection represents an application listing with its filter
// vocabulary: the requesting owner's project names and the role names of
// their positions
type ApplicationCollection struct {
	Applications []*models.Application `json:"applications"`
	Projects     []string              `json:"projects"`
	Roles        []string              `json:"roles"`
	Total        int                   `json:"total"`
}

// listApplications retrieves the applications to the requesting user's
// projects
// @Summary List received applications
// @Description Retrieves applications to the requesting user's projects, filtered by role, project name and status
// @Tags Applications
// @Produce json
// @Param position query string false "Role name filter"
// @Param project query string false "Project name filter"
// @Param status query string false "Status filter (new, accepted, rejected)"
// @Success 200 {object} ApplicationCollection "Applications with filter vocabulary"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid status"
// @Router /applications [get]
func (h applicationHandler) listApplications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		filter := database.ApplicationFilter{
			RoleName:    r.URL.Query().Get("position"),
			ProjectName: r.URL.Query().Get("project"),
			Status:      r.URL.Query().Get("status"),
		}
		switch filter.Status {
		case "", models.ApplicationStatusNew, models.ApplicationStatusAccepted, models.ApplicationStatusRejected:
		default:
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField(
				"invalid filter", "status", "Status must be new, accepted or rejected"))
			return
		}

		applications, err := h.applications.ListForOwner(userID, filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find applications", "applications", err))
			return
		}

		projectNames, err := h.db.ProjectRepo().NamesByOwner(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project names", "projects", err))
			return
		}

		ownProjects, err := h.db.ProjectRepo().FindByOwner(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}
		projectIDs := make([]uuid.UUID, 0, len(ownProjects))
		for _, project := range ownProjects {
			projectIDs = append(projectIDs, project.ID)
		}
		roleNames, err := h.db.PositionRepo().RoleNamesForProjects(projectIDs)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find role names", "positions", err))
			return
		}

		h.responder.WriteJSON(w, ApplicationCollection{
			Applications: applications,
			Projects:     projectNames,
			Roles:        roleNames,
			Total:        len(applications),
		})
	}
}

// createApplication submits an application for a position
// @Summary Apply for a position
// @Description Submits an application for a position on behalf of the requesting user
// @Tags Applications
// @Produce json
// @Param positionID path string true "Position ID" format(uuid)
// @Success 201 {object} models.Application "Created application"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid positionID"
// @Failure 404 {object} ErrorResponse "Not Found - Position not found"
// @Failure 409 {object} ErrorResponse "Conflict - Already applied"
// @Router /position/{positionID}/applications [post]
func (h applicationHandler) createApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		positionID, err := uuid.Parse(chi.URLParam(r, "positionID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid positionID"))
			return
		}

		application, err := h.applications.Apply(userID, positionID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, application)
	}
}

// acceptApplication accepts an application to one of the requesting user's
// projects
// @Summary Accept application
// @Description Accepts an application, assigns the applicant to the position and rejects competitors
// @Tags Applications
// @Produce json
// @Param applicationID path string true "Application ID" format(uuid)
// @Success 200 {object} models.Application "Accepted application"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid applicationID"
// @Failure 404 {object} ErrorResponse "Not Found - Application not found or not owned"
// @Router /application/{applicationID}/accept [post]
func (h applicationHandler) acceptApplication() http.HandlerFunc {
	return h.transition(func(userID, applicationID uuid.UUID) (*models.Application, error) {
		return h.applications.Accept(userID, applicationID)
	})
}

// rejectApplication rejects an application to one of the requesting user's
// projects
// @Summary Reject application
// @Description Rejects an application, clearing the position assignment if the applicant held it
// @Tags Applications
// @Produce json
// @Param applicationID path string true "Application ID" format(uuid)
// @Success 200 {object} models.Application "Rejected application"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid applicationID"
// @Failure 404 {object} ErrorResponse "Not Found - Application not found or not owned"
// @Router /application/{applicationID}/reject [post]
func (h applicationHandler) rejectApplication() http.HandlerFunc {
	return h.transition(func(userID, applicationID uuid.UUID) (*models.Application, error) {
		return h.applications.Reject(userID, applicationID)
	})
}

func (h applicationHandler) transition(apply func(userID, applicationID uuid.UUID) (*models.Application, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		applicationID, err := uuid.Parse(chi.URLParam(r, "applicationID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid applicationID"))
			return
		}

		application, err := apply(userID, applicationID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, application)
	}
}
