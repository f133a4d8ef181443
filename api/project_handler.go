package api

import (
	"bytes"
	"encoding/json"
	"io"
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

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
	projects  services.ProjectService
	matching  services.MatchingService
}

func newProjectHandler(db database.Database, files services.FileStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
		projects:  services.NewProjectService(db, files),
		matching:  services.NewMatchingService(db),
	}
}

// ProjectCollection represents a project listing with its filter vocabulary
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Needs    []string          `json:"needs"`
	Total    int               `json:"total"`
}

// listProjects retrieves active projects, narrowed by a free-text search
// term (q) and an exact role name (position)
// @Summary List active projects
// @Description Retrieves active projects with their positions, filtered by search term and role name
// @Tags Projects
// @Produce json
// @Param q query string false "Search term over name and description"
// @Param position query string false "Role name filter"
// @Success 200 {object} ProjectCollection "Active projects with filter vocabulary"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("q")
		roleName := r.URL.Query().Get("position")

		projects, err := h.matching.SearchProjects(term, roleName)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		needs, err := h.matching.NeedsForProjects(projects)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find needs", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Needs:    needs,
			Total:    len(projects),
		})
	}
}

// fitMeProjects retrieves active projects with at least one position whose
// required skills are covered by the requesting user's profile
// @Summary List projects fitting the current user
// @Description Retrieves active projects with at least one position the user's skills cover
// @Tags Projects
// @Produce json
// @Param position query string false "Role name filter"
// @Success 200 {object} ProjectCollection "Fitting projects"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /projects/fitme [get]
func (h projectHandler) fitMeProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projects, err := h.matching.ProjectsFittingUser(userID, r.URL.Query().Get("position"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		needs, err := h.matching.NeedsForProjects(projects)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find needs", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Needs:    needs,
			Total:    len(projects),
		})
	}
}

// getProject retrieves a specific project by ID with its positions
// @Summary Get project
// @Description Retrieves detailed information about a specific project by ID with its positions
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project details with positions"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.db.ProjectRepo().FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project with its positions
// @Summary Create project
// @Description Creates a new project with its positions in a single transaction
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body services.ProjectInput true "Project data"
// @Success 201 {object} models.Project "Created project with positions"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Router /project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		input, err := h.decodeInput(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Save(userID, nil, *input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject updates an existing project and its positions
// @Summary Update project
// @Description Updates a project owned by the requesting user, with position edits applied in the same transaction
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body services.ProjectInput true "Updated project data"
// @Success 200 {object} models.Project "Updated project with positions"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found or not owned"
// @Router /project/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		input, err := h.decodeInput(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Save(userID, &projectID, *input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project, its positions, applications and files
// @Summary Delete project
// @Description Deletes a project owned by the requesting user with a full cascade
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found or not owned"
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.projects.Delete(userID, projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

func (h projectHandler) decodeInput(r *http.Request) (*services.ProjectInput, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read request body")
		return nil, errs.NewBadRequestError("failed to read request body")
	}

	var input services.ProjectInput
	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&input); err != nil {
		h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode project request body")
		return nil, errs.NewBadRequestError("malformed request body")
	}
	return &input, nil
}
