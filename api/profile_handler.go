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
	"github.com/teambuilder/backend/services"
)

type profileHandler struct {
	responder Responder
	logger    zerolog.Logger
	profiles  services.ProfileService
}

func newProfileHandler(db database.Database, files services.FileStore) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder: NewResponder(logger),
		logger:    logger,
		profiles:  services.NewProfileService(db, files),
	}
}

// getProfile retrieves a user's profile with skills and past projects
// @Summary Get profile
// @Description Retrieves a user's profile with its skill entries and the projects the user holds a position in
// @Tags Profiles
// @Produce json
// @Param userID path string true "User ID" format(uuid)
// @Success 200 {object} services.ProfileDetail "Profile with past projects"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid userID"
// @Failure 404 {object} ErrorResponse "Not Found - Profile not found"
// @Router /profile/{userID} [get]
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		detail, err := h.profiles.Detail(userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, detail)
	}
}

// updateProfile updates the requesting user's own profile
// @Summary Update own profile
// @Description Updates the requesting user's profile, skill entries and avatar
// @Tags Profiles
// @Accept json
// @Produce json
// @Param profile body services.ProfileInput true "Profile data"
// @Success 200 {object} models.UserProfile "Updated profile"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid profile data"
// @Router /profile [put]
func (h profileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var input services.ProfileInput
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&input); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode profile request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		profile, err := h.profiles.Save(userID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}
