package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/teambuilder/backend/database"
	"github.com/teambuilder/backend/errs"
	"github.com/teambuilder/backend/models"
)

type userHandler struct {
	responder       Responder
	logger          zerolog.Logger
	userRepo        *database.UserRepo
	backendPassword string
}

func newUserHandler(db database.Database, backendPassword string) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		userRepo:        db.UserRepo(),
		backendPassword: backendPassword,
	}
}

// createUser provisions a user and its empty profile. The endpoint stands
// behind the backend password instead of the regular auth middleware: it is
// called by the identity provider, not by end users.
// @Summary Provision user
// @Description Creates a user and its empty profile, guarded by the backend password
// @Tags Users
// @Accept json
// @Produce json
// @Param user body models.User true "User data"
// @Success 201 {object} models.User "Created user with profile"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid user data"
// @Failure 401 {object} ErrorResponse "Unauthorized - Wrong backend password"
// @Failure 409 {object} ErrorResponse "Conflict - Email already exists"
// @Router /user [post]
func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.backendPassword == "" || r.Header.Get("X-Backend-Password") != h.backendPassword {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var user models.User
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&user); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode user request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if strings.TrimSpace(user.Email) == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "email", "Email is required"))
			return
		}

		existing, err := h.userRepo.FindByEmail(user.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewAlreadyExists("user"))
			return
		}

		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, user)
	}
}
