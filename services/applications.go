package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/teambuilder/backend/database"
	"github.com/teambuilder/backend/errs"
	"github.com/teambuilder/backend/models"
)

// ApplicationService drives the application state machine:
//
//	new -> accepted
//	new -> rejected
//	accepted -> rejected
//
// Rejection is terminal for the (applicant, position) pair; the uniqueness
// constraint blocks re-application. Accepting one application force-rejects
// every other non-rejected application for the same position and assigns
// the applicant to it; both transitions re-derive the project's active flag.
type ApplicationService struct {
	db         database.Database
	dispatcher *Dispatcher
	logger     zerolog.Logger
}

func NewApplicationService(db database.Database, dispatcher *Dispatcher) ApplicationService {
	return ApplicationService{
		db:         db,
		dispatcher: dispatcher,
		logger:     log.With().Str("serviceName", "applicationService").Logger(),
	}
}

// queuedNotification is collected during the transaction and delivered only
// after commit, so a rollback never produces a stray notification and a
// delivery failure never rolls back the transition.
type queuedNotification struct {
	recipient *models.User
	subject   string
	body      string
	status    bool // true: status-change notification, false: new application
}

func (s ApplicationService) deliver(queue []queuedNotification) {
	for _, n := range queue {
		if n.status {
			s.dispatcher.NotifyStatusChange(n.recipient, n.subject, n.body)
		} else {
			s.dispatcher.NotifyNewApplication(n.recipient, n.subject, n.body)
		}
	}
}

// Apply submits a new application for a position. A second application for
// the same (applicant, position) pair is rejected with a duplicate error,
// whatever the status of the first one.
func (s ApplicationService) Apply(applicantID, positionID uuid.UUID) (*models.Application, error) {
	var application *models.Application
	var queue []queuedNotification

	err := s.db.Transaction(func(tx database.Database) error {
		position, err := tx.PositionRepo().FindByID(positionID)
		if err != nil {
			return err
		}
		if position == nil || position.Project == nil {
			return errs.NewNotFound("position")
		}

		exists, err := tx.ApplicationRepo().Exists(applicantID, positionID)
		if err != nil {
			return err
		}
		if exists {
			return errs.NewDuplicateApplicationError()
		}

		application = &models.Application{
			ApplicantID: applicantID,
			PositionID:  positionID,
			Status:      models.ApplicationStatusNew,
		}
		if err := tx.ApplicationRepo().Add(application); err != nil {
			return err
		}

		owner, err := tx.UserRepo().FindByID(position.Project.OwnerID)
		if err != nil {
			return err
		}
		if owner != nil {
			queue = append(queue, queuedNotification{
				recipient: owner,
				subject:   fmt.Sprintf("New application for %s", position.RoleName()),
				body: fmt.Sprintf("A new application was submitted for the %s position in the %q project.",
					position.RoleName(), position.Project.Name),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deliver(queue)
	return application, nil
}

// Accept marks an application accepted on behalf of the owning project's
// owner, assigns the applicant to the position and force-rejects every
// competing application.
func (s ApplicationService) Accept(actorID, applicationID uuid.UUID) (*models.Application, error) {
	var accepted *models.Application
	var queue []queuedNotification

	err := s.db.Transaction(func(tx database.Database) error {
		application, err := s.ownedApplication(tx, actorID, applicationID)
		if err != nil {
			return err
		}
		// rejection is terminal, a rejected application can not come back
		if application.Status == models.ApplicationStatusRejected {
			return errs.NewInvalidStatusError("a rejected application cannot be accepted")
		}

		if err := tx.ApplicationRepo().UpdateStatus(application.ID, models.ApplicationStatusAccepted); err != nil {
			return err
		}
		application.Status = models.ApplicationStatusAccepted

		if err := tx.PositionRepo().Assign(application.PositionID, &application.ApplicantID); err != nil {
			return err
		}

		competing, err := tx.ApplicationRepo().FindCompetingForPosition(application.PositionID, application.ID)
		if err != nil {
			return err
		}
		for _, other := range competing {
			if err := tx.ApplicationRepo().UpdateStatus(other.ID, models.ApplicationStatusRejected); err != nil {
				return err
			}
			queue = append(queue, s.statusNotification(other.Applicant, application.Position, "rejected"))
		}

		if err := recomputeProjectActive(tx, application.Position.ProjectID); err != nil {
			return err
		}

		queue = append(queue, s.statusNotification(application.Applicant, application.Position, "accepted"))
		accepted = application
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deliver(queue)
	return accepted, nil
}

// Reject marks an application rejected. When the applicant held the
// position the assignment is cleared, which can flip the project back to
// active.
func (s ApplicationService) Reject(actorID, applicationID uuid.UUID) (*models.Application, error) {
	var rejected *models.Application
	var queue []queuedNotification

	err := s.db.Transaction(func(tx database.Database) error {
		application, err := s.ownedApplication(tx, actorID, applicationID)
		if err != nil {
			return err
		}

		if err := tx.ApplicationRepo().UpdateStatus(application.ID, models.ApplicationStatusRejected); err != nil {
			return err
		}
		application.Status = models.ApplicationStatusRejected

		position := application.Position
		if position.UserID != nil && *position.UserID == application.ApplicantID {
			if err := tx.PositionRepo().Assign(position.ID, nil); err != nil {
				return err
			}
		}

		if err := recomputeProjectActive(tx, position.ProjectID); err != nil {
			return err
		}

		queue = append(queue, s.statusNotification(application.Applicant, position, "rejected"))
		rejected = application
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deliver(queue)
	return rejected, nil
}

// ListForOwner returns the applications to the actor's projects, narrowed
// by the filter.
func (s ApplicationService) ListForOwner(ownerID uuid.UUID, filter database.ApplicationFilter) ([]*models.Application, error) {
	return s.db.ApplicationRepo().FindForOwner(ownerID, filter)
}

// ownedApplication loads an application and verifies the actor owns the
// project behind it. Both a missing application and a foreign one surface
// as not-found.
func (s ApplicationService) ownedApplication(tx database.Database, actorID, applicationID uuid.UUID) (*models.Application, error) {
	application, err := tx.ApplicationRepo().FindByID(applicationID)
	if err != nil {
		return nil, err
	}
	if application == nil || application.Position == nil || application.Position.Project == nil ||
		application.Position.Project.OwnerID != actorID {
		return nil, errs.NewOwnershipError("application")
	}
	return application, nil
}

func (s ApplicationService) statusNotification(applicant *models.User, position *models.Position, status string) queuedNotification {
	projectName := ""
	if position.Project != nil {
		projectName = position.Project.Name
	}
	return queuedNotification{
		recipient: applicant,
		subject:   "Your application status has changed",
		body: fmt.Sprintf("You have been %s for the %s position in the %q project.",
			status, position.RoleName(), projectName),
		status: true,
	}
}
