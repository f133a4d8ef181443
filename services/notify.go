package services

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/teambuilder/backend/config"
	"github.com/teambuilder/backend/models"
)

// Notifier is one delivery channel for user-facing notifications.
type Notifier interface {
	Notify(recipient *models.User, subject, body string) error
}

// Dispatcher fans a notification out to every configured channel. Delivery
// is best-effort: channel errors are logged and never propagated, so a
// failed email or push can not roll back the state transition that
// triggered it.
//
// Status-change notifications can be silenced with
// NOTIFY_STATUS_CHANGES=false; new-application notifications to project
// owners are always sent.
type Dispatcher struct {
	channels      []Notifier
	statusChanges bool
	logger        zerolog.Logger
}

func NewDispatcher(channels []Notifier, statusChanges bool) *Dispatcher {
	return &Dispatcher{
		channels:      channels,
		statusChanges: statusChanges,
		logger:        log.With().Str("serviceName", "notificationDispatcher").Logger(),
	}
}

// NewDispatcherFromConfig builds a dispatcher with an email channel when the
// Resend credentials are present and a push channel when USE_PUSH is set.
func NewDispatcherFromConfig(cfg map[string]string) *Dispatcher {
	var channels []Notifier

	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	fromEmail := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	if apiKey != "" && fromEmail != "" {
		channels = append(channels, NewEmailNotifier(apiKey, fromEmail))
	}

	if config.GetBool(cfg, "USE_PUSH", false) {
		channels = append(channels, NewPushNotifier(
			config.GetString(cfg, "PUSH_ENDPOINT", ""),
			config.GetString(cfg, "PUSH_APP_KEY", ""),
		))
	}

	return NewDispatcher(channels, config.GetBool(cfg, "NOTIFY_STATUS_CHANGES", true))
}

func (d *Dispatcher) send(recipient *models.User, subject, body string) {
	if recipient == nil {
		return
	}
	for _, channel := range d.channels {
		if err := channel.Notify(recipient, subject, body); err != nil {
			d.logger.Warn().
				Err(err).
				Str("recipient", recipient.Email).
				Str("subject", subject).
				Msg("notification delivery failed")
		}
	}
}

// NotifyNewApplication tells a project owner about a fresh application.
func (d *Dispatcher) NotifyNewApplication(owner *models.User, subject, body string) {
	if d == nil {
		return
	}
	d.send(owner, subject, body)
}

// NotifyStatusChange tells an applicant about an accept/reject transition.
// Silent when status-change notifications are disabled.
func (d *Dispatcher) NotifyStatusChange(applicant *models.User, subject, body string) {
	if d == nil || !d.statusChanges {
		return
	}
	d.send(applicant, subject, body)
}
