package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/teambuilder/backend/models"
)

// PushNotifier delivers notifications to a per-user push channel over HTTP.
// Each user listens on "team-builder-<userID>".
type PushNotifier struct {
	endpoint string
	appKey   string
	client   *http.Client
}

func NewPushNotifier(endpoint, appKey string) *PushNotifier {
	return &PushNotifier{
		endpoint: endpoint,
		appKey:   appKey,
		client:   &http.Client{},
	}
}

type pushEvent struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (n *PushNotifier) Notify(recipient *models.User, subject, body string) error {
	if n.endpoint == "" {
		return fmt.Errorf("push endpoint not configured")
	}

	event := pushEvent{
		Channel: "team-builder-" + recipient.ID.String(),
		Event:   "new_notification",
		Title:   subject,
		Message: body,
	}
	jsonPayload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal push event: %w", err)
	}

	req, err := http.NewRequest("POST", n.endpoint+"/events", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.appKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send push event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}
	return nil
}
