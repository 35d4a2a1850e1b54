// Package event defines the domain events the API publishes to Kafka and
// the notifier consumes.
package event

import (
	"encoding/json"
	"time"
)

// Event types.
const (
	TypeApplicationSubmitted     = "ApplicationSubmitted"
	TypeApplicationStatusChanged = "ApplicationStatusChanged"
	TypeMessageReceived          = "MessageReceived"
)

// Envelope wraps every published event.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// ApplicationSubmitted fires when a job application is accepted.
type ApplicationSubmitted struct {
	ApplicationID   string `json:"application_id"`
	ApplicationCode string `json:"application_code"`
	VacancyID       string `json:"vacancy_id"`
	VacancyTitle    string `json:"vacancy_title"`
	Name            string `json:"name"`
	Email           string `json:"email"`
}

// ApplicationStatusChanged fires when an admin moves an application to a new
// status.
type ApplicationStatusChanged struct {
	ApplicationID   string `json:"application_id"`
	ApplicationCode string `json:"application_code"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	OldStatus       string `json:"old_status"`
	NewStatus       string `json:"new_status"`
}

// MessageReceived fires when a contact-form message is stored.
type MessageReceived struct {
	MessageID string `json:"message_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
}
