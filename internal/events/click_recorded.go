package events

import "time"

// ClickRecorded is emitted when a redirect is served for a short token.
type ClickRecorded struct {
	EventID    string    `json:"eventId"`
	Token      string    `json:"token"`
	OccurredAt time.Time `json:"occurredAt"`
}
