package events

import "time"

const ProjectActivityTopic = "projects.activity.v1"

// ProjectMutatedEvent is emitted whenever money or workforce changes on
// a client site, so downstream views can refresh their P&L numbers.
type ProjectMutatedEvent struct {
	EventType  string    `json:"event_type"`
	ClientID   uint      `json:"client_id"`
	Date       string    `json:"date,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
