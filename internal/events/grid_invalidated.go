package events

import "time"

const GridInvalidationTopic = "attendance.grid.invalidation.v1"

// GridInvalidatedEvent tells presentation-layer consumers that the
// monthly grid for a billing period changed and cached views are stale.
type GridInvalidatedEvent struct {
	EventType  string    `json:"event_type"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	CellCount  int       `json:"cell_count"`
	OccurredAt time.Time `json:"occurred_at"`
}
