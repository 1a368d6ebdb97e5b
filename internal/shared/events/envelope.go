package events

import "time"

// Envelope is the wire shape for notifications delivered over the event
// stream. Payload carries the event-specific fields (claim id, amounts,
// reasons) as emitted by the publishing service.
type Envelope struct {
	EventID       string         `json:"event_id"`
	EventType     string         `json:"event_type"`
	SourceService string         `json:"source_service"`
	OccurredAtUTC time.Time      `json:"occurred_at_utc"`
	Payload       map[string]any `json:"payload"`
}
