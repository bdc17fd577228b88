package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketsIngested     EventType = "tickets_ingested"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventSourceFallback      EventType = "source_fallback"
)

// Event represents a pipeline event emitted by components.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketsIngestedPayload describes one successfully processed input file.
type TicketsIngestedPayload struct {
	File     string `json:"file"`
	Admitted int    `json:"admitted"`
}

// TicketStatusChangedPayload describes a status mutation.
type TicketStatusChangedPayload struct {
	TicketID  string `json:"ticket_id"`
	NewStatus string `json:"new_status"`
}

// SourceFallbackPayload describes a read served from the local store.
type SourceFallbackPayload struct {
	Reason string `json:"reason"`
}
