package events

import "context"

// Streams
const (
	StreamWizard = "events:wizard"
	StreamSync   = "events:sync"
)

// Event types
const (
	EventDraftSubmitted  = "draft_submitted"
	EventCampaignCreated = "campaign_created"
	EventSubmitFailed    = "submit_failed"
	EventSyncProgress    = "sync_progress"
)

type Event struct {
	Type    string         `json:"type"`
	UserID  string         `json:"user_id,omitempty"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
