package models

import "time"

// Account sync statuses, reported by the marketing backend. Read-only on this
// side: polled, cached, and pushed to clients, never mutated locally.
const (
	SyncStatusNotStarted = "not_started"
	SyncStatusInProgress = "in_progress"
	SyncStatusCompleted  = "completed"
	SyncStatusFailed     = "failed"
)

type SyncStatus struct {
	Status          string     `json:"status"`
	ProgressPercent int        `json:"progress_percent"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	Error           *string    `json:"error,omitempty"`
}
