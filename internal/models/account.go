package models

import (
	"time"

	"github.com/google/uuid"
)

// AdAccount is an ad platform account connected by a user. PageID is filled
// from the backend on connect; campaigns cannot be submitted without it.
type AdAccount struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	AccountID string    `json:"account_id"`
	Name      string    `json:"name"`
	PageID    *string   `json:"page_id,omitempty"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pixel is a conversion-tracking pixel on the connected account.
type Pixel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LeadForm is an in-platform lead collection form on the connected page.
type LeadForm struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
