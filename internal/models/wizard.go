package models

import (
	"time"

	"github.com/google/uuid"
)

// Wizard steps
const (
	StepObjective = "objective"
	StepLeadType  = "lead_type"
	StepLocations = "locations"
	StepTargeting = "targeting"
	StepBudget    = "budget"
	StepAds       = "ads"
	StepReview    = "review"
)

// Draft statuses
const (
	DraftStatusInProgress = "in_progress"
	DraftStatusSubmitted  = "submitted"
	DraftStatusAbandoned  = "abandoned"
)

var baseSteps = []string{
	StepObjective, StepLocations, StepTargeting, StepBudget, StepAds, StepReview,
}

var leadsSteps = []string{
	StepObjective, StepLeadType, StepLocations, StepTargeting, StepBudget, StepAds, StepReview,
}

// StepOrder returns the ordered step sequence for a draft. The lead-type
// sub-choice appears only for LEADS campaigns.
func StepOrder(objective string) []string {
	if objective == ObjectiveLeads {
		return leadsSteps
	}
	return baseSteps
}

// StepIndex returns the ordinal position of a step within the sequence for
// the given objective, or -1 if the step does not occur in it.
func StepIndex(objective, step string) int {
	for i, s := range StepOrder(objective) {
		if s == step {
			return i
		}
	}
	return -1
}

// CanNavigate reports whether moving between two steps is structurally
// allowed: backward moves (including edit-jumps from review) are always free,
// forward moves only to the immediately next step. Forward moves are
// additionally gated by the current step's validator at the service layer.
func CanNavigate(objective, from, to string) bool {
	fi := StepIndex(objective, from)
	ti := StepIndex(objective, to)
	if fi < 0 || ti < 0 {
		return false
	}
	if ti <= fi {
		return true
	}
	return ti == fi+1
}

// WizardState holds everything the user has entered across steps. Updates go
// through wizard.Apply, which returns a fresh copy; nothing mutates a stored
// state in place.
type WizardState struct {
	CampaignName      string        `json:"campaign_name,omitempty"`
	Objective         string        `json:"objective,omitempty"`
	LeadType          string        `json:"lead_type,omitempty"`
	SelectedLocations []GeoLocation `json:"selected_locations,omitempty"`
	CustomPins        []CustomPin   `json:"custom_pins,omitempty"`
	Targeting         Targeting     `json:"targeting"`
	DailyBudget       float64       `json:"daily_budget,omitempty"`
	Ads               []AdCreative  `json:"ads,omitempty"`
	PixelID           string        `json:"pixel_id,omitempty"`
	LeadFormID        string        `json:"lead_form_id,omitempty"`

	// Upload result retained from a prior submission attempt so a resubmit
	// after a create failure does not re-upload an unchanged file.
	UploadedImageHash string `json:"uploaded_image_hash,omitempty"`
	UploadedVideoID   string `json:"uploaded_video_id,omitempty"`
	UploadedFileKey   string `json:"uploaded_file_key,omitempty"`
}

// HasGeoTargeting reports whether at least one location or pin is selected.
func (s *WizardState) HasGeoTargeting() bool {
	return len(s.SelectedLocations) > 0 || len(s.CustomPins) > 0
}

// FirstCreative returns the creative used for the campaign's ad, or nil when
// the ads step has not been filled in yet.
func (s *WizardState) FirstCreative() *AdCreative {
	if len(s.Ads) == 0 {
		return nil
	}
	return &s.Ads[0]
}

// Draft is one in-progress campaign, owned by a single user.
type Draft struct {
	ID         uuid.UUID   `json:"id"`
	UserID     uuid.UUID   `json:"user_id"`
	AccountID  string      `json:"account_id"`
	Status     string      `json:"status"`
	Step       string      `json:"step"`
	State      WizardState `json:"state"`
	CampaignID *string     `json:"campaign_id,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
