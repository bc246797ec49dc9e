package dto

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

// SubmitResponse reports the outcome of a submission attempt.
type SubmitResponse struct {
	OK         bool   `json:"ok"`
	CampaignID string `json:"campaign_id,omitempty"`
	DraftID    string `json:"draft_id"`
}
