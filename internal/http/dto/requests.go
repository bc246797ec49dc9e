package dto

import "encoding/json"

type ConnectAccountRequest struct {
	AccountID string `json:"account_id"`
}

// UpdateDraftRequest carries one reducer update for a draft.
type UpdateDraftRequest struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

type NavigateRequest struct {
	Step string `json:"step"`
}
