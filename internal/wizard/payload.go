package wizard

import (
	"math"

	"github.com/adpilot/backend/internal/models"
)

// Geo targeting entry in the create payload. Named locations carry key+type;
// custom pins carry coordinates and a radius.
type GeoTargetPayload struct {
	Key      string  `json:"key,omitempty"`
	Type     string  `json:"type"`
	Lat      float64 `json:"lat,omitempty"`
	Lng      float64 `json:"lng,omitempty"`
	RadiusKM float64 `json:"radius_km,omitempty"`
}

type CreativePayload struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	CallToAction string `json:"call_to_action"`
	LinkURL      string `json:"link_url,omitempty"`
	ImageHash    string `json:"image_hash,omitempty"`
	VideoID      string `json:"video_id,omitempty"`
	LeadFormID   string `json:"lead_form_id,omitempty"`
}

type CreateCampaignPayload struct {
	AccountID        string             `json:"account_id"`
	PageID           string             `json:"page_id"`
	CampaignName     string             `json:"campaign_name"`
	Objective        string             `json:"objective"`
	GeoLocations     []GeoTargetPayload `json:"geo_locations"`
	AgeMin           int                `json:"age_min"`
	AgeMax           int                `json:"age_max"`
	Genders          []string           `json:"genders,omitempty"`
	Platforms        []string           `json:"platforms,omitempty"`
	Interests        []string           `json:"interests,omitempty"`
	DailyBudgetCents int64              `json:"daily_budget_cents"`
	PixelID          string             `json:"pixel_id,omitempty"`
	Creative         CreativePayload    `json:"creative"`
}

// UploadResult is what the media upload step produced, exactly one of the two
// fields set depending on the file's MIME type.
type UploadResult struct {
	ImageHash string
	VideoID   string
}

// BudgetCents converts a dollar budget to the integer cents the backend
// expects.
func BudgetCents(budget float64) int64 {
	return int64(math.Round(budget * 100))
}

// BuildCreatePayload assembles the campaign-create request from validated
// state plus the upload result. Callers must have run ValidateForSubmit first.
func BuildCreatePayload(s models.WizardState, accountID, pageID string, up UploadResult) CreateCampaignPayload {
	geo := make([]GeoTargetPayload, 0, len(s.SelectedLocations)+len(s.CustomPins))
	for _, loc := range s.SelectedLocations {
		geo = append(geo, GeoTargetPayload{Key: loc.Key, Type: loc.Type})
	}
	for _, pin := range s.CustomPins {
		geo = append(geo, GeoTargetPayload{
			Type:     "custom_pin",
			Lat:      pin.Lat,
			Lng:      pin.Lng,
			RadiusKM: pin.RadiusKM,
		})
	}

	creative := CreativePayload{}
	if ad := s.FirstCreative(); ad != nil {
		creative.Title = ad.Headline
		creative.Body = ad.Body
		creative.CallToAction = ad.CallToAction
		if models.ObjectiveRequiresLink(s.Objective, s.LeadType) {
			creative.LinkURL = ad.LinkURL
		}
	}
	creative.ImageHash = up.ImageHash
	creative.VideoID = up.VideoID
	if models.ObjectiveRequiresLeadForm(s.Objective, s.LeadType) {
		creative.LeadFormID = s.LeadFormID
	}

	payload := CreateCampaignPayload{
		AccountID:        accountID,
		PageID:           pageID,
		CampaignName:     s.CampaignName,
		Objective:        s.Objective,
		GeoLocations:     geo,
		AgeMin:           s.Targeting.AgeMin,
		AgeMax:           s.Targeting.AgeMax,
		Genders:          s.Targeting.Genders,
		Platforms:        s.Targeting.Platforms,
		Interests:        s.Targeting.Interests,
		DailyBudgetCents: BudgetCents(s.DailyBudget),
	}
	if models.ObjectiveRequiresPixel(s.Objective) {
		payload.PixelID = s.PixelID
	}
	payload.Creative = creative
	return payload
}
