package wizard

import (
	"encoding/json"
	"fmt"

	"github.com/adpilot/backend/internal/models"
)

// Update fields accepted by Apply.
const (
	FieldCampaignName    = "campaign_name"
	FieldObjective       = "objective"
	FieldLeadType        = "lead_type"
	FieldAddLocation     = "add_location"
	FieldRemoveLocation  = "remove_location"
	FieldAddPin          = "add_pin"
	FieldUpdatePinRadius = "update_pin_radius"
	FieldRemovePin       = "remove_pin"
	FieldTargeting       = "targeting"
	FieldDailyBudget     = "daily_budget"
	FieldAds             = "ads"
	FieldPixelID         = "pixel_id"
	FieldLeadFormID      = "lead_form_id"
)

// Update is one discrete mutation of a draft, dispatched by a step screen.
type Update struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

type pinRadiusUpdate struct {
	ID       string  `json:"id"`
	RadiusKM float64 `json:"radius_km"`
}

// Apply returns a new state with the update applied. The input state is never
// mutated; slices are copied before modification so step navigation and review
// diffing stay predictable.
func Apply(s models.WizardState, u Update) (models.WizardState, error) {
	switch u.Field {
	case FieldCampaignName:
		var v string
		if err := json.Unmarshal(u.Value, &v); err != nil {
			return s, fmt.Errorf("campaign_name: %w", err)
		}
		s.CampaignName = v

	case FieldObjective:
		var v string
		if err := json.Unmarshal(u.Value, &v); err != nil {
			return s, fmt.Errorf("objective: %w", err)
		}
		if !models.IsValidObjective(v) {
			return s, fmt.Errorf("unknown objective %q", v)
		}
		s.Objective = v
		// Fields that only exist for other objectives go away with the switch.
		if v != models.ObjectiveLeads {
			s.LeadType = ""
			s.LeadFormID = ""
		}
		if v != models.ObjectiveSales {
			s.PixelID = ""
		}

	case FieldLeadType:
		var v string
		if err := json.Unmarshal(u.Value, &v); err != nil {
			return s, fmt.Errorf("lead_type: %w", err)
		}
		if !models.IsValidLeadType(v) {
			return s, fmt.Errorf("unknown lead type %q", v)
		}
		if s.Objective != models.ObjectiveLeads {
			return s, fmt.Errorf("lead type only applies to LEADS campaigns")
		}
		s.LeadType = v
		if v != models.LeadTypeForm {
			s.LeadFormID = ""
		}

	case FieldAddLocation:
		var v models.GeoLocation
		if err := json.Unmarshal(u.Value, &v); err != nil {
			return s, fmt.Errorf("add_location: %w", err)
		}
		if v.Key == "" || v.Type == "" {
			return s, fmt.Errorf("location key and type are required")
		}
		for _, loc := range s.SelectedLocations {
			if loc.Key == v.Key && loc.Type == v.Type {
				return s, nil // already selected
			}
		}
		s.SelectedLocations = append(cloneSlice(s.SelectedLocations), v)

	case FieldRemoveLocation:
		var v models.GeoLocation
		if err := json.Unmarshal(u.Value, &v); err != nil {
			return s, fmt.Errorf("remove_location: %w", err)
		}
		out := make([]models.GeoLocation, 0, len(s.SelectedLocations))
		for _, loc := range s.SelectedLocations {
			if loc.Key == v.Key && loc.Type == v.Type {
				continue
			}
			out = append(out, loc)
		}
		s.SelectedLocations = out

	case FieldAddPin:
		var v models.CustomPin
		if err := json.Unmarshal(u.Value, &v); err != nil {
			return s, fmt.Errorf("add_pin: %w", err)
		}
		if v.ID == "" {
			return s, fmt.Errorf("pin id is required")
		}
		v.RadiusKM = models.ClampPinRadius(v.RadiusKM)
		s.CustomPins = append(cloneSlice(s.CustomPins), v)

	case FieldUpdatePinRadius:
		var v pinRadiusUpdate
		if err := json.Unmarshal(u.Value, &v); err != nil {
			return s, fmt.Errorf("update_pin_radius: %w", err)
		}
		pins := cloneSlice(s.CustomPins)
		found := false
		for i := range pins {
			if pins[i].ID == v.ID {
				pins[i].RadiusKM = models.ClampPinRadius(v.RadiusKM)
				found = true
				break
			}
		}
		if !found {
			return s, fmt.Errorf("pin %q not found", v.ID)
		}
		s.CustomPins = pins

	case FieldRemovePin:
		var id string
		if err := json.Unmarshal(u.Value, &id); err != nil {
			return s, fmt.Errorf("remove_pin: %w", err)
		}
		out := make([]models.CustomPin, 0, len(s.CustomPins))
		for _, p := range s.CustomPins {
			if p.ID == id {
				continue
			}
			out = append(out, p)
		}
		s.CustomPins = out

	case FieldTargeting:
		var v models.Targeting
		if err := json.Unmarshal(u.Value, &v); err != nil {
			return s, fmt.Errorf("targeting: %w", err)
		}
		if !v.AgeRangeValid() {
			return s, fmt.Errorf("age range must be within [%d, %d] with min <= max",
				models.MinAge, models.MaxAge)
		}
		s.Targeting = v

	case FieldDailyBudget:
		var v float64
		if err := json.Unmarshal(u.Value, &v); err != nil {
			return s, fmt.Errorf("daily_budget: %w", err)
		}
		// Stored as entered; the validator chain rejects amounts below the
		// minimum so there is no silently passing default.
		s.DailyBudget = v

	case FieldAds:
		var v []models.AdCreative
		if err := json.Unmarshal(u.Value, &v); err != nil {
			return s, fmt.Errorf("ads: %w", err)
		}
		s.Ads = v
		// A retained upload belongs to the previous creative file.
		s.UploadedImageHash = ""
		s.UploadedVideoID = ""
		s.UploadedFileKey = ""

	case FieldPixelID:
		var v string
		if err := json.Unmarshal(u.Value, &v); err != nil {
			return s, fmt.Errorf("pixel_id: %w", err)
		}
		s.PixelID = v

	case FieldLeadFormID:
		var v string
		if err := json.Unmarshal(u.Value, &v); err != nil {
			return s, fmt.Errorf("lead_form_id: %w", err)
		}
		s.LeadFormID = v

	default:
		return s, fmt.Errorf("unknown update field %q", u.Field)
	}

	return s, nil
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
