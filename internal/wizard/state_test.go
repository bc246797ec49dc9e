package wizard

import (
	"encoding/json"
	"testing"

	"github.com/adpilot/backend/internal/models"
)

func mustApply(t *testing.T, s models.WizardState, field string, value any) models.WizardState {
	t.Helper()
	raw, err := json.Marshal(value)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Apply(s, Update{Field: field, Value: raw})
	if err != nil {
		t.Fatalf("Apply(%s) failed: %v", field, err)
	}
	return out
}

func TestApplyIsPure(t *testing.T) {
	orig := models.WizardState{
		SelectedLocations: []models.GeoLocation{{Key: "US", Type: "country"}},
	}
	updated := mustApply(t, orig, FieldAddLocation,
		models.GeoLocation{Key: "CA", Type: "country", Name: "Canada"})

	if len(orig.SelectedLocations) != 1 {
		t.Errorf("original state mutated: %d locations", len(orig.SelectedLocations))
	}
	if len(updated.SelectedLocations) != 2 {
		t.Errorf("update not applied: %d locations", len(updated.SelectedLocations))
	}
}

func TestApplyLocationDedupe(t *testing.T) {
	s := models.WizardState{}
	s = mustApply(t, s, FieldAddLocation, models.GeoLocation{Key: "US", Type: "country"})
	s = mustApply(t, s, FieldAddLocation, models.GeoLocation{Key: "US", Type: "country"})
	if len(s.SelectedLocations) != 1 {
		t.Errorf("duplicate (key,type) should be ignored, got %d entries", len(s.SelectedLocations))
	}

	// Same key, different type is a distinct entry.
	s = mustApply(t, s, FieldAddLocation, models.GeoLocation{Key: "US", Type: "region"})
	if len(s.SelectedLocations) != 2 {
		t.Errorf("same key different type should be kept, got %d entries", len(s.SelectedLocations))
	}

	s = mustApply(t, s, FieldRemoveLocation, models.GeoLocation{Key: "US", Type: "country"})
	if len(s.SelectedLocations) != 1 || s.SelectedLocations[0].Type != "region" {
		t.Errorf("remove by (key,type) failed: %+v", s.SelectedLocations)
	}
}

func TestApplyPinRadiusClamped(t *testing.T) {
	s := models.WizardState{}
	s = mustApply(t, s, FieldAddPin, models.CustomPin{ID: "pin-1", Lat: 1, Lng: 2, RadiusKM: 9999})
	if s.CustomPins[0].RadiusKM != models.MaxPinRadiusKM {
		t.Errorf("add_pin radius = %v, want clamped to %v", s.CustomPins[0].RadiusKM, models.MaxPinRadiusKM)
	}

	s = mustApply(t, s, FieldUpdatePinRadius, map[string]any{"id": "pin-1", "radius_km": -3})
	if s.CustomPins[0].RadiusKM != models.MinPinRadiusKM {
		t.Errorf("update radius = %v, want clamped to %v", s.CustomPins[0].RadiusKM, models.MinPinRadiusKM)
	}

	s = mustApply(t, s, FieldUpdatePinRadius, map[string]any{"id": "pin-1", "radius_km": 50})
	if s.CustomPins[0].RadiusKM != 50 {
		t.Errorf("in-range radius = %v, want 50", s.CustomPins[0].RadiusKM)
	}
}

func TestApplyObjectiveSwitchClearsDependents(t *testing.T) {
	s := models.WizardState{}
	s = mustApply(t, s, FieldObjective, models.ObjectiveLeads)
	s = mustApply(t, s, FieldLeadType, models.LeadTypeForm)
	s = mustApply(t, s, FieldLeadFormID, "form-1")

	s = mustApply(t, s, FieldObjective, models.ObjectiveTraffic)
	if s.LeadType != "" || s.LeadFormID != "" {
		t.Errorf("switching away from LEADS should clear lead fields: %+v", s)
	}

	s = mustApply(t, s, FieldObjective, models.ObjectiveSales)
	s = mustApply(t, s, FieldPixelID, "px-1")
	s = mustApply(t, s, FieldObjective, models.ObjectiveEngagement)
	if s.PixelID != "" {
		t.Errorf("switching away from SALES should clear the pixel, got %q", s.PixelID)
	}
}

func TestApplyLeadTypeOutsideLeads(t *testing.T) {
	s := models.WizardState{Objective: models.ObjectiveTraffic}
	raw, _ := json.Marshal(models.LeadTypeForm)
	if _, err := Apply(s, Update{Field: FieldLeadType, Value: raw}); err == nil {
		t.Errorf("lead type should be rejected outside LEADS")
	}
}

func TestApplyInvalidValues(t *testing.T) {
	s := models.WizardState{}

	raw, _ := json.Marshal("NOT_AN_OBJECTIVE")
	if _, err := Apply(s, Update{Field: FieldObjective, Value: raw}); err == nil {
		t.Errorf("unknown objective should be rejected")
	}

	raw, _ = json.Marshal(models.Targeting{AgeMin: 16, AgeMax: 30})
	if _, err := Apply(s, Update{Field: FieldTargeting, Value: raw}); err == nil {
		t.Errorf("age below 18 should be rejected")
	}

	raw, _ = json.Marshal(models.Targeting{AgeMin: 40, AgeMax: 25})
	if _, err := Apply(s, Update{Field: FieldTargeting, Value: raw}); err == nil {
		t.Errorf("min > max should be rejected")
	}

	if _, err := Apply(s, Update{Field: "bogus", Value: json.RawMessage(`1`)}); err == nil {
		t.Errorf("unknown field should be rejected")
	}
}

func TestApplyAdsResetsRetainedUpload(t *testing.T) {
	s := models.WizardState{
		UploadedImageHash: "old-hash",
		UploadedFileKey:   "staging/old.jpg",
	}
	s = mustApply(t, s, FieldAds, []models.AdCreative{validImageAd()})
	if s.UploadedImageHash != "" || s.UploadedFileKey != "" {
		t.Errorf("replacing ads should drop the retained upload result: %+v", s)
	}
}

func TestApplyBudgetStoredAsEntered(t *testing.T) {
	s := mustApply(t, models.WizardState{}, FieldDailyBudget, 0.5)
	if s.DailyBudget != 0.5 {
		t.Errorf("budget = %v, want 0.5 (validation happens in the chain, not on entry)", s.DailyBudget)
	}
}
