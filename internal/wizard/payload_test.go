package wizard

import (
	"testing"

	"github.com/adpilot/backend/internal/models"
)

func TestBudgetCents(t *testing.T) {
	tests := []struct {
		budget   float64
		expected int64
	}{
		{1, 100},
		{20, 2000},
		{19.99, 1999},
		{0.015, 2}, // round, not truncate
		{1234.56, 123456},
		{2.675, 268},
	}

	for _, tt := range tests {
		if got := BudgetCents(tt.budget); got != tt.expected {
			t.Errorf("BudgetCents(%v) = %d, want %d", tt.budget, got, tt.expected)
		}
	}
}

func TestBuildCreatePayloadTraffic(t *testing.T) {
	s := trafficState()
	payload := BuildCreatePayload(s, "act-1", "page-1", UploadResult{ImageHash: "abc123"})

	if payload.Objective != "TRAFFIC" {
		t.Errorf("objective = %q, want TRAFFIC", payload.Objective)
	}
	if payload.DailyBudgetCents != 2000 {
		t.Errorf("daily_budget_cents = %d, want 2000", payload.DailyBudgetCents)
	}
	if payload.AccountID != "act-1" || payload.PageID != "page-1" {
		t.Errorf("account/page not propagated: %+v", payload)
	}
	if len(payload.GeoLocations) != 1 || payload.GeoLocations[0].Key != "US" {
		t.Errorf("geo locations not propagated: %+v", payload.GeoLocations)
	}
	if payload.Creative.Title != "Sale" || payload.Creative.Body != "Shop now" {
		t.Errorf("creative copy not propagated: %+v", payload.Creative)
	}
	if payload.Creative.LinkURL != "https://example.com" {
		t.Errorf("link_url = %q", payload.Creative.LinkURL)
	}
	if payload.Creative.ImageHash != "abc123" || payload.Creative.VideoID != "" {
		t.Errorf("upload result not propagated: %+v", payload.Creative)
	}
	if payload.PixelID != "" {
		t.Errorf("TRAFFIC payload should not carry a pixel, got %q", payload.PixelID)
	}
	if payload.AgeMin != models.MinAge || payload.AgeMax != models.MaxAge {
		t.Errorf("age range = [%d, %d]", payload.AgeMin, payload.AgeMax)
	}
}

func TestBuildCreatePayloadSalesCarriesPixel(t *testing.T) {
	s := trafficState()
	s.Objective = models.ObjectiveSales
	s.PixelID = "px-1"

	payload := BuildCreatePayload(s, "act-1", "page-1", UploadResult{ImageHash: "h"})
	if payload.PixelID != "px-1" {
		t.Errorf("pixel_id = %q, want px-1", payload.PixelID)
	}
}

func TestBuildCreatePayloadLeadForm(t *testing.T) {
	s := trafficState()
	s.Objective = models.ObjectiveLeads
	s.LeadType = models.LeadTypeForm
	s.LeadFormID = "form-1"

	payload := BuildCreatePayload(s, "act-1", "page-1", UploadResult{ImageHash: "h"})
	if payload.Creative.LeadFormID != "form-1" {
		t.Errorf("lead_form_id = %q, want form-1", payload.Creative.LeadFormID)
	}
	// Form campaigns keep users in-platform: no destination link.
	if payload.Creative.LinkURL != "" {
		t.Errorf("form campaign should not carry link_url, got %q", payload.Creative.LinkURL)
	}
}

func TestBuildCreatePayloadPins(t *testing.T) {
	s := trafficState()
	s.SelectedLocations = nil
	s.CustomPins = []models.CustomPin{{ID: "pin-1", Lat: 40.7, Lng: -74.0, RadiusKM: 25}}

	payload := BuildCreatePayload(s, "act-1", "page-1", UploadResult{ImageHash: "h"})
	if len(payload.GeoLocations) != 1 {
		t.Fatalf("expected 1 geo entry, got %d", len(payload.GeoLocations))
	}
	g := payload.GeoLocations[0]
	if g.Type != "custom_pin" || g.Lat != 40.7 || g.Lng != -74.0 || g.RadiusKM != 25 {
		t.Errorf("pin not propagated: %+v", g)
	}
}

func TestBuildCreatePayloadVideo(t *testing.T) {
	s := trafficState()
	payload := BuildCreatePayload(s, "act-1", "page-1", UploadResult{VideoID: "vid-9"})
	if payload.Creative.VideoID != "vid-9" || payload.Creative.ImageHash != "" {
		t.Errorf("video upload not propagated: %+v", payload.Creative)
	}
}
