package models

import "testing"

func TestStepOrder(t *testing.T) {
	base := StepOrder(ObjectiveTraffic)
	if len(base) != 6 {
		t.Fatalf("expected 6 steps for TRAFFIC, got %d", len(base))
	}
	for _, s := range base {
		if s == StepLeadType {
			t.Errorf("lead_type step should not appear for TRAFFIC")
		}
	}

	leads := StepOrder(ObjectiveLeads)
	if len(leads) != 7 {
		t.Fatalf("expected 7 steps for LEADS, got %d", len(leads))
	}
	if leads[1] != StepLeadType {
		t.Errorf("lead_type should follow objective for LEADS, got %q", leads[1])
	}
	if leads[len(leads)-1] != StepReview {
		t.Errorf("review should be the last step, got %q", leads[len(leads)-1])
	}
}

func TestCanNavigate(t *testing.T) {
	tests := []struct {
		objective string
		from      string
		to        string
		expected  bool
	}{
		// Forward, one step at a time
		{ObjectiveTraffic, StepObjective, StepLocations, true},
		{ObjectiveTraffic, StepLocations, StepTargeting, true},
		{ObjectiveTraffic, StepTargeting, StepBudget, true},
		{ObjectiveTraffic, StepBudget, StepAds, true},
		{ObjectiveTraffic, StepAds, StepReview, true},
		{ObjectiveLeads, StepObjective, StepLeadType, true},
		{ObjectiveLeads, StepLeadType, StepLocations, true},

		// Backward always allowed
		{ObjectiveTraffic, StepReview, StepObjective, true},
		{ObjectiveTraffic, StepReview, StepBudget, true},
		{ObjectiveTraffic, StepAds, StepLocations, true},
		{ObjectiveLeads, StepReview, StepLeadType, true},

		// Staying put is a no-op move
		{ObjectiveTraffic, StepBudget, StepBudget, true},

		// No skipping forward
		{ObjectiveTraffic, StepObjective, StepReview, false},
		{ObjectiveTraffic, StepObjective, StepTargeting, false},
		{ObjectiveTraffic, StepLocations, StepAds, false},
		{ObjectiveLeads, StepObjective, StepLocations, false},

		// lead_type is not a step outside LEADS
		{ObjectiveTraffic, StepObjective, StepLeadType, false},
		{ObjectiveTraffic, StepLeadType, StepLocations, false},

		// Unknown steps
		{ObjectiveTraffic, "nonexistent", StepReview, false},
		{ObjectiveTraffic, StepObjective, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.objective+":"+tt.from+"->"+tt.to, func(t *testing.T) {
			result := CanNavigate(tt.objective, tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("CanNavigate(%q, %q, %q) = %v, want %v",
					tt.objective, tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestObjectiveRequiresLink(t *testing.T) {
	tests := []struct {
		objective string
		leadType  string
		expected  bool
	}{
		{ObjectiveSales, "", true},
		{ObjectiveTraffic, "", true},
		{ObjectiveLeads, LeadTypeWebsite, true},
		{ObjectiveLeads, LeadTypeForm, false},
		{ObjectiveEngagement, "", false},
		{ObjectiveWhatsApp, "", false},
		{ObjectiveCalls, "", false},
	}

	for _, tt := range tests {
		if got := ObjectiveRequiresLink(tt.objective, tt.leadType); got != tt.expected {
			t.Errorf("ObjectiveRequiresLink(%q, %q) = %v, want %v",
				tt.objective, tt.leadType, got, tt.expected)
		}
	}
}

func TestClampPinRadius(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0, 1},
		{-10, 1},
		{0.5, 1},
		{1, 1},
		{42, 42},
		{500, 500},
		{501, 500},
		{1e9, 500},
	}

	for _, tt := range tests {
		if got := ClampPinRadius(tt.input); got != tt.expected {
			t.Errorf("ClampPinRadius(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestMediaFileIsVideo(t *testing.T) {
	video := &MediaFile{MimeType: "video/mp4"}
	if !video.IsVideo() {
		t.Errorf("video/mp4 should classify as video")
	}
	image := &MediaFile{MimeType: "image/jpeg"}
	if image.IsVideo() {
		t.Errorf("image/jpeg should not classify as video")
	}
}
