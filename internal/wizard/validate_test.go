package wizard

import (
	"testing"

	"github.com/adpilot/backend/internal/models"
)

func connectedAccount() AccountContext {
	return AccountContext{
		Connected:   true,
		PageID:      "page-1",
		PixelIDs:    []string{"px-1", "px-2"},
		LeadFormIDs: []string{"form-1"},
	}
}

func validImageAd() models.AdCreative {
	return models.AdCreative{
		File: &models.MediaFile{
			Name:       "sale.jpg",
			MimeType:   "image/jpeg",
			SizeBytes:  2 << 20,
			StorageKey: "staging/sale.jpg",
		},
		Headline:     "Sale",
		Body:         "Shop now",
		CallToAction: "SHOP_NOW",
		LinkURL:      "https://example.com",
	}
}

func trafficState() models.WizardState {
	return models.WizardState{
		CampaignName:      "Summer sale",
		Objective:         models.ObjectiveTraffic,
		SelectedLocations: []models.GeoLocation{{Key: "US", Type: "country", Name: "United States"}},
		Targeting:         models.DefaultTargeting(),
		DailyBudget:       20,
		Ads:               []models.AdCreative{validImageAd()},
	}
}

func TestValidateForSubmitTrafficHappyPath(t *testing.T) {
	if err := ValidateForSubmit(trafficState(), connectedAccount()); err != nil {
		t.Fatalf("expected traffic state to pass, got %q (rule %s)", err.Message, err.Rule)
	}
}

func TestValidateForSubmitSalesRequiresPixel(t *testing.T) {
	s := trafficState()
	s.Objective = models.ObjectiveSales

	err := ValidateForSubmit(s, connectedAccount())
	if err == nil || err.Rule != "pixel" {
		t.Fatalf("expected pixel failure, got %v", err)
	}
	if err.Message != MsgPixelRequired {
		t.Errorf("expected %q, got %q", MsgPixelRequired, err.Message)
	}

	s.PixelID = "px-1"
	if err := ValidateForSubmit(s, connectedAccount()); err != nil {
		t.Errorf("expected pass with valid pixel, got %q", err.Message)
	}

	s.PixelID = "px-unknown"
	err = ValidateForSubmit(s, connectedAccount())
	if err == nil || err.Message != MsgPixelUnknown {
		t.Errorf("expected unknown-pixel failure, got %v", err)
	}
}

func TestValidateForSubmitLeadFormRequired(t *testing.T) {
	s := trafficState()
	s.Objective = models.ObjectiveLeads
	s.LeadType = models.LeadTypeForm
	s.Ads[0].LinkURL = ""

	err := ValidateForSubmit(s, connectedAccount())
	if err == nil || err.Message != MsgLeadFormRequired {
		t.Fatalf("expected lead-form-required, got %v", err)
	}

	s.LeadFormID = "form-1"
	if err := ValidateForSubmit(s, connectedAccount()); err != nil {
		t.Errorf("expected pass with lead form set, got %q", err.Message)
	}

	s.LeadFormID = "form-unknown"
	err = ValidateForSubmit(s, connectedAccount())
	if err == nil || err.Message != MsgLeadFormUnknown {
		t.Errorf("expected unknown-form failure, got %v", err)
	}
}

func TestValidateForSubmitPriorityOrder(t *testing.T) {
	// A draft failing everything reports failures in chain order as each
	// earlier precondition gets fixed.
	s := models.WizardState{Objective: models.ObjectiveSales}
	acct := AccountContext{}

	err := ValidateForSubmit(s, acct)
	if err == nil || err.Rule != "account" {
		t.Fatalf("expected account failure first, got %v", err)
	}

	acct.Connected = true
	err = ValidateForSubmit(s, acct)
	if err == nil || err.Rule != "page" {
		t.Fatalf("expected page failure next, got %v", err)
	}

	acct.PageID = "page-1"
	acct.PixelIDs = []string{"px-1"}
	s.SelectedLocations = []models.GeoLocation{{Key: "US", Type: "country"}}
	err = ValidateForSubmit(s, acct)
	if err == nil || err.Rule != "pixel" {
		t.Fatalf("expected pixel failure before creative, got %v", err)
	}

	s.PixelID = "px-1"
	err = ValidateForSubmit(s, acct)
	if err == nil || err.Rule != "creative" {
		t.Fatalf("expected creative failure before budget, got %v", err)
	}

	s.Ads = []models.AdCreative{validImageAd()}
	err = ValidateForSubmit(s, acct)
	if err == nil || err.Rule != "budget" {
		t.Fatalf("expected budget failure before link, got %v", err)
	}

	s.DailyBudget = 5
	if err := ValidateForSubmit(s, acct); err != nil {
		t.Fatalf("expected pass, got %q (rule %s)", err.Message, err.Rule)
	}
}

func TestValidateFileRules(t *testing.T) {
	tests := []struct {
		name     string
		mime     string
		size     int64
		expected string // expected message, "" = pass
	}{
		{"small jpeg", "image/jpeg", 2 << 20, ""},
		{"png at limit", "image/png", models.MaxImageBytes, ""},
		{"gif over limit", "image/gif", models.MaxImageBytes + 1, MsgImageTooLarge},
		{"mp4 ok", "video/mp4", 100 << 20, ""},
		{"quicktime ok", "video/quicktime", 1 << 30, ""},
		{"avi ok", "video/x-msvideo", 1 << 30, ""},
		{"video over 4GB", "video/mp4", models.MaxVideoBytes + 1, MsgVideoTooLarge},
		{"unknown video codec", "video/webm", 1 << 20, MsgFileTypeInvalid},
		{"unknown mime", "application/pdf", 1 << 20, MsgFileTypeInvalid},
		{"svg rejected", "image/svg+xml", 1 << 20, MsgFileTypeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFile(&models.MediaFile{MimeType: tt.mime, SizeBytes: tt.size})
			if tt.expected == "" {
				if err != nil {
					t.Errorf("expected pass, got %q", err.Message)
				}
				return
			}
			if err == nil || err.Message != tt.expected {
				t.Errorf("expected %q, got %v", tt.expected, err)
			}
		})
	}
}

func TestValidateForSubmitTextAndLink(t *testing.T) {
	s := trafficState()
	s.Ads[0].Headline = "   "
	if err := ValidateForSubmit(s, connectedAccount()); err == nil || err.Message != MsgHeadlineRequired {
		t.Errorf("blank headline should fail, got %v", err)
	}

	s = trafficState()
	s.Ads[0].Body = "\t\n"
	if err := ValidateForSubmit(s, connectedAccount()); err == nil || err.Message != MsgBodyRequired {
		t.Errorf("blank body should fail, got %v", err)
	}

	s = trafficState()
	s.Ads[0].LinkURL = ""
	if err := ValidateForSubmit(s, connectedAccount()); err == nil || err.Message != MsgLinkRequired {
		t.Errorf("missing link should fail for TRAFFIC, got %v", err)
	}

	s = trafficState()
	s.Ads[0].LinkURL = "ftp://example.com"
	if err := ValidateForSubmit(s, connectedAccount()); err == nil || err.Message != MsgLinkInvalid {
		t.Errorf("non-http scheme should fail, got %v", err)
	}

	s = trafficState()
	s.Ads[0].LinkURL = "not a url"
	if err := ValidateForSubmit(s, connectedAccount()); err == nil || err.Message != MsgLinkInvalid {
		t.Errorf("unparseable link should fail, got %v", err)
	}
}

func TestValidateForSubmitExistingPostSkipsCreativeChecks(t *testing.T) {
	s := trafficState()
	s.Ads = []models.AdCreative{{ExistingPostID: "post-123", LinkURL: "https://example.com"}}
	if err := ValidateForSubmit(s, connectedAccount()); err != nil {
		t.Errorf("existing post entry should not need a file, got %q", err.Message)
	}
}

func TestValidateStep(t *testing.T) {
	acct := connectedAccount()

	var s models.WizardState
	if err := ValidateStep(models.StepObjective, s, acct); err == nil || err.Message != MsgObjectiveRequired {
		t.Errorf("empty objective should block step 1, got %v", err)
	}

	s.Objective = models.ObjectiveLeads
	if err := ValidateStep(models.StepObjective, s, acct); err != nil {
		t.Errorf("objective set should pass step 1, got %q", err.Message)
	}
	if err := ValidateStep(models.StepLeadType, s, acct); err == nil || err.Message != MsgLeadTypeRequired {
		t.Errorf("LEADS without lead type should block, got %v", err)
	}

	if err := ValidateStep(models.StepLocations, s, acct); err == nil || err.Message != MsgLocationRequired {
		t.Errorf("no locations should block, got %v", err)
	}
	s.CustomPins = []models.CustomPin{{ID: "pin-1", Lat: 1, Lng: 2, RadiusKM: 10}}
	if err := ValidateStep(models.StepLocations, s, acct); err != nil {
		t.Errorf("a pin alone should satisfy the locations step, got %q", err.Message)
	}

	s.DailyBudget = 0.99
	if err := ValidateStep(models.StepBudget, s, acct); err == nil || err.Message != MsgBudgetTooLow {
		t.Errorf("budget below minimum should block, got %v", err)
	}
	s.DailyBudget = 1
	if err := ValidateStep(models.StepBudget, s, acct); err != nil {
		t.Errorf("budget of exactly $1 should pass, got %q", err.Message)
	}
}
