package wizard

import (
	"net/url"
	"strings"

	"github.com/adpilot/backend/internal/models"
)

// User-facing validation messages. One per rule; the chain surfaces only the
// first unmet precondition.
const (
	MsgAccountNotConnected = "Connect your ad account before creating a campaign."
	MsgPageMissing         = "Your ad account has no linked page. Connect a page in your account settings and try again."
	MsgObjectiveRequired   = "Choose a campaign objective to continue."
	MsgLeadTypeRequired    = "Choose how you want to collect leads: on your website or with an instant form."
	MsgLocationRequired    = "Select at least one location or drop a pin on the map."
	MsgPixelRequired       = "Sales campaigns need a pixel. Select one from your account."
	MsgPixelUnknown        = "The selected pixel is not available on your ad account."
	MsgLeadFormRequired    = "Instant form campaigns need a lead form. Select one from your page."
	MsgLeadFormUnknown     = "The selected lead form is not available on your page."
	MsgCreativeRequired    = "Add at least one ad before submitting."
	MsgFileRequired        = "Upload an image or video for your ad."
	MsgFileTypeInvalid     = "Unsupported file type. Use a JPEG, PNG or GIF image, or an MP4, MOV or AVI video."
	MsgImageTooLarge       = "Images must be 30MB or smaller."
	MsgVideoTooLarge       = "Videos must be 4GB or smaller."
	MsgHeadlineRequired    = "Write a headline for your ad."
	MsgBodyRequired        = "Write the primary text for your ad."
	MsgBudgetTooLow        = "Daily budget must be at least $1."
	MsgLinkRequired        = "Add the destination URL your ad should link to."
	MsgLinkInvalid         = "The destination URL must start with http:// or https://."
)

// AccountContext is what the validators need to know about the connected
// account. Built by the service from the account record plus cached pixel and
// lead form listings.
type AccountContext struct {
	Connected   bool
	PageID      string
	PixelIDs    []string
	LeadFormIDs []string
}

func (a AccountContext) hasPixel(id string) bool {
	for _, p := range a.PixelIDs {
		if p == id {
			return true
		}
	}
	return false
}

func (a AccountContext) hasLeadForm(id string) bool {
	for _, f := range a.LeadFormIDs {
		if f == id {
			return true
		}
	}
	return false
}

// ValidationError is a failed rule with its user-facing message.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func fail(rule, message string) *ValidationError {
	return &ValidationError{Rule: rule, Message: message}
}

// ValidateStep gates forward navigation out of the given step. Each step only
// checks its own fields; the full chain runs again at submission.
func ValidateStep(step string, s models.WizardState, acct AccountContext) *ValidationError {
	switch step {
	case models.StepObjective:
		if s.Objective == "" {
			return fail("objective", MsgObjectiveRequired)
		}
	case models.StepLeadType:
		if s.LeadType == "" {
			return fail("lead_type", MsgLeadTypeRequired)
		}
	case models.StepLocations:
		if !s.HasGeoTargeting() {
			return fail("locations", MsgLocationRequired)
		}
	case models.StepTargeting:
		if !s.Targeting.AgeRangeValid() {
			return fail("targeting", "Age range must be between 18 and 65.")
		}
	case models.StepBudget:
		if s.DailyBudget < 1 {
			return fail("budget", MsgBudgetTooLow)
		}
	case models.StepAds:
		return validateCreatives(s)
	case models.StepReview:
		return ValidateForSubmit(s, acct)
	}
	return nil
}

// ValidateForSubmit runs the full chain in priority order and returns the
// first failure: account, page, pixel/lead form, creative file, text fields,
// budget, destination URL.
func ValidateForSubmit(s models.WizardState, acct AccountContext) *ValidationError {
	if !acct.Connected {
		return fail("account", MsgAccountNotConnected)
	}
	if acct.PageID == "" {
		return fail("page", MsgPageMissing)
	}
	if s.Objective == "" {
		return fail("objective", MsgObjectiveRequired)
	}
	if s.Objective == models.ObjectiveLeads && s.LeadType == "" {
		return fail("lead_type", MsgLeadTypeRequired)
	}
	if !s.HasGeoTargeting() {
		return fail("locations", MsgLocationRequired)
	}

	if models.ObjectiveRequiresPixel(s.Objective) {
		if s.PixelID == "" {
			return fail("pixel", MsgPixelRequired)
		}
		if !acct.hasPixel(s.PixelID) {
			return fail("pixel", MsgPixelUnknown)
		}
	}
	if models.ObjectiveRequiresLeadForm(s.Objective, s.LeadType) {
		if s.LeadFormID == "" {
			return fail("lead_form", MsgLeadFormRequired)
		}
		if !acct.hasLeadForm(s.LeadFormID) {
			return fail("lead_form", MsgLeadFormUnknown)
		}
	}

	if err := validateCreatives(s); err != nil {
		return err
	}

	if s.DailyBudget < 1 {
		return fail("budget", MsgBudgetTooLow)
	}

	if models.ObjectiveRequiresLink(s.Objective, s.LeadType) {
		creative := s.FirstCreative()
		if creative.LinkURL == "" {
			return fail("link", MsgLinkRequired)
		}
		if !validHTTPURL(creative.LinkURL) {
			return fail("link", MsgLinkInvalid)
		}
	}

	return nil
}

func validateCreatives(s models.WizardState) *ValidationError {
	if len(s.Ads) == 0 {
		return fail("creative", MsgCreativeRequired)
	}
	for i := range s.Ads {
		ad := &s.Ads[i]
		if ad.UsesExistingPost() {
			continue
		}
		if ad.File == nil {
			return fail("file", MsgFileRequired)
		}
		if err := validateFile(ad.File); err != nil {
			return err
		}
		if strings.TrimSpace(ad.Headline) == "" {
			return fail("headline", MsgHeadlineRequired)
		}
		if strings.TrimSpace(ad.Body) == "" {
			return fail("body", MsgBodyRequired)
		}
	}
	return nil
}

func validateFile(f *models.MediaFile) *ValidationError {
	if f.IsVideo() {
		if !models.AllowedVideoMimeTypes[f.MimeType] {
			return fail("file", MsgFileTypeInvalid)
		}
		if f.SizeBytes > models.MaxVideoBytes {
			return fail("file", MsgVideoTooLarge)
		}
		return nil
	}
	if !models.AllowedImageMimeTypes[f.MimeType] {
		return fail("file", MsgFileTypeInvalid)
	}
	if f.SizeBytes > models.MaxImageBytes {
		return fail("file", MsgImageTooLarge)
	}
	return nil
}

func validHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
