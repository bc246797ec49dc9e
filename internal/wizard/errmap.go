package wizard

import "strings"

// Messages shown when the backend rejects a submission.
const (
	MsgSessionExpired   = "Your ad account session has expired. Reconnect your account and try again."
	MsgPermissionDenied = "We no longer have permission to manage this ad account. Reconnect it to restore access."
	MsgPixelSetup       = "The pixel could not be used. Check its setup in your ad account and select it again."
	MsgLeadFormSetup    = "The lead form could not be used. Check that it is published on your page and select it again."
	MsgBudgetRejected   = "The backend rejected the campaign budget. Adjust it and try again."
	MsgAccountDisabled  = "This ad account is disabled. Resolve the issue with the ad platform before creating campaigns."
	MsgRateLimited      = "The ad platform is throttling requests right now. Wait a minute and try again."
	MsgSubmitFailed     = "Something went wrong while creating your campaign. Please try again."
)

// Raw backend error substrings mapped to curated guidance, checked in order.
var errorPatterns = []struct {
	substr  string
	message string
}{
	{"Invalid access token", MsgSessionExpired},
	{"Session has expired", MsgSessionExpired},
	{"Permission denied", MsgPermissionDenied},
	{"permissions error", MsgPermissionDenied},
	{"Invalid pixel", MsgPixelSetup},
	{"Invalid lead form", MsgLeadFormSetup},
	{"daily budget", MsgBudgetRejected},
	{"Account disabled", MsgAccountDisabled},
	{"User request limit reached", MsgRateLimited},
}

// FriendlyError maps a raw backend error string to a user-facing message,
// falling back to a generic retry message when no pattern matches.
func FriendlyError(raw string) string {
	for _, p := range errorPatterns {
		if strings.Contains(raw, p.substr) {
			return p.message
		}
	}
	return MsgSubmitFailed
}
