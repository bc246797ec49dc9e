package wizard

import "testing"

func TestFriendlyError(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"backend returned 400: Invalid access token for user", MsgSessionExpired},
		{"Session has expired on Friday", MsgSessionExpired},
		{"Permission denied: missing ads_management", MsgPermissionDenied},
		{"(#200) permissions error", MsgPermissionDenied},
		{"Invalid pixel id 12345", MsgPixelSetup},
		{"Invalid lead form reference", MsgLeadFormSetup},
		{"daily budget below account minimum", MsgBudgetRejected},
		{"Account disabled due to policy", MsgAccountDisabled},
		{"User request limit reached", MsgRateLimited},
		{"connection reset by peer", MsgSubmitFailed},
		{"", MsgSubmitFailed},
		{"some entirely novel failure", MsgSubmitFailed},
	}

	for _, tt := range tests {
		if got := FriendlyError(tt.raw); got != tt.expected {
			t.Errorf("FriendlyError(%q) = %q, want %q", tt.raw, got, tt.expected)
		}
	}
}
