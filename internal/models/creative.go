package models

import "strings"

// Creative file limits
const (
	MaxImageBytes = int64(30) << 20 // 30MB
	MaxVideoBytes = int64(4) << 30  // 4GB
)

var AllowedImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

var AllowedVideoMimeTypes = map[string]bool{
	"video/mp4":       true,
	"video/quicktime": true,
	"video/x-msvideo": true,
}

// MediaFile describes a staged creative upload. The raw bytes live in the
// upload staging area under StorageKey; only metadata travels with the draft.
type MediaFile struct {
	Name       string `json:"name"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes"`
	StorageKey string `json:"storage_key"`
}

// IsVideo classifies the file by MIME prefix.
func (f *MediaFile) IsVideo() bool {
	return strings.HasPrefix(f.MimeType, "video/")
}

// AdCreative is one ad entry in a draft: either a reference to an existing
// post, or a fresh creative with media and copy.
type AdCreative struct {
	ExistingPostID string     `json:"existing_post_id,omitempty"`
	File           *MediaFile `json:"file,omitempty"`
	Headline       string     `json:"headline,omitempty"`
	Body           string     `json:"body,omitempty"`
	CallToAction   string     `json:"call_to_action,omitempty"`
	LinkURL        string     `json:"link_url,omitempty"`
}

// UsesExistingPost reports whether the entry boosts an existing post instead
// of carrying its own creative.
func (a *AdCreative) UsesExistingPost() bool {
	return a.ExistingPostID != ""
}
