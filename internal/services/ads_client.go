package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adpilot/backend/internal/models"
	"github.com/adpilot/backend/internal/wizard"
	"go.uber.org/zap"
)

// AdsClient communicates with the marketing backend API that fronts the ad
// platform. All campaign mutations and account reads go through it.
type AdsClient struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewAdsClient(baseURL string, timeoutMS int, log *zap.Logger) *AdsClient {
	if timeoutMS <= 0 {
		timeoutMS = 15000
	}
	return &AdsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
		log: log,
	}
}

type AccountInfo struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	PageID   *string `json:"page_id,omitempty"`
	Currency string  `json:"currency"`
}

func (c *AdsClient) GetAccount(ctx context.Context, accountID string) (*AccountInfo, error) {
	var info AccountInfo
	if err := c.getJSON(ctx, fmt.Sprintf("/accounts/%s", accountID), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *AdsClient) ListPixels(ctx context.Context, accountID string) ([]models.Pixel, error) {
	var pixels []models.Pixel
	if err := c.getJSON(ctx, fmt.Sprintf("/accounts/%s/pixels", accountID), &pixels); err != nil {
		return nil, err
	}
	return pixels, nil
}

func (c *AdsClient) ListLeadForms(ctx context.Context, pageID, accountID string) ([]models.LeadForm, error) {
	path := fmt.Sprintf("/pages/%s/leadforms?account_id=%s", pageID, url.QueryEscape(accountID))
	var forms []models.LeadForm
	if err := c.getJSON(ctx, path, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

func (c *AdsClient) SearchLocations(ctx context.Context, query string) ([]models.GeoLocation, error) {
	path := fmt.Sprintf("/locations/search?q=%s", url.QueryEscape(query))
	var locations []models.GeoLocation
	if err := c.getJSON(ctx, path, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (c *AdsClient) GetSyncStatus(ctx context.Context, accountID string) (*models.SyncStatus, error) {
	var status models.SyncStatus
	if err := c.getJSON(ctx, fmt.Sprintf("/accounts/%s/sync", accountID), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

type UploadMediaRequest struct {
	StorageKey string `json:"storage_key"`
	MimeType   string `json:"mime_type"`
	IsVideo    bool   `json:"is_video"`
}

type UploadMediaResponse struct {
	ImageHash string `json:"image_hash,omitempty"`
	VideoID   string `json:"video_id,omitempty"`
}

// UploadMedia hands the staged creative file to the backend and returns the
// platform reference for it, an image hash or a video id depending on type.
func (c *AdsClient) UploadMedia(ctx context.Context, accountID string, req UploadMediaRequest) (*UploadMediaResponse, error) {
	var result UploadMediaResponse
	if err := c.postJSON(ctx, fmt.Sprintf("/accounts/%s/media", accountID), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type CreateCampaignResponse struct {
	CampaignID string `json:"campaign_id"`
	Status     string `json:"status,omitempty"`
}

// CreateCampaign submits the assembled payload. On a non-2xx response the
// returned error carries the backend's body verbatim so the caller can map it
// to a user-facing message.
func (c *AdsClient) CreateCampaign(ctx context.Context, accountID string, payload wizard.CreateCampaignPayload) (*CreateCampaignResponse, error) {
	var result CreateCampaignResponse
	if err := c.postJSON(ctx, fmt.Sprintf("/accounts/%s/campaigns", accountID), payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *AdsClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *AdsClient) postJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *AdsClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ads backend unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ads backend returned %d: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
