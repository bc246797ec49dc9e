package linkpreview

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Preview is the destination-URL card shown on the review step.
type Preview struct {
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	SiteName    string    `json:"site_name,omitempty"`
	FetchedAt   time.Time `json:"fetched_at"`
}

type Fetcher struct {
	httpClient *http.Client
	log        *zap.Logger
	maxRetries int
}

func NewFetcher(timeoutMS, maxRetries int, log *zap.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
		log:        log,
		maxRetries: maxRetries,
	}
}

// Fetch downloads the destination page and extracts Open Graph / HTML meta.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Preview, error) {
	var doc *goquery.Document
	var lastErr error

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; AdPilotPreview/1.0)")
		req.Header.Set("Accept", "text/html")

		resp, err := f.httpClient.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 300 * time.Millisecond)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, pageURL)
			time.Sleep(time.Duration(attempt+1) * 300 * time.Millisecond)
			continue
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		lastErr = nil
		break
	}

	if lastErr != nil {
		return nil, lastErr
	}

	return parseDocument(doc, pageURL), nil
}

func parseDocument(doc *goquery.Document, pageURL string) *Preview {
	p := &Preview{
		URL:       pageURL,
		FetchedAt: time.Now(),
	}

	p.Title = metaContent(doc, "og:title")
	if p.Title == "" {
		p.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	p.Description = metaContent(doc, "og:description")
	if p.Description == "" {
		doc.Find(`meta[name="description"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
			if content, ok := s.Attr("content"); ok {
				p.Description = strings.TrimSpace(content)
				return false
			}
			return true
		})
	}

	p.ImageURL = metaContent(doc, "og:image")
	p.SiteName = metaContent(doc, "og:site_name")

	return p
}

func metaContent(doc *goquery.Document, property string) string {
	var content string
	doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if v, ok := s.Attr("content"); ok {
			content = strings.TrimSpace(v)
			return false
		}
		return true
	})
	return content
}
