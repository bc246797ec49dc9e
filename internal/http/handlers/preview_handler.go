package handlers

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/adpilot/backend/internal/http/dto"
	"github.com/adpilot/backend/internal/linkpreview"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PreviewHandler serves the destination-URL card on the review step.
type PreviewHandler struct {
	fetcher  *linkpreview.Fetcher
	rdb      *redis.Client
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewPreviewHandler(fetcher *linkpreview.Fetcher, rdb *redis.Client, cacheTTL time.Duration, log *zap.Logger) *PreviewHandler {
	return &PreviewHandler{fetcher: fetcher, rdb: rdb, cacheTTL: cacheTTL, log: log}
}

func (h *PreviewHandler) GetPreview(c *fiber.Ctx) error {
	raw := c.Query("url")
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "url must be a valid http(s) URL"})
	}

	key := fmt.Sprintf("preview:%s", raw)
	if cached, err := h.rdb.Get(c.Context(), key).Bytes(); err == nil {
		var p linkpreview.Preview
		if json.Unmarshal(cached, &p) == nil {
			return c.JSON(dto.SuccessResponse{OK: true, Data: p})
		}
	}

	preview, err := h.fetcher.Fetch(c.Context(), raw)
	if err != nil {
		h.log.Debug("link preview failed", zap.String("url", raw), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: "could not load a preview for this URL"})
	}

	if data, err := json.Marshal(preview); err == nil {
		h.rdb.Set(c.Context(), key, data, h.cacheTTL)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: preview})
}
