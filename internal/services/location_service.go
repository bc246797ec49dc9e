package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/adpilot/backend/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LocationService proxies geo-targeting search to the ads backend with a
// short Redis cache keyed by the normalized query.
type LocationService struct {
	adsClient *AdsClient
	rdb       *redis.Client
	cacheTTL  time.Duration
	log       *zap.Logger
}

func NewLocationService(adsClient *AdsClient, rdb *redis.Client, cacheTTL time.Duration, log *zap.Logger) *LocationService {
	return &LocationService{
		adsClient: adsClient,
		rdb:       rdb,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

func (s *LocationService) Search(ctx context.Context, query string) ([]models.GeoLocation, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, nil
	}

	key := fmt.Sprintf("locsearch:%s", strings.ToLower(query))
	if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var locations []models.GeoLocation
		if json.Unmarshal(cached, &locations) == nil {
			return locations, nil
		}
	}

	locations, err := s.adsClient.SearchLocations(ctx, query)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(locations); err == nil {
		s.rdb.Set(ctx, key, data, s.cacheTTL)
	}
	return locations, nil
}
