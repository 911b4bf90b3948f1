package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ms-tech-geek/e-rickshaw-booking/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// pageCacheVersionKey is bumped on every create/update so stale page
	// payloads stop being addressable; the old keys age out via TTL.
	pageCacheVersionKey = "bookings:pages:version"
	pageCacheKeyFormat  = "bookings:pages:%d:%d"
	pageCacheTTL        = 30 * time.Second
)

// cachedPage is the Redis payload for one booking page.
type cachedPage struct {
	Bookings []entity.Booking `json:"bookings"`
	Total    int64            `json:"total"`
}

// PageCacheService is a best-effort Redis cache in front of the booking
// list query. Every method degrades to a no-op when Redis misbehaves;
// the record store stays the source of truth.
type PageCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewPageCacheService(redisClient *redis.Client, log *logrus.Logger) *PageCacheService {
	return &PageCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

// Get returns the cached rows and total count for a page, or ok=false on
// a miss or any Redis error.
func (s *PageCacheService) Get(ctx context.Context, page int) ([]entity.Booking, int64, bool) {
	key, err := s.pageKey(ctx, page)
	if err != nil {
		return nil, 0, false
	}

	payload, err := s.redisClient.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, 0, false
	}
	if err != nil {
		s.log.Debugf("Page cache read failed for page %d: %+v", page, err)
		return nil, 0, false
	}

	var cached cachedPage
	if err := json.Unmarshal(payload, &cached); err != nil {
		s.log.Warnf("Page cache payload corrupt for page %d: %+v", page, err)
		return nil, 0, false
	}
	return cached.Bookings, cached.Total, true
}

// Set stores one page with a short TTL.
func (s *PageCacheService) Set(ctx context.Context, page int, bookings []entity.Booking, total int64) {
	key, err := s.pageKey(ctx, page)
	if err != nil {
		return
	}

	payload, err := json.Marshal(cachedPage{Bookings: bookings, Total: total})
	if err != nil {
		s.log.Warnf("Failed to marshal page %d for cache: %+v", page, err)
		return
	}
	if err := s.redisClient.Set(ctx, key, payload, pageCacheTTL).Err(); err != nil {
		s.log.Debugf("Page cache write failed for page %d: %+v", page, err)
	}
}

// Invalidate drops all cached pages by bumping the version counter.
func (s *PageCacheService) Invalidate(ctx context.Context) {
	if err := s.redisClient.Incr(ctx, pageCacheVersionKey).Err(); err != nil {
		s.log.Debugf("Page cache invalidation failed: %+v", err)
	}
}

func (s *PageCacheService) pageKey(ctx context.Context, page int) (string, error) {
	version, err := s.redisClient.Get(ctx, pageCacheVersionKey).Int64()
	if err == redis.Nil {
		version = 0
	} else if err != nil {
		s.log.Debugf("Page cache version read failed: %+v", err)
		return "", err
	}
	return fmt.Sprintf(pageCacheKeyFormat, version, page), nil
}
