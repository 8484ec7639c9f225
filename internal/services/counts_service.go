package services

import (
	"context"
	"encoding/json"
	"log"

	"service-review-backend/internal/models"
	"service-review-backend/utils"
)

const countsCacheKey = "global_counts"

// Counter is the single-method slice of a repository used for the global
// counters.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type CountsService struct {
	services Counter
	reviews  Counter
	users    Counter
	cache    Cache
}

func NewCountsService(services, reviews, users Counter, cache Cache) *CountsService {
	return &CountsService{
		services: services,
		reviews:  reviews,
		users:    users,
		cache:    cache,
	}
}

// Counts returns the per-collection document totals. The result is cached;
// every write path that changes a total drops the cache entry, so a cached
// response never disagrees with the collections.
func (s *CountsService) Counts(ctx context.Context) (*models.Counts, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, countsCacheKey); err == nil {
			var counts models.Counts
			if err := json.Unmarshal([]byte(cached), &counts); err == nil {
				return &counts, nil
			}
		}
	}

	serviceCount, err := s.services.Count(ctx)
	if err != nil {
		return nil, err
	}

	reviewCount, err := s.reviews.Count(ctx)
	if err != nil {
		return nil, err
	}

	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	counts := &models.Counts{
		ReviewCount:  reviewCount,
		UserCount:    userCount,
		ServiceCount: serviceCount,
	}

	if s.cache != nil {
		if data, err := json.Marshal(counts); err == nil {
			if err := s.cache.Set(ctx, countsCacheKey, string(data), utils.CacheTTL); err != nil {
				log.Printf("[CACHE] Failed to cache counts: %v", err)
			}
		}
	}

	return counts, nil
}
