package services

import (
	"context"
	"math"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"service-review-backend/internal/models"
)

// RatingSource yields the rating sum and review count for one service.
type RatingSource interface {
	RatingSummary(ctx context.Context, serviceID string) (float64, int64, error)
}

// RatingWriter persists both derived fields of a service in one write.
type RatingWriter interface {
	UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int) error
}

// Aggregator recomputes a service's aggregate rating from its reviews.
// Recomputations for the same service id are serialized, so two concurrent
// review submissions cannot overwrite each other's aggregate.
type Aggregator struct {
	services RatingWriter
	reviews  RatingSource

	mu sync.Mutex
	// locks holds one mutex per service id that has ever been recomputed.
	// Entries are never evicted; the map is bounded by the number of
	// services, each entry a handful of bytes. TODO: switch to a
	// reference-counted pool if the catalog ever outgrows that assumption.
	locks map[string]*sync.Mutex
}

func NewAggregator(services RatingWriter, reviews RatingSource) *Aggregator {
	return &Aggregator{
		services: services,
		reviews:  reviews,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Recompute loads the rating summary for the service and writes the derived
// fields back. A service with no remaining reviews is reset to rating 0,
// reviewCount 0. The average is always rounded to one decimal place.
func (a *Aggregator) Recompute(ctx context.Context, serviceID string) error {
	objID, err := primitive.ObjectIDFromHex(serviceID)
	if err != nil {
		return models.ErrInvalidID
	}

	lock := a.lockFor(serviceID)
	lock.Lock()
	defer lock.Unlock()

	sum, count, err := a.reviews.RatingSummary(ctx, serviceID)
	if err != nil {
		return err
	}

	var rating float64
	if count > 0 {
		rating = roundToTenth(sum / float64(count))
	}

	return a.services.UpdateRating(ctx, objID, rating, int(count))
}

func (a *Aggregator) lockFor(serviceID string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()

	lock, ok := a.locks[serviceID]
	if !ok {
		lock = &sync.Mutex{}
		a.locks[serviceID] = lock
	}

	return lock
}

func roundToTenth(x float64) float64 {
	return math.Round(x*10) / 10
}
