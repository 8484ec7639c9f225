package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"service-review-backend/internal/models"
)

const feedLimit = 6

type ReviewRepository interface {
	ListByService(ctx context.Context, serviceID string) ([]models.Review, error)
	ListByReviewer(ctx context.Context, email string) ([]models.Review, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, id primitive.ObjectID, update models.ReviewUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	LatestFeed(ctx context.Context, limit int64) ([]models.Review, error)
	Stats(ctx context.Context) (*models.ReviewStats, error)
	Count(ctx context.Context) (int64, error)
}

// Recomputer triggers a rating recomputation for one service.
type Recomputer interface {
	Recompute(ctx context.Context, serviceID string) error
}

// ReviewService implements review CRUD. Every create, update and delete
// triggers a rating recomputation for the referenced service before the
// call returns.
type ReviewService struct {
	repo       ReviewRepository
	aggregator Recomputer
	cache      Cache
}

func NewReviewService(repo ReviewRepository, aggregator Recomputer, cache Cache) *ReviewService {
	return &ReviewService{
		repo:       repo,
		aggregator: aggregator,
		cache:      cache,
	}
}

// ListByService returns the reviews for a service. Zero reviews is reported
// as ErrNotFound, which is the documented contract of GET /reviews.
func (s *ReviewService) ListByService(ctx context.Context, serviceID string) ([]models.Review, error) {
	reviews, err := s.repo.ListByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if len(reviews) == 0 {
		return nil, models.ErrNotFound
	}

	return reviews, nil
}

func (s *ReviewService) ListByReviewer(ctx context.Context, email string) ([]models.Review, error) {
	return s.repo.ListByReviewer(ctx, email)
}

// Create inserts the review and recomputes the service aggregate. The date
// is set server-side, ignoring any client-supplied value.
func (s *ReviewService) Create(ctx context.Context, input *models.ReviewInput) (*models.Review, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	review := input.ToReview()
	review.Date = time.Now()

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.aggregator.Recompute(ctx, review.ServiceID); err != nil {
		return nil, err
	}

	s.invalidateCounts(ctx)

	return review, nil
}

// Update edits rating and text, then recomputes the aggregate of the review's
// service. The review vanishing between the update and the lookup fails the
// request.
func (s *ReviewService) Update(ctx context.Context, id string, update models.ReviewUpdate) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}

	if err := update.Validate(); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, objID, update); err != nil {
		return err
	}

	current, err := s.repo.GetByID(ctx, objID)
	if err != nil {
		return err
	}

	return s.aggregator.Recompute(ctx, current.ServiceID)
}

// Delete removes the review and recomputes the aggregate of its service.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}

	current, err := s.repo.GetByID(ctx, objID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, objID); err != nil {
		return err
	}

	if err := s.aggregator.Recompute(ctx, current.ServiceID); err != nil {
		return err
	}

	s.invalidateCounts(ctx)

	return nil
}

func (s *ReviewService) invalidateCounts(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, countsCacheKey); err != nil {
		log.Printf("[CACHE] Failed to invalidate %s: %v", countsCacheKey, err)
	}
}

// Feed returns the newest reviews together with full-collection statistics.
func (s *ReviewService) Feed(ctx context.Context) (*models.ReviewFeed, error) {
	latest, err := s.repo.LatestFeed(ctx, feedLimit)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &models.ReviewFeed{
		LatestReviews: latest,
		Stats:         *stats,
	}, nil
}
