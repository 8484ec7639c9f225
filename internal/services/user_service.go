package services

import (
	"context"
	"errors"
	"log"

	"service-review-backend/internal/models"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByFilter(ctx context.Context, filter map[string]string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int64, error)
}

type UserService struct {
	repo  UserRepository
	cache Cache
}

func NewUserService(repo UserRepository, cache Cache) *UserService {
	return &UserService{
		repo:  repo,
		cache: cache,
	}
}

// Register creates the user on first sign-in. Registration is idempotent on
// email: a known email returns the existing user and created=false.
func (s *UserService) Register(ctx context.Context, user *models.User) (*models.User, bool, error) {
	if err := user.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, false, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, countsCacheKey); err != nil {
			log.Printf("[CACHE] Failed to invalidate %s: %v", countsCacheKey, err)
		}
	}

	return user, true, nil
}

func (s *UserService) Lookup(ctx context.Context, filter map[string]string) (*models.User, error) {
	return s.repo.FindByFilter(ctx, filter)
}
