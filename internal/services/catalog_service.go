package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"service-review-backend/internal/models"
	"service-review-backend/utils"
)

const (
	featuredLimit    = 8
	featuredCacheKey = "featured_services"
)

type ServiceRepository interface {
	Search(ctx context.Context, category, search string) ([]models.Service, error)
	Categories(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Service, error)
	ListByOwner(ctx context.Context, email string) ([]models.Service, error)
	Featured(ctx context.Context, limit int64) ([]models.Service, error)
	Create(ctx context.Context, service *models.Service) error
	Update(ctx context.Context, id primitive.ObjectID, update models.ServiceUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// CatalogService implements catalog search and owner-scoped CRUD.
type CatalogService struct {
	repo  ServiceRepository
	cache Cache
}

func NewCatalogService(repo ServiceRepository, cache Cache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
	}
}

// Search returns the filtered services together with the full distinct
// category set. A category of "all" (any case) disables the filter.
func (s *CatalogService) Search(ctx context.Context, category, search string) (*models.CatalogPage, error) {
	if strings.EqualFold(category, "all") {
		category = ""
	}

	services, err := s.repo.Search(ctx, category, search)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}

	return &models.CatalogPage{
		Services:   services,
		Categories: categories,
	}, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*models.Service, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}

	return s.repo.GetByID(ctx, objID)
}

func (s *CatalogService) ListByOwner(ctx context.Context, email string) ([]models.Service, error) {
	return s.repo.ListByOwner(ctx, email)
}

// Featured returns the top services by review count, rating breaking ties.
// The list is cached for a short interval; a rating recomputation may leave
// it stale for at most the cache TTL.
func (s *CatalogService) Featured(ctx context.Context) ([]models.Service, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, featuredCacheKey); err == nil {
			var services []models.Service
			if err := json.Unmarshal([]byte(cached), &services); err == nil {
				return services, nil
			}
		}
	}

	services, err := s.repo.Featured(ctx, featuredLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(services); err == nil {
			if err := s.cache.Set(ctx, featuredCacheKey, string(data), utils.CacheTTL); err != nil {
				log.Printf("[CACHE] Failed to cache featured services: %v", err)
			}
		}
	}

	return services, nil
}

// Create stores a new service. Derived rating fields supplied by the client
// are ignored; the stored document always starts at rating 0, reviewCount 0.
// The owner email falls back to the authenticated identity when the payload
// omits it.
func (s *CatalogService) Create(ctx context.Context, input *models.ServiceInput, ownerEmail string) (*models.Service, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	service := input.ToService()
	if service.UserEmail == "" {
		service.UserEmail = ownerEmail
	}

	if err := s.repo.Create(ctx, service); err != nil {
		return nil, err
	}

	s.invalidate(ctx, featuredCacheKey, countsCacheKey)

	return service, nil
}

func (s *CatalogService) Update(ctx context.Context, update models.ServiceUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}

	objID, err := primitive.ObjectIDFromHex(update.ID)
	if err != nil {
		return models.ErrInvalidID
	}

	if err := s.repo.Update(ctx, objID, update); err != nil {
		return err
	}

	s.invalidate(ctx, featuredCacheKey)

	return nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}

	if err := s.repo.Delete(ctx, objID); err != nil {
		return err
	}

	s.invalidate(ctx, featuredCacheKey, countsCacheKey)

	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		log.Printf("[CACHE] Failed to invalidate %v: %v", keys, err)
	}
}
