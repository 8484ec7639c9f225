package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"service-review-backend/internal/auth"
	"service-review-backend/internal/models"
)

type ReviewService interface {
	ListByService(ctx context.Context, serviceID string) ([]models.Review, error)
	ListByReviewer(ctx context.Context, email string) ([]models.Review, error)
	Create(ctx context.Context, input *models.ReviewInput) (*models.Review, error)
	Update(ctx context.Context, id string, update models.ReviewUpdate) error
	Delete(ctx context.Context, id string) error
	Feed(ctx context.Context) (*models.ReviewFeed, error)
}

type ReviewHandler struct {
	service ReviewService
}

func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// GetReviews lists the reviews of the service named by the id query
// parameter. A service with zero reviews answers 404.
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	serviceID := c.Query("id")
	if serviceID == "" {
		respondError(c, http.StatusBadRequest, errors.New("id query parameter required"))
		return
	}

	reviews, err := h.service.ListByService(c.Request.Context(), serviceID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) GetMyReviews(c *gin.Context) {
	reviews, err := h.service.ListByReviewer(c.Request.Context(), c.Query("email"))
	if err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// CreateReview stores a review and recomputes the rating of the referenced
// service before responding.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	input := new(models.ReviewInput)
	if err := c.ShouldBindJSON(input); err != nil {
		respondError(c, http.StatusBadRequest, errors.New("invalid input"))
		return
	}

	if input.Email == "" {
		if identity, ok := auth.IdentityFrom(c); ok {
			input.Email = identity.Email
		}
	}

	review, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Review added and service updated",
		"insertedId": review.ID.Hex(),
	})
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	update := new(models.ReviewUpdate)
	if err := c.ShouldBindJSON(update); err != nil {
		respondError(c, http.StatusBadRequest, errors.New("invalid input"))
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), *update); err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review updated and service rating updated"})
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted and service rating updated"})
}

// GetLatestReviews returns the newest reviews plus collection-wide stats for
// the home page.
func (h *ReviewHandler) GetLatestReviews(c *gin.Context) {
	feed, err := h.service.Feed(c.Request.Context())
	if err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}
