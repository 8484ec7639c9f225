package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"service-review-backend/internal/auth"
	"service-review-backend/internal/models"
)

type CatalogService interface {
	Search(ctx context.Context, category, search string) (*models.CatalogPage, error)
	GetByID(ctx context.Context, id string) (*models.Service, error)
	ListByOwner(ctx context.Context, email string) ([]models.Service, error)
	Featured(ctx context.Context) ([]models.Service, error)
	Create(ctx context.Context, input *models.ServiceInput, ownerEmail string) (*models.Service, error)
	Update(ctx context.Context, update models.ServiceUpdate) error
	Delete(ctx context.Context, id string) error
}

type ServiceHandler struct {
	service CatalogService
}

func NewServiceHandler(service CatalogService) *ServiceHandler {
	return &ServiceHandler{service: service}
}

// GetServices lists the catalog with optional category/search filtering.
// The category list in the response is always the full distinct set.
func (h *ServiceHandler) GetServices(c *gin.Context) {
	page, err := h.service.Search(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *ServiceHandler) GetServiceByID(c *gin.Context) {
	service, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, service)
}

// GetMyServices lists the services owned by the given email.
func (h *ServiceHandler) GetMyServices(c *gin.Context) {
	services, err := h.service.ListByOwner(c.Request.Context(), c.Param("email"))
	if err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) GetFeatured(c *gin.Context) {
	services, err := h.service.Featured(c.Request.Context())
	if err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) CreateService(c *gin.Context) {
	input := new(models.ServiceInput)
	if err := c.ShouldBindJSON(input); err != nil {
		respondError(c, http.StatusBadRequest, errors.New("invalid input"))
		return
	}

	var ownerEmail string
	if identity, ok := auth.IdentityFrom(c); ok {
		ownerEmail = identity.Email
	}

	service, err := h.service.Create(c.Request.Context(), input, ownerEmail)
	if err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Service added successfully",
		"insertedId": service.ID.Hex(),
	})
}

// UpdateService edits image, title, price and category of the service whose
// id arrives in the request body.
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	update := new(models.ServiceUpdate)
	if err := c.ShouldBindJSON(update); err != nil {
		respondError(c, http.StatusBadRequest, errors.New("invalid input"))
		return
	}

	if err := h.service.Update(c.Request.Context(), *update); err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service updated successfully"})
}

// DeleteService removes the service whose id arrives in the request body.
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	body := new(struct {
		ID string `json:"_id"`
	})
	if err := c.ShouldBindJSON(body); err != nil {
		respondError(c, http.StatusBadRequest, errors.New("invalid input"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), body.ID); err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
