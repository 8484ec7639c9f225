package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"service-review-backend/internal/models"
)

type UserService interface {
	Register(ctx context.Context, user *models.User) (*models.User, bool, error)
	Lookup(ctx context.Context, filter map[string]string) (*models.User, error)
}

type CountsService interface {
	Counts(ctx context.Context) (*models.Counts, error)
}

type UserHandler struct {
	users  UserService
	counts CountsService
}

func NewUserHandler(users UserService, counts CountsService) *UserHandler {
	return &UserHandler{
		users:  users,
		counts: counts,
	}
}

// GetUser looks up a single user by query-string field equality, e.g.
// GET /user?email=a@b.c.
func (h *UserHandler) GetUser(c *gin.Context) {
	filter := make(map[string]string)
	for field, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			filter[field] = values[0]
		}
	}

	user, err := h.users.Lookup(c.Request.Context(), filter)
	if err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser registers a user on first sign-in. A known email answers 200
// with the existing user instead of inserting a duplicate.
func (h *UserHandler) CreateUser(c *gin.Context) {
	user := new(models.User)
	if err := c.ShouldBindJSON(user); err != nil {
		respondError(c, http.StatusBadRequest, errors.New("invalid input"))
		return
	}

	registered, created, err := h.users.Register(c.Request.Context(), user)
	if err != nil {
		handleStoreError(c, err)
		return
	}

	status := http.StatusOK
	message := "User already registered"
	if created {
		status = http.StatusCreated
		message = "User added successfully"
	}

	c.JSON(status, gin.H{
		"message":    message,
		"insertedId": registered.ID.Hex(),
	})
}

func (h *UserHandler) GetCounts(c *gin.Context) {
	counts, err := h.counts.Counts(c.Request.Context())
	if err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}
