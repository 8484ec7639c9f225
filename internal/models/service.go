package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"service-review-backend/utils/validator"
)

// Service is a listed offering in the catalog. Rating and ReviewCount are
// derived from the reviews referencing this service and are only ever written
// by the rating aggregator.
type Service struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	CompanyName string             `json:"companyName" bson:"companyName"`
	Category    string             `json:"category" bson:"category"`
	Price       float64            `json:"price" bson:"price"`
	Image       string             `json:"image" bson:"image"`
	UserEmail   string             `json:"userEmail" bson:"userEmail"`
	Rating      float64            `json:"rating" bson:"rating"`
	ReviewCount int                `json:"reviewCount" bson:"reviewCount"`
	CreatedAt   primitive.DateTime `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   primitive.DateTime `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ServiceInput is the accepted shape for service creation. Derived fields are
// deliberately absent so a client cannot set them.
type ServiceInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	CompanyName string  `json:"companyName" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image"`
	UserEmail   string  `json:"userEmail" validate:"omitempty,email"`
}

func (in ServiceInput) Validate() error {
	validate := validator.Get()
	if err := validate.Struct(in); err != nil {
		errs := validator.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}

// ToService builds the stored entity with derived fields zeroed.
func (in ServiceInput) ToService() *Service {
	return &Service{
		Title:       in.Title,
		Description: in.Description,
		CompanyName: in.CompanyName,
		Category:    in.Category,
		Price:       in.Price,
		Image:       in.Image,
		UserEmail:   in.UserEmail,
	}
}

// ServiceUpdate is the partial update accepted on PATCH /my-service: exactly
// image, title, price and category.
type ServiceUpdate struct {
	ID       string  `json:"_id" validate:"required"`
	Image    string  `json:"image"`
	Title    string  `json:"title" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Category string  `json:"category" validate:"required"`
}

func (u ServiceUpdate) Validate() error {
	validate := validator.Get()
	if err := validate.Struct(u); err != nil {
		errs := validator.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}

// CatalogPage is the /services response body. Categories always holds the
// full distinct category set regardless of the active filter.
type CatalogPage struct {
	Services   []Service `json:"services"`
	Categories []string  `json:"categories"`
}
