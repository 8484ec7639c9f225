package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"service-review-backend/utils/validator"
)

// User is created on first sign-in; email is the unique lookup key.
type User struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	Name      string             `json:"name" bson:"name"`
	Photo     string             `json:"photo" bson:"photo"`
	CreatedAt primitive.DateTime `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

func (u User) Validate() error {
	validate := validator.Get()
	if err := validate.Struct(u); err != nil {
		errs := validator.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}
