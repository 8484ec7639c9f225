package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"service-review-backend/utils/validator"
)

// Review is a rating+text submitted by a user against exactly one service.
type Review struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ServiceID string             `json:"serviceId" bson:"serviceId"`
	Email     string             `json:"email" bson:"email"`
	Rating    float64            `json:"rating" bson:"rating"`
	Text      string             `json:"text" bson:"text"`
	Date      time.Time          `json:"date" bson:"date"`
}

// ReviewInput is the accepted shape for review creation. The date is set
// server-side. ServiceID must be a well-formed object id hex so a review
// that no aggregate can ever reference is rejected before insertion.
type ReviewInput struct {
	ServiceID string  `json:"serviceId" validate:"required,mongodb"`
	Email     string  `json:"email" validate:"required,email"`
	Rating    float64 `json:"rating" validate:"gte=1,lte=5"`
	Text      string  `json:"text" validate:"required"`
}

func (in ReviewInput) Validate() error {
	validate := validator.Get()
	if err := validate.Struct(in); err != nil {
		errs := validator.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}

func (in ReviewInput) ToReview() *Review {
	return &Review{
		ServiceID: in.ServiceID,
		Email:     in.Email,
		Rating:    in.Rating,
		Text:      in.Text,
	}
}

// ReviewUpdate is the partial update accepted on PATCH /review/:id.
type ReviewUpdate struct {
	Rating float64 `json:"rating" validate:"gte=1,lte=5"`
	Text   string  `json:"text" validate:"required"`
}

func (u ReviewUpdate) Validate() error {
	validate := validator.Get()
	if err := validate.Struct(u); err != nil {
		errs := validator.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}

// ReviewStats are full-collection counts, independent of the feed subset.
type ReviewStats struct {
	TotalReviews int64 `json:"totalReviews"`
	GoodReviews  int64 `json:"goodReviews"`
	BadReviews   int64 `json:"badReviews"`
}

// ReviewFeed is the /latest-review response body.
type ReviewFeed struct {
	LatestReviews []Review    `json:"latestReviews"`
	Stats         ReviewStats `json:"stats"`
}
