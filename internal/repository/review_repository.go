package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"service-review-backend/internal/models"
)

const reviewsCollection = "reviews"

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(reviewsCollection)}
}

func (r *ReviewRepository) ListByService(ctx context.Context, serviceID string) ([]models.Review, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"serviceId": serviceID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}

	if reviews == nil {
		reviews = []models.Review{}
	}

	return reviews, nil
}

func (r *ReviewRepository) ListByReviewer(ctx context.Context, email string) ([]models.Review, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}

	if reviews == nil {
		reviews = []models.Review{}
	}

	return reviews, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	return &review, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return err
	}

	review.ID = result.InsertedID.(primitive.ObjectID)

	return nil
}

func (r *ReviewRepository) Update(ctx context.Context, id primitive.ObjectID, update models.ReviewUpdate) error {
	filter := bson.M{"_id": id}
	document := bson.M{"$set": bson.M{
		"rating": update.Rating,
		"text":   update.Text,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, document)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}

	return nil
}

// LatestFeed returns the newest reviews across all services.
func (r *ReviewRepository) LatestFeed(ctx context.Context, limit int64) ([]models.Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}

	if reviews == nil {
		reviews = []models.Review{}
	}

	return reviews, nil
}

// Stats counts the whole collection, not the feed subset.
func (r *ReviewRepository) Stats(ctx context.Context) (*models.ReviewStats, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	good, err := r.collection.CountDocuments(ctx, bson.M{"rating": bson.M{"$gte": 4}})
	if err != nil {
		return nil, err
	}

	bad, err := r.collection.CountDocuments(ctx, bson.M{"rating": bson.M{"$lte": 2}})
	if err != nil {
		return nil, err
	}

	return &models.ReviewStats{
		TotalReviews: total,
		GoodReviews:  good,
		BadReviews:   bad,
	}, nil
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// RatingSummary computes the rating sum and review count for one service in
// a single aggregation pass.
func (r *ReviewRepository) RatingSummary(ctx context.Context, serviceID string) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"serviceId": serviceID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$serviceId",
			"sum":   bson.M{"$sum": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Sum   float64 `bson:"sum"`
		Count int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, err
	}

	if len(results) == 0 {
		return 0, 0, nil
	}

	return results[0].Sum, results[0].Count, nil
}
