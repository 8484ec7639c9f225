package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"service-review-backend/internal/models"
)

const servicesCollection = "services"

type ServiceRepository struct {
	collection *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) *ServiceRepository {
	return &ServiceRepository{collection: db.Collection(servicesCollection)}
}

// Search filters the catalog. An empty category disables the category filter;
// a non-empty search term matches case-insensitively as a substring across
// title, description, companyName and category.
func (r *ServiceRepository) Search(ctx context.Context, category, search string) ([]models.Service, error) {
	filter := bson.M{}

	if category != "" {
		filter["category"] = primitive.Regex{Pattern: category, Options: "i"}
	}

	if search != "" {
		re := primitive.Regex{Pattern: search, Options: "i"}
		filter["$or"] = []bson.M{
			{"title": re},
			{"description": re},
			{"companyName": re},
			{"category": re},
		}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err = cursor.All(ctx, &services); err != nil {
		return nil, err
	}

	if services == nil {
		services = []models.Service{}
	}

	return services, nil
}

// Categories returns the full distinct category set across the catalog,
// independent of any active filter.
func (r *ServiceRepository) Categories(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}

	return categories, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Service, error) {
	var service models.Service
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&service)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	return &service, nil
}

func (r *ServiceRepository) ListByOwner(ctx context.Context, email string) ([]models.Service, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userEmail": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err = cursor.All(ctx, &services); err != nil {
		return nil, err
	}

	if services == nil {
		services = []models.Service{}
	}

	return services, nil
}

// featuredSort orders the featured list: review count descending first,
// rating descending breaking ties.
var featuredSort = bson.D{{Key: "reviewCount", Value: -1}, {Key: "rating", Value: -1}}

// Featured returns the top services ordered by review count, rating breaking
// ties.
func (r *ServiceRepository) Featured(ctx context.Context, limit int64) ([]models.Service, error) {
	opts := options.Find().
		SetSort(featuredSort).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err = cursor.All(ctx, &services); err != nil {
		return nil, err
	}

	if services == nil {
		services = []models.Service{}
	}

	return services, nil
}

func (r *ServiceRepository) Create(ctx context.Context, service *models.Service) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	service.CreatedAt = now
	service.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, service)
	if err != nil {
		return err
	}

	service.ID = result.InsertedID.(primitive.ObjectID)

	return nil
}

func (r *ServiceRepository) Update(ctx context.Context, id primitive.ObjectID, update models.ServiceUpdate) error {
	filter := bson.M{"_id": id}
	document := bson.M{"$set": bson.M{
		"image":     update.Image,
		"title":     update.Title,
		"price":     update.Price,
		"category":  update.Category,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
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

func (r *ServiceRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *ServiceRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// UpdateRating writes both derived fields in a single update.
func (r *ServiceRepository) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int) error {
	filter := bson.M{"_id": id}
	document := bson.M{"$set": bson.M{
		"rating":      rating,
		"reviewCount": reviewCount,
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
