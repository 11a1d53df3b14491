package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/br-labs/restaurant-api/internal/core/domain"
	"github.com/br-labs/restaurant-api/internal/core/ports"
)

const collectionRestaurants = "restaurants"

type RestaurantRepository struct {
	coll *mongo.Collection
}

func NewRestaurantRepository(db *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{coll: db.Collection(collectionRestaurants)}
}

type restaurantDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Location    string             `bson:"location,omitempty"`
	Rating      *int               `bson:"rating,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	OwnerName   string             `bson:"owner_name"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func fromDomain(r *domain.Restaurant) restaurantDoc {
	return restaurantDoc{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Rating:      r.Rating,
		OwnerID:     r.OwnerID,
		OwnerName:   r.OwnerName,
		CreatedAt:   r.CreatedAt,
	}
}

func (d restaurantDoc) toDomain() *domain.Restaurant {
	return &domain.Restaurant{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Location:    d.Location,
		Rating:      d.Rating,
		OwnerID:     d.OwnerID,
		OwnerName:   d.OwnerName,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// Create inserts a new restaurant document and returns it with its
// assigned id.
func (r *RestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomain(restaurant)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert restaurant: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// FindByID retrieves a restaurant by its hex object id. A malformed id
// is reported as not-found, matching the outward 404 contract.
func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc restaurantDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns one page of restaurants matching filter and the total
// count of matching documents.
func (r *RestaurantRepository) List(ctx context.Context, filter ports.ListRestaurantsFilter) ([]*domain.Restaurant, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count restaurants: %w", err)
	}

	order := 1
	if filter.SortDesc {
		order = -1
	}
	sortField := filter.SortField
	if sortField == "" {
		sortField = "created_at"
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: order}, {Key: "_id", Value: order}}).
		SetSkip(int64(filter.Page-1) * int64(filter.Size)).
		SetLimit(int64(filter.Size))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.Restaurant
	for cursor.Next(ctx) {
		var doc restaurantDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode restaurant: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list restaurants: %w", err)
	}

	return items, total, nil
}

// Update overwrites the mutable fields of an existing restaurant.
// Owner and creation time are never touched.
func (r *RestaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	oid, err := primitive.ObjectIDFromHex(restaurant.ID)
	if err != nil {
		return domain.ErrRestaurantNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        restaurant.Name,
		"description": restaurant.Description,
		"location":    restaurant.Location,
		"rating":      restaurant.Rating,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

// Delete removes a restaurant document.
func (r *RestaurantRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRestaurantNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

// EnsureIndexes creates the owner and creation-time indexes used by the
// listing queries.
func (r *RestaurantRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
