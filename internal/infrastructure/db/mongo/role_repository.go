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
)

const collectionRoles = "roles"

type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(collectionRoles)}
}

type roleDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// FindOrCreate returns the role named name, inserting it on first use.
// Two concurrent first-time creations race on the unique name index; the
// losing insert is downgraded to a lookup rather than retried further.
func (r *RoleRepository) FindOrCreate(ctx context.Context, name string) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	role, err := r.findByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("find role: %w", err)
	}

	res, insertErr := r.coll.InsertOne(ctx, roleDoc{Name: name})
	if insertErr != nil {
		if mongo.IsDuplicateKeyError(insertErr) {
			return r.findByName(ctx, name)
		}
		return nil, fmt.Errorf("insert role: %w", insertErr)
	}

	return &domain.Role{ID: res.InsertedID.(primitive.ObjectID).Hex(), Name: name}, nil
}

func (r *RoleRepository) findByName(ctx context.Context, name string) (*domain.Role, error) {
	var doc roleDoc
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		return nil, err
	}
	return &domain.Role{ID: doc.ID.Hex(), Name: doc.Name}, nil
}

// EnsureIndexes creates the unique name index backing FindOrCreate.
func (r *RoleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
