package mess

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MaheshKadam182/meals-spotter-new/internal/timeline"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores messes in the "messes" collection, one document per
// mess with the menu timeline embedded.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("messes")}
}

func (r *MongoRepository) Create(ctx context.Context, m *Mess) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	doc := clone(m)
	if doc.Menu == nil {
		doc.Menu = timeline.Timeline{}
	}
	if doc.Plans == nil {
		doc.Plans = []timeline.SubscriptionPlan{}
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("could not create mess: %w", err)
	}
	return nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Mess, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) GetByOwner(ctx context.Context, ownerID string) (*Mess, error) {
	return r.findOne(ctx, bson.M{"owner_id": ownerID})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*Mess, error) {
	var m Mess
	if err := r.collection.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not get mess: %w", err)
	}
	return &m, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]*Mess, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("could not list messes: %w", err)
	}
	defer cursor.Close(ctx)

	var messes []*Mess
	if err := cursor.All(ctx, &messes); err != nil {
		return nil, fmt.Errorf("could not decode messes: %w", err)
	}
	return messes, nil
}

func (r *MongoRepository) UpdateProfile(ctx context.Context, m *Mess) error {
	plans := m.Plans
	if plans == nil {
		plans = []timeline.SubscriptionPlan{}
	}
	now := time.Now().UTC()

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": m.ID}, bson.M{
		"$set": bson.M{
			"name":           m.Name,
			"type":           m.Type,
			"cuisine":        m.Cuisine,
			"location":       m.Location,
			"address":        m.Address,
			"contact_number": m.ContactNumber,
			"image":          m.Image,
			"description":    m.Description,
			"plans":          plans,
			"updated_at":     now,
		},
	})
	if err != nil {
		return fmt.Errorf("could not update mess: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	m.UpdatedAt = now
	return nil
}

func (r *MongoRepository) SaveMenu(ctx context.Context, id string, menu timeline.Timeline) error {
	if menu == nil {
		menu = timeline.Timeline{}
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"menu":       menu,
			"updated_at": time.Now().UTC(),
		},
	})
	if err != nil {
		return fmt.Errorf("could not save menu: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}
