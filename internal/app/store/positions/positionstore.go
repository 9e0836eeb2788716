package positionstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/flattrack/internal/domain/models"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateName is returned when a position with the same name
	// already exists.
	ErrDuplicateName = errors.New("a position with this name already exists")
	errEmptyName     = errors.New("position name is required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("positions")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Position, error) {
	var p models.Position
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all positions sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Position, error) {
	find := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Position
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, p models.Position) (models.Position, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return models.Position{}, errEmptyName
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Position{}, ErrDuplicateName
		}
		return models.Position{}, err
	}
	return p, nil
}

// Rename changes a position's name.
func (s *Store) Rename(ctx context.Context, id primitive.ObjectID, name string) (*models.Position, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errEmptyName
	}

	res := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":       name,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var p models.Position
	if err := res.Decode(&p); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &p, nil
}

// Delete removes a position. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
