package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/flattrack/internal/app/system/status"
	"github.com/dalemusser/flattrack/internal/domain/models"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateEmail is returned when attempting to create a user
	// with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "admin"|"salesperson"|"office"`)
	errBadStatus      = errors.New(`status must be "active"|"disabled"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email_ci": foldEmail(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns users sorted by full name, optionally narrowed to a role.
func (s *Store) List(ctx context.Context, role string) ([]models.User, error) {
	q := bson.M{}
	if role != "" {
		q["role"] = role
	}
	find := options.Find().SetSort(bson.D{{Key: "full_name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, q, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new user after normalizing and validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = strings.TrimSpace(u.FullName)
	u.Email = strings.TrimSpace(u.Email)
	u.EmailCI = foldEmail(u.Email)
	if u.Status == "" {
		u.Status = status.Active
	}

	switch u.Role {
	case "admin", "salesperson", "office":
	default:
		return models.User{}, errBadRole
	}
	if !status.IsValid(u.Status) {
		return models.User{}, errBadStatus
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Update holds the editable user fields. Nil pointers leave the stored
// value untouched; PasswordHash is only rewritten when non-empty.
type Update struct {
	FullName     *string
	Email        *string
	Phone        *string
	PositionID   *primitive.ObjectID
	Role         *string
	Status       *string
	PasswordHash string
}

// Update applies the given changes to one user.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)}

	if upd.FullName != nil {
		set["full_name"] = strings.TrimSpace(*upd.FullName)
	}
	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		set["email"] = email
		set["email_ci"] = foldEmail(email)
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.PositionID != nil {
		set["position_id"] = *upd.PositionID
	}
	if upd.Role != nil {
		switch *upd.Role {
		case "admin", "salesperson", "office":
		default:
			return nil, errBadRole
		}
		set["role"] = *upd.Role
	}
	if upd.Status != nil {
		if !status.IsValid(*upd.Status) {
			return nil, errBadStatus
		}
		set["status"] = *upd.Status
	}
	if upd.PasswordHash != "" {
		set["password_hash"] = upd.PasswordHash
	}

	res := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var u models.User
	if err := res.Decode(&u); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &u, nil
}

// Delete removes a user. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// foldEmail lowercases and trims an address for the unique email_ci index.
func foldEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
