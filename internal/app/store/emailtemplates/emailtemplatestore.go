// Package emailtemplatestore persists the named message templates used
// by the site-visit mailer. Bodies are sanitized on write because the
// template editor submits rich text.
package emailtemplatestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/flattrack/internal/app/system/htmlsanitize"
	"github.com/dalemusser/flattrack/internal/domain/models"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateName is returned when a template with the same name
	// already exists.
	ErrDuplicateName = errors.New("an email template with this name already exists")
	errEmptyName     = errors.New("template name is required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("email_templates")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EmailTemplate, error) {
	var tpl models.EmailTemplate
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// GetByName looks up a template by its exact name. The scheduler uses
// this with models.SiteVisitBookingTemplate. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByName(ctx context.Context, name string) (*models.EmailTemplate, error) {
	var tpl models.EmailTemplate
	if err := s.c.FindOne(ctx, bson.M{"name": name}).Decode(&tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// List returns all templates sorted by name.
func (s *Store) List(ctx context.Context) ([]models.EmailTemplate, error) {
	find := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.EmailTemplate
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, tpl models.EmailTemplate) (models.EmailTemplate, error) {
	tpl.Name = strings.TrimSpace(tpl.Name)
	if tpl.Name == "" {
		return models.EmailTemplate{}, errEmptyName
	}
	tpl.Body = htmlsanitize.Sanitize(tpl.Body)

	now := time.Now().UTC().Truncate(time.Millisecond)
	tpl.ID = primitive.NewObjectID()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, tpl); err != nil {
		if wafflemongo.IsDup(err) {
			return models.EmailTemplate{}, ErrDuplicateName
		}
		return models.EmailTemplate{}, err
	}
	return tpl, nil
}

// Update rewrites a template's name, subject, and body.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name, subject, body string) (*models.EmailTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errEmptyName
	}

	res := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":       name,
			"subject":    subject,
			"body":       htmlsanitize.Sanitize(body),
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var tpl models.EmailTemplate
	if err := res.Decode(&tpl); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &tpl, nil
}

// Delete removes a template. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
