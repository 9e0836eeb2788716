// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"time"

	"github.com/dalemusser/flattrack/internal/app/system/htmlsanitize"
	"github.com/dalemusser/flattrack/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

// nowUTC truncates to milliseconds so timestamps survive the BSON
// round trip unchanged.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// ListFilter narrows List. Zero values mean "no constraint".
type ListFilter struct {
	// SiteVisitStatus matches the stored field, with "Not Complete"
	// also matching records where the field is absent (the documented
	// default).
	SiteVisitStatus string

	// OnHold filters by the on-hold flag when non-nil.
	OnHold *bool
}

func (f ListFilter) query() bson.M {
	q := bson.M{}
	if f.SiteVisitStatus != "" {
		if f.SiteVisitStatus == models.SiteVisitNotComplete {
			q["$or"] = []bson.M{
				{"site_visit_status": f.SiteVisitStatus},
				{"site_visit_status": bson.M{"$exists": false}},
				{"site_visit_status": ""},
			}
		} else {
			q["site_visit_status"] = f.SiteVisitStatus
		}
	}
	if f.OnHold != nil {
		if *f.OnHold {
			q["on_hold"] = true
		} else {
			q["on_hold"] = bson.M{"$ne": true}
		}
	}
	return q
}

// List returns projects in creation order.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Project, error) {
	find := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, f.query(), find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetByIDs fetches several projects at once, in creation order.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	find := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := nowUTC()
	p.ID = primitive.NewObjectID()
	p.Notes = htmlsanitize.Sanitize(p.Notes)
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// CreateMany bulk-inserts imported projects. Used by the CSV import.
func (s *Store) CreateMany(ctx context.Context, projects []models.Project) (int, error) {
	if len(projects) == 0 {
		return 0, nil
	}
	now := nowUTC()
	docs := make([]any, len(projects))
	for i := range projects {
		projects[i].ID = primitive.NewObjectID()
		projects[i].Notes = htmlsanitize.Sanitize(projects[i].Notes)
		projects[i].CreatedAt = now
		projects[i].UpdatedAt = now
		docs[i] = projects[i]
	}
	res, err := s.c.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

// Replace overwrites the whole record, preserving the original
// CreatedAt. This backs the fetch-record, edit-field, PUT-whole-record
// pattern the frontend uses.
func (s *Store) Replace(ctx context.Context, id primitive.ObjectID, p models.Project) (models.Project, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Project{}, err
	}
	p.ID = id
	p.Notes = htmlsanitize.Sanitize(p.Notes)
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = nowUTC()
	if _, err := s.c.ReplaceOne(ctx, bson.M{"_id": id}, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// Delete removes a project by ID. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ScheduledVisit is one entry of the batch site-visit write.
type ScheduledVisit struct {
	ProjectID primitive.ObjectID
	Date      string // "YYYY-MM-DD"
	Period    string // "AM" | "PM"
}

// UpdateSiteVisitSchedule writes the scheduled date and period for each
// project and moves its status to "Booked". Returns how many records
// matched.
func (s *Store) UpdateSiteVisitSchedule(ctx context.Context, visits []ScheduledVisit) (int64, error) {
	now := nowUTC()
	var matched int64
	for _, v := range visits {
		period := v.Period
		if period == "" {
			period = models.PeriodAM
		}
		res, err := s.c.UpdateByID(ctx, v.ProjectID, bson.M{"$set": bson.M{
			"site_visit_scheduled_date":   v.Date,
			"site_visit_scheduled_period": period,
			"site_visit_status":           models.SiteVisitBooked,
			"updated_at":                  now,
		}})
		if err != nil {
			return matched, err
		}
		matched += res.MatchedCount
	}
	return matched, nil
}

// MarkSiteVisitEmailSent records that the booking email went out.
func (s *Store) MarkSiteVisitEmailSent(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"site_visit_status": models.SiteVisitEmailSent,
		"updated_at":        nowUTC(),
	}})
	return err
}
