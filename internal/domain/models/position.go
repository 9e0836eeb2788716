// internal/domain/models/position.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Position is a job title (e.g. "Sales Consultant") referenced by users
// and substituted into email templates via {SalespersonPosition}.
type Position struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
