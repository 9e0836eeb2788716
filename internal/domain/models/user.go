// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents admins, salespeople, and office staff.
//
// PasswordHash is a bcrypt hash and is never serialized to JSON.
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName     string              `bson:"full_name" json:"full_name"`
	Email        string              `bson:"email" json:"email"`
	EmailCI      string              `bson:"email_ci" json:"-"` // lowercase, for unique index
	Phone        string              `bson:"phone,omitempty" json:"phone,omitempty"`
	PositionID   *primitive.ObjectID `bson:"position_id,omitempty" json:"position_id,omitempty"`
	Role         string              `bson:"role" json:"role"` // admin | salesperson | office
	Status       string              `bson:"status,omitempty" json:"status,omitempty"`
	PasswordHash string              `bson:"password_hash,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
