package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is customer feedback. Append-only; no ownership enforcement.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Rating    int                `bson:"rating,omitempty" json:"rating,omitempty"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
