package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog item. AvailableQty never goes below zero;
// the store enforces that on every adjustment.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	MinOrderQty  int                `bson:"minOrderQty,omitempty" json:"minOrderQty,omitempty"`
	AvailableQty int                `bson:"availableQty" json:"availableQty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
