package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role governs which operations an identity may perform.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered identity, keyed by email.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Role      Role               `bson:"role" json:"role"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Company   string             `bson:"company,omitempty" json:"company,omitempty"`
	Education string             `bson:"education,omitempty" json:"education,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
}

// Profile holds the free-form fields a user may patch on their own identity.
type Profile struct {
	Name      string `bson:"name,omitempty" json:"name,omitempty"`
	Address   string `bson:"address,omitempty" json:"address,omitempty"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Company   string `bson:"company,omitempty" json:"company,omitempty"`
	Education string `bson:"education,omitempty" json:"education,omitempty"`
	Image     string `bson:"image,omitempty" json:"image,omitempty"`
}

// IsAdmin reports whether the identity carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
