package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the coarse authorization tier assigned to every user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// User is a stored account record. PasswordHash holds the bcrypt digest,
// never the raw password, and is never serialized into responses.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// PublicProfile is the view of a user safe to show other members.
type PublicProfile struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Public returns the member-visible view of u.
func (u *User) Public() PublicProfile {
	return PublicProfile{Name: u.Name, Role: u.Role}
}
