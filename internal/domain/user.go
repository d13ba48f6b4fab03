package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleOwner   Role = "owner"
	RoleTrainer Role = "trainer"
	RoleMember  Role = "member"
)

// Valid reports whether the role belongs to the closed set of known roles.
// A stored role outside this set is a data integrity fault, not user input.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleTrainer, RoleMember:
		return true
	}
	return false
}

// User represents an account in the system (Owner, Trainer or Member).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	ImageKey     string             `bson:"imageKey,omitempty" json:"-"` // Object key of the profile image in S3
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsMember() bool {
	return u.Role == RoleMember
}
