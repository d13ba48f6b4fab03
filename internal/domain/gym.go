package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkingHours describes opening times for one day of the week.
// Embedded in GymInfo rather than stored separately.
type WorkingHours struct {
	Day     string `bson:"day" json:"day"` // "Monday" .. "Sunday"
	Opening string `bson:"opening,omitempty" json:"opening,omitempty"`
	Closing string `bson:"closing,omitempty" json:"closing,omitempty"`
	Closed  bool   `bson:"closed" json:"closed"`
}

// GymInfo is the gym's public profile. A single document is expected.
type GymInfo struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Phone           string             `bson:"phone" json:"phone"`
	Whatsapp        string             `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	Address         string             `bson:"address" json:"address"`
	City            string             `bson:"city" json:"city"`
	State           string             `bson:"state" json:"state"`
	PostalCode      string             `bson:"postalCode" json:"postalCode"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	EstablishedYear int                `bson:"establishedYear,omitempty" json:"establishedYear,omitempty"`
	WorkingHours    []WorkingHours     `bson:"workingHours,omitempty" json:"workingHours,omitempty"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ContactMessage is a visitor enquiry submitted through the public site.
type ContactMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
