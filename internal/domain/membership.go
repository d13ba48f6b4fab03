package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipStatus type for the member lifecycle
type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "active"
	MembershipInactive MembershipStatus = "inactive"
	MembershipPaused   MembershipStatus = "paused"
)

// Membership is the member-specific profile extending a User with role=member.
// Created alongside the member account and kept one-to-one with it.
type Membership struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID primitive.ObjectID `bson:"memberId" json:"memberId"` // 1-1 with the User record

	// TrainerID references the User (role=trainer) this member is assigned to.
	// Pointer because a member may have no trainer yet.
	TrainerID *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`

	Status   MembershipStatus `bson:"status" json:"status"`
	JoinedAt time.Time        `bson:"joinedAt" json:"joinedAt"`
}
