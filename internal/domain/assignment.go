package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment grants a member visibility into a specific program.
// The (programId, memberId) pair is unique; the storage layer enforces it,
// so concurrent duplicate assigns resolve to one insert and one conflict.
type Assignment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProgramID  primitive.ObjectID `bson:"programId" json:"programId"`
	MemberID   primitive.ObjectID `bson:"memberId" json:"memberId"`
	TrainerID  primitive.ObjectID `bson:"trainerId" json:"trainerId"` // Denormalized owner of the program for query/auth
	AssignedAt time.Time          `bson:"assignedAt" json:"assignedAt"`
}
