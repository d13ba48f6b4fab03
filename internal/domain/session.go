package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionType for how a training session is held.
type SessionType string

const (
	SessionInPerson SessionType = "in-person"
	SessionVirtual  SessionType = "virtual"
)

// AttendanceStatus tracks the outcome of a scheduled session.
type AttendanceStatus string

const (
	AttendanceScheduled AttendanceStatus = "scheduled"
	AttendancePresent   AttendanceStatus = "present"
	AttendanceAbsent    AttendanceStatus = "absent"
	AttendanceCancelled AttendanceStatus = "cancelled"
)

// Session is a single training appointment between a trainer and a member.
type Session struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID       primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	MemberID        primitive.ObjectID `bson:"memberId" json:"memberId"`
	ScheduledAt     time.Time          `bson:"scheduledAt" json:"scheduledAt"`
	Type            SessionType        `bson:"type" json:"type"`
	Attendance      AttendanceStatus   `bson:"attendance" json:"attendance"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
