package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgramType categorizes a program in the catalog.
type ProgramType string

const (
	ProgramCardio      ProgramType = "cardio"
	ProgramMuscle      ProgramType = "muscle"
	ProgramYoga        ProgramType = "yoga"
	ProgramStrength    ProgramType = "strength"
	ProgramFlexibility ProgramType = "flexibility"
)

// ProgramDifficulty levels for a program.
type ProgramDifficulty string

const (
	DifficultyBeginner     ProgramDifficulty = "beginner"
	DifficultyIntermediate ProgramDifficulty = "intermediate"
	DifficultyAdvanced     ProgramDifficulty = "advanced"
)

// Program is a trainer-authored fitness plan offered to members.
// Programs are soft-disabled via Active, never hard-deleted.
type Program struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID     primitive.ObjectID `bson:"trainerId" json:"trainerId"` // Trainer who created/owns this program
	Name          string             `bson:"name" json:"name"`
	Type          ProgramType        `bson:"type" json:"type"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Difficulty    ProgramDifficulty  `bson:"difficulty" json:"difficulty"`
	DurationWeeks int                `bson:"durationWeeks" json:"durationWeeks"` // Must be positive
	Price         float64            `bson:"price" json:"price"`                 // Must be non-negative
	ImageKey      string             `bson:"imageKey,omitempty" json:"-"`        // Object key of the program image in S3
	Active        bool               `bson:"active" json:"active"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
