package repository

import (
	"musclefit/gym-app/internal/domain" // Import our defined domain models
	"context"                           // Standard for request-scoped deadlines, cancellation signals, etc.

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("already exists")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with account data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	SetImageKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
}

// MembershipRepository defines the interface for the membership directory.
type MembershipRepository interface {
	Create(ctx context.Context, membership *domain.Membership) (primitive.ObjectID, error)
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.Membership, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Membership, error)
	CountActiveByTrainerID(ctx context.Context, trainerID primitive.ObjectID) (int64, error)
	SetTrainer(ctx context.Context, memberID primitive.ObjectID, trainerID *primitive.ObjectID) error
	SetStatus(ctx context.Context, memberID primitive.ObjectID, status domain.MembershipStatus) error
}

// ProgramRepository defines the interface for the program catalog.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	GetActive(ctx context.Context, programType domain.ProgramType, limit int64) ([]domain.Program, error)
	GetActiveByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Program, error)
	Update(ctx context.Context, program *domain.Program) error
	SetActive(ctx context.Context, id, trainerID primitive.ObjectID, active bool) error
	SetImageKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
}

// AssignmentRepository defines the interface for program-to-member assignments.
// Create must surface ErrConflict when the (programId, memberId) pair already
// exists; the unique index makes concurrent duplicates resolve that way.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) (primitive.ObjectID, error)
	GetByProgramAndMember(ctx context.Context, programID, memberID primitive.ObjectID) (*domain.Assignment, error)
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Assignment, error)
	Delete(ctx context.Context, programID, memberID primitive.ObjectID) error
}

// SessionRepository defines the interface for scheduled training sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Session, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error)
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Session, error)
	SetAttendance(ctx context.Context, id primitive.ObjectID, status domain.AttendanceStatus) error
}

// GymRepository defines the interface for the gym profile and contact messages.
type GymRepository interface {
	GetInfo(ctx context.Context) (*domain.GymInfo, error)
	UpsertInfo(ctx context.Context, info *domain.GymInfo) error
	CreateContactMessage(ctx context.Context, msg *domain.ContactMessage) (primitive.ObjectID, error)
	GetUnreadContactMessages(ctx context.Context) ([]domain.ContactMessage, error)
}
