package service

import (
	"context"
	"errors"
	"musclefit/gym-app/internal/domain"
	"musclefit/gym-app/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionAccessDenied = errors.New("access denied to modify this session")
	ErrMemberNotOfTrainer  = errors.New("member is not assigned to this trainer")
	ErrSessionInPast       = errors.New("session cannot be scheduled in the past")
	ErrInvalidAttendance   = errors.New("unknown attendance status")
	ErrInvalidSessionType  = errors.New("unknown session type")
)

// --- Service Interface ---
type SessionService interface {
	ScheduleSession(ctx context.Context, trainerID, memberID primitive.ObjectID, scheduledAt time.Time, sessionType domain.SessionType, durationMinutes int, notes string) (*domain.Session, error)
	GetSessionsForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error)
	GetSessionsForMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Session, error)
	SetAttendance(ctx context.Context, trainerID, sessionID primitive.ObjectID, status domain.AttendanceStatus) (*domain.Session, error)
}

// --- Service Implementation ---

// sessionService implements the SessionService interface.
type sessionService struct {
	sessionRepo    repository.SessionRepository
	membershipRepo repository.MembershipRepository
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(sessionRepo repository.SessionRepository, membershipRepo repository.MembershipRepository) SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		membershipRepo: membershipRepo,
	}
}

// ScheduleSession creates a training appointment between a trainer and one
// of their own members.
func (s *sessionService) ScheduleSession(ctx context.Context, trainerID, memberID primitive.ObjectID, scheduledAt time.Time, sessionType domain.SessionType, durationMinutes int, notes string) (*domain.Session, error) {
	if trainerID == primitive.NilObjectID || memberID == primitive.NilObjectID {
		return nil, errors.New("trainer ID and member ID are required")
	}
	if scheduledAt.Before(time.Now().UTC()) {
		return nil, ErrSessionInPast
	}
	switch sessionType {
	case domain.SessionInPerson, domain.SessionVirtual:
	default:
		return nil, ErrInvalidSessionType
	}
	if durationMinutes <= 0 {
		durationMinutes = 60
	}

	// A trainer only schedules with members assigned to them.
	membership, err := s.membershipRepo.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if membership.TrainerID == nil || *membership.TrainerID != trainerID {
		return nil, ErrMemberNotOfTrainer
	}

	session := &domain.Session{
		TrainerID:       trainerID,
		MemberID:        memberID,
		ScheduledAt:     scheduledAt.UTC(),
		Type:            sessionType,
		Attendance:      domain.AttendanceScheduled,
		DurationMinutes: durationMinutes,
		Notes:           notes,
	}

	sessionID, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID
	return session, nil
}

// GetSessionsForTrainer retrieves sessions scheduled by the trainer.
func (s *sessionService) GetSessionsForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required")
	}
	return s.sessionRepo.GetByTrainerID(ctx, trainerID)
}

// GetSessionsForMember retrieves sessions the member participates in.
func (s *sessionService) GetSessionsForMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Session, error) {
	if memberID == primitive.NilObjectID {
		return nil, errors.New("member ID is required")
	}
	return s.sessionRepo.GetByMemberID(ctx, memberID)
}

// SetAttendance records the outcome of a session, ensuring the caller
// scheduled it.
func (s *sessionService) SetAttendance(ctx context.Context, trainerID, sessionID primitive.ObjectID, status domain.AttendanceStatus) (*domain.Session, error) {
	switch status {
	case domain.AttendanceScheduled, domain.AttendancePresent, domain.AttendanceAbsent, domain.AttendanceCancelled:
	default:
		return nil, ErrInvalidAttendance
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.TrainerID != trainerID {
		return nil, ErrSessionAccessDenied
	}

	err = s.sessionRepo.SetAttendance(ctx, sessionID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	session.Attendance = status
	return session, nil
}
