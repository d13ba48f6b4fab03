package service

import (
	"context"
	"errors"
	"musclefit/gym-app/internal/domain"
	"musclefit/gym-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrGymInfoNotFound = errors.New("gym info not found")
)

// --- Service Interface ---
type GymService interface {
	GetInfo(ctx context.Context) (*domain.GymInfo, error)
	UpdateInfo(ctx context.Context, callerRole domain.Role, info *domain.GymInfo) (*domain.GymInfo, error)
	SubmitContactMessage(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error)
	GetUnreadContactMessages(ctx context.Context, callerRole domain.Role) ([]domain.ContactMessage, error)
}

// --- Service Implementation ---

// gymService implements the GymService interface.
type gymService struct {
	gymRepo repository.GymRepository
}

// NewGymService creates a new instance of gymService.
func NewGymService(gymRepo repository.GymRepository) GymService {
	return &gymService{gymRepo: gymRepo}
}

// GetInfo retrieves the public gym profile.
func (s *gymService) GetInfo(ctx context.Context) (*domain.GymInfo, error) {
	info, err := s.gymRepo.GetInfo(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGymInfoNotFound
		}
		return nil, err
	}
	return info, nil
}

// UpdateInfo replaces the gym profile. Owner only.
func (s *gymService) UpdateInfo(ctx context.Context, callerRole domain.Role, info *domain.GymInfo) (*domain.GymInfo, error) {
	if callerRole != domain.RoleOwner {
		return nil, ErrNotOwner
	}
	if info.Name == "" {
		return nil, errors.New("gym name is required")
	}

	// Keep the single-document shape: carry over the existing ID when present.
	existing, err := s.gymRepo.GetInfo(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		info.ID = existing.ID
	}

	if err := s.gymRepo.UpsertInfo(ctx, info); err != nil {
		return nil, err
	}
	return s.gymRepo.GetInfo(ctx)
}

// SubmitContactMessage stores a visitor enquiry.
func (s *gymService) SubmitContactMessage(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		return nil, errors.New("name, email, subject, and message are required")
	}

	msgID, err := s.gymRepo.CreateContactMessage(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = msgID
	return msg, nil
}

// GetUnreadContactMessages retrieves unread enquiries. Owner only.
func (s *gymService) GetUnreadContactMessages(ctx context.Context, callerRole domain.Role) ([]domain.ContactMessage, error) {
	if callerRole != domain.RoleOwner {
		return nil, ErrNotOwner
	}
	return s.gymRepo.GetUnreadContactMessages(ctx)
}

