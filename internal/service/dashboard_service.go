package service

import (
	"context"
	"errors"
	"musclefit/gym-app/internal/domain"
	"musclefit/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	// ErrInvalidRole means the stored account role is outside the known set.
	// This is a data integrity fault, not a client mistake, and is not retryable.
	ErrInvalidRole = errors.New("account role is not a known role")
)

// --- View DTOs ---
// One fixed shape per role. The projection from stored records to these
// shapes is kept in pure build functions below so each mapping is testable
// without a database.

// DashboardUser is the per-account item shared by the role views.
type DashboardUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	// TrainerName is set for members with an assigned trainer.
	TrainerName *string `json:"trainerName,omitempty"`
	// MemberCount is set for trainers: number of active memberships assigned.
	MemberCount *int64 `json:"memberCount,omitempty"`
}

// OwnerDashboard is the gym-wide view: every trainer and every member.
type OwnerDashboard struct {
	Role          domain.Role     `json:"role"`
	TotalTrainers int64           `json:"totalTrainers"`
	TotalMembers  int64           `json:"totalMembers"`
	Trainers      []DashboardUser `json:"trainers"`
	Members       []DashboardUser `json:"members"`
}

// TrainerDashboard is scoped to the caller's own members and programs.
type TrainerDashboard struct {
	Role          domain.Role      `json:"role"`
	TotalMembers  int64            `json:"totalMembers"`
	TotalPrograms int64            `json:"totalPrograms"`
	Members       []DashboardUser  `json:"members"`
	Programs      []domain.Program `json:"programs"`
}

// MemberStats is a placeholder block; nothing computes these values yet.
type MemberStats struct {
	WorkoutsDone   int `json:"workoutsDone"`
	AttendanceRate int `json:"attendanceRate"`
	Progress       int `json:"progress"`
}

// MemberDashboard is scoped to the caller's trainer and assigned programs.
type MemberDashboard struct {
	Role     domain.Role      `json:"role"`
	Trainer  *DashboardUser   `json:"trainer"`
	Programs []domain.Program `json:"programs"`
	Stats    MemberStats      `json:"stats"`
}

// --- Service Interface ---

// DashboardService produces a role-appropriate read-only snapshot for one
// authenticated account per call. The role-scoped filtering here IS the
// access-control boundary: every query is scoped by the caller's identity.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID primitive.ObjectID, role domain.Role) (interface{}, error)
}

// --- Service Implementation ---

type dashboardService struct {
	userRepo       repository.UserRepository
	membershipRepo repository.MembershipRepository
	programRepo    repository.ProgramRepository
	assignmentRepo repository.AssignmentRepository
}

// NewDashboardService creates a new instance of dashboardService.
func NewDashboardService(
	userRepo repository.UserRepository,
	membershipRepo repository.MembershipRepository,
	programRepo repository.ProgramRepository,
	assignmentRepo repository.AssignmentRepository,
) DashboardService {
	return &dashboardService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		programRepo:    programRepo,
		assignmentRepo: assignmentRepo,
	}
}

// GetDashboard dispatches on the closed role set. The default branch is the
// only place an unknown role can surface, and it surfaces loudly.
func (s *dashboardService) GetDashboard(ctx context.Context, userID primitive.ObjectID, role domain.Role) (interface{}, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}

	switch role {
	case domain.RoleOwner:
		return s.ownerDashboard(ctx)
	case domain.RoleTrainer:
		return s.trainerDashboard(ctx, userID)
	case domain.RoleMember:
		return s.memberDashboard(ctx, userID)
	default:
		return nil, ErrInvalidRole
	}
}

// === Owner ===

// ownerDashboard reads all trainers and members; the owner sees everything.
func (s *dashboardService) ownerDashboard(ctx context.Context) (*OwnerDashboard, error) {
	trainers, err := s.userRepo.GetByRole(ctx, domain.RoleTrainer)
	if err != nil {
		return nil, err
	}
	members, err := s.userRepo.GetByRole(ctx, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	// Active member count per trainer
	memberCounts := make(map[primitive.ObjectID]int64, len(trainers))
	for _, t := range trainers {
		count, err := s.membershipRepo.CountActiveByTrainerID(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		memberCounts[t.ID] = count
	}

	// Assigned trainer name per member
	trainerNames := make(map[primitive.ObjectID]string, len(trainers))
	for _, t := range trainers {
		trainerNames[t.ID] = t.Name
	}
	memberTrainers := make(map[primitive.ObjectID]primitive.ObjectID, len(members))
	for _, m := range members {
		membership, err := s.membershipRepo.GetByMemberID(ctx, m.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue // Account without a membership profile; show without trainer
			}
			return nil, err
		}
		if membership.TrainerID != nil {
			memberTrainers[m.ID] = *membership.TrainerID
		}
	}

	view := buildOwnerView(trainers, members, memberCounts, memberTrainers, trainerNames)
	return &view, nil
}

// buildOwnerView is the pure projection from stored records to the owner shape.
func buildOwnerView(
	trainers, members []domain.User,
	memberCounts map[primitive.ObjectID]int64,
	memberTrainers map[primitive.ObjectID]primitive.ObjectID,
	trainerNames map[primitive.ObjectID]string,
) OwnerDashboard {
	trainerItems := make([]DashboardUser, len(trainers))
	for i, t := range trainers {
		count := memberCounts[t.ID]
		trainerItems[i] = DashboardUser{
			ID:          t.ID.Hex(),
			Email:       t.Email,
			Name:        t.Name,
			MemberCount: &count,
		}
	}

	memberItems := make([]DashboardUser, len(members))
	for i, m := range members {
		item := DashboardUser{
			ID:    m.ID.Hex(),
			Email: m.Email,
			Name:  m.Name,
		}
		if trainerID, ok := memberTrainers[m.ID]; ok {
			if name, ok := trainerNames[trainerID]; ok {
				item.TrainerName = &name
			}
		}
		memberItems[i] = item
	}

	return OwnerDashboard{
		Role:          domain.RoleOwner,
		TotalTrainers: int64(len(trainers)),
		TotalMembers:  int64(len(members)),
		Trainers:      trainerItems,
		Members:       memberItems,
	}
}

// === Trainer ===

// trainerDashboard reads only rows whose trainer reference equals the caller.
func (s *dashboardService) trainerDashboard(ctx context.Context, trainerID primitive.ObjectID) (*TrainerDashboard, error) {
	trainer, err := s.userRepo.GetByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	memberships, err := s.membershipRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]primitive.ObjectID, len(memberships))
	for i, m := range memberships {
		memberIDs[i] = m.MemberID
	}
	members, err := s.userRepo.GetByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	programs, err := s.programRepo.GetActiveByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	view := buildTrainerView(trainer.Name, members, programs)
	return &view, nil
}

// buildTrainerView is the pure projection to the trainer shape.
func buildTrainerView(trainerName string, members []domain.User, programs []domain.Program) TrainerDashboard {
	memberItems := make([]DashboardUser, len(members))
	for i, m := range members {
		name := trainerName
		memberItems[i] = DashboardUser{
			ID:          m.ID.Hex(),
			Email:       m.Email,
			Name:        m.Name,
			TrainerName: &name,
		}
	}

	if programs == nil {
		programs = []domain.Program{}
	}

	return TrainerDashboard{
		Role:          domain.RoleTrainer,
		TotalMembers:  int64(len(members)),
		TotalPrograms: int64(len(programs)),
		Members:       memberItems,
		Programs:      programs,
	}
}

// === Member ===

// memberDashboard reads only assignment rows whose member reference equals
// the caller, plus the caller's own trainer assignment.
func (s *dashboardService) memberDashboard(ctx context.Context, memberID primitive.ObjectID) (*MemberDashboard, error) {
	var trainer *domain.User
	membership, err := s.membershipRepo.GetByMemberID(ctx, memberID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if membership != nil && membership.TrainerID != nil {
		trainer, err = s.userRepo.GetByID(ctx, *membership.TrainerID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	assignments, err := s.assignmentRepo.GetByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	programs := make([]domain.Program, 0, len(assignments))
	for _, a := range assignments {
		program, err := s.programRepo.GetByID(ctx, a.ProgramID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue // Assignment pointing at a removed program; skip it
			}
			return nil, err
		}
		if !program.Active {
			continue // Deactivated programs drop out of the member view
		}
		programs = append(programs, *program)
	}

	view := buildMemberView(trainer, programs)
	return &view, nil
}

// buildMemberView is the pure projection to the member shape.
// The stats block is intentionally zero-filled; nothing computes it yet.
func buildMemberView(trainer *domain.User, programs []domain.Program) MemberDashboard {
	var trainerItem *DashboardUser
	if trainer != nil {
		trainerItem = &DashboardUser{
			ID:    trainer.ID.Hex(),
			Email: trainer.Email,
			Name:  trainer.Name,
		}
	}

	if programs == nil {
		programs = []domain.Program{}
	}

	return MemberDashboard{
		Role:     domain.RoleMember,
		Trainer:  trainerItem,
		Programs: programs,
		Stats:    MemberStats{},
	}
}
