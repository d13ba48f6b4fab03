package service

import (
	"context"
	"errors"
	"fmt"
	"musclefit/gym-app/internal/domain"
	"musclefit/gym-app/internal/repository"
	"musclefit/gym-app/internal/storage"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound      = errors.New("program not found")
	ErrProgramAccessDenied  = errors.New("access denied: program is owned by another trainer")
	ErrProgramValidation    = errors.New("program validation failed")
	ErrMemberNotFound       = errors.New("member user not found")
	ErrTargetNotMember      = errors.New("target account is not a member")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrImageUploadURLFailed = errors.New("failed to generate image upload URL")
)

// UploadURLResponse carries a presigned URL and the object key the client
// must report back when confirming the upload.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// --- Service Interface ---
type ProgramService interface {
	// Catalog
	CreateProgram(ctx context.Context, trainerID primitive.ObjectID, program *domain.Program) (*domain.Program, error)
	GetProgramByID(ctx context.Context, programID primitive.ObjectID) (*domain.Program, error)
	GetActivePrograms(ctx context.Context, programType domain.ProgramType, limit int64) ([]domain.Program, error)
	GetProgramsByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Program, error)
	UpdateProgram(ctx context.Context, trainerID primitive.ObjectID, program *domain.Program) (*domain.Program, error)
	DeactivateProgram(ctx context.Context, trainerID, programID primitive.ObjectID) error

	// Assignment operations. Both enforce program ownership.
	AssignProgram(ctx context.Context, trainerID, programID, memberID primitive.ObjectID) (assignment *domain.Assignment, created bool, err error)
	UnassignProgram(ctx context.Context, trainerID, programID, memberID primitive.ObjectID) error

	// Image handling via presigned S3 URLs
	RequestImageUploadURL(ctx context.Context, trainerID, programID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmImageUpload(ctx context.Context, trainerID, programID primitive.ObjectID, objectKey string) error
	GetImageDownloadURL(ctx context.Context, programID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

// programService implements the ProgramService interface.
type programService struct {
	programRepo    repository.ProgramRepository
	assignmentRepo repository.AssignmentRepository
	userRepo       repository.UserRepository
	fileStorage    storage.FileStorage
}

// NewProgramService creates a new instance of programService.
func NewProgramService(
	programRepo repository.ProgramRepository,
	assignmentRepo repository.AssignmentRepository,
	userRepo repository.UserRepository,
	fileStorage storage.FileStorage,
) ProgramService {
	return &programService{
		programRepo:    programRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		fileStorage:    fileStorage,
	}
}

// === Catalog ===

// CreateProgram handles the creation of a new program by a trainer.
func (s *programService) CreateProgram(ctx context.Context, trainerID primitive.ObjectID, program *domain.Program) (*domain.Program, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required to create a program")
	}
	if err := validateProgram(program); err != nil {
		return nil, err
	}

	program.TrainerID = trainerID
	program.Active = true

	programID, err := s.programRepo.Create(ctx, program)
	if err != nil {
		return nil, err
	}
	// Fetch again to return DB-populated timestamps
	return s.programRepo.GetByID(ctx, programID)
}

func validateProgram(program *domain.Program) error {
	if program.Name == "" {
		return fmt.Errorf("%w: name is required", ErrProgramValidation)
	}
	if program.DurationWeeks <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrProgramValidation)
	}
	if program.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrProgramValidation)
	}
	return nil
}

// GetProgramByID retrieves a single program.
func (s *programService) GetProgramByID(ctx context.Context, programID primitive.ObjectID) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return program, nil
}

// GetActivePrograms retrieves the public catalog, optionally filtered by type.
func (s *programService) GetActivePrograms(ctx context.Context, programType domain.ProgramType, limit int64) ([]domain.Program, error) {
	return s.programRepo.GetActive(ctx, programType, limit)
}

// GetProgramsByTrainer retrieves a trainer's own active programs.
func (s *programService) GetProgramsByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Program, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID cannot be nil")
	}
	return s.programRepo.GetActiveByTrainerID(ctx, trainerID)
}

// UpdateProgram handles updating an existing program, ensuring ownership.
func (s *programService) UpdateProgram(ctx context.Context, trainerID primitive.ObjectID, program *domain.Program) (*domain.Program, error) {
	if trainerID == primitive.NilObjectID || program.ID == primitive.NilObjectID {
		return nil, errors.New("trainer ID and program ID are required")
	}
	if err := validateProgram(program); err != nil {
		return nil, err
	}

	existing, err := s.programRepo.GetByID(ctx, program.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if existing.TrainerID != trainerID {
		return nil, ErrProgramAccessDenied
	}

	existing.Name = program.Name
	existing.Type = program.Type
	existing.Description = program.Description
	existing.Difficulty = program.Difficulty
	existing.DurationWeeks = program.DurationWeeks
	existing.Price = program.Price
	existing.Active = program.Active

	err = s.programRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeactivateProgram soft-disables a program. Programs are never hard-deleted.
func (s *programService) DeactivateProgram(ctx context.Context, trainerID, programID primitive.ObjectID) error {
	if trainerID == primitive.NilObjectID || programID == primitive.NilObjectID {
		return errors.New("trainer ID and program ID are required")
	}

	// The repository filter includes the trainerID, so ownership is enforced
	// at the DB level; a mismatch surfaces as not found.
	err := s.programRepo.SetActive(ctx, programID, trainerID, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgramNotFound
		}
		return err
	}
	return nil
}

// === Assignment operations ===

// AssignProgram grants a member visibility into a program owned by the caller.
// Idempotent: re-assigning returns the existing row with created=false.
func (s *programService) AssignProgram(ctx context.Context, trainerID, programID, memberID primitive.ObjectID) (*domain.Assignment, bool, error) {
	// 1. Validate inputs
	if trainerID == primitive.NilObjectID || programID == primitive.NilObjectID || memberID == primitive.NilObjectID {
		return nil, false, errors.New("trainer ID, program ID, and member ID are required")
	}

	// 2. Verify program existence and ownership. The ownership check runs
	// before any write, so a rejected caller leaves no side effect.
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrProgramNotFound
		}
		return nil, false, err
	}
	if program.TrainerID != trainerID {
		return nil, false, ErrProgramAccessDenied
	}

	// 3. Verify the target account is a member
	member, err := s.userRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrMemberNotFound
		}
		return nil, false, err
	}
	if !member.IsMember() {
		return nil, false, ErrTargetNotMember
	}

	// 4. Insert. The unique (programId, memberId) index resolves a concurrent
	// duplicate assign: one insert wins, the other observes the conflict and
	// returns the existing row.
	assignment := &domain.Assignment{
		ProgramID: programID,
		MemberID:  memberID,
		TrainerID: trainerID, // Denormalized for query/auth
	}
	assignmentID, err := s.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			existing, getErr := s.assignmentRepo.GetByProgramAndMember(ctx, programID, memberID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	assignment.ID = assignmentID
	return assignment, true, nil
}

// UnassignProgram removes the assignment row for a (program, member) pair.
func (s *programService) UnassignProgram(ctx context.Context, trainerID, programID, memberID primitive.ObjectID) error {
	if trainerID == primitive.NilObjectID || programID == primitive.NilObjectID || memberID == primitive.NilObjectID {
		return errors.New("trainer ID, program ID, and member ID are required")
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgramNotFound
		}
		return err
	}
	if program.TrainerID != trainerID {
		return ErrProgramAccessDenied
	}

	err = s.assignmentRepo.Delete(ctx, programID, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	return nil
}

// === Image handling ===

// RequestImageUploadURL generates a presigned URL for uploading a program image.
func (s *programService) RequestImageUploadURL(ctx context.Context, trainerID, programID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, errors.New("invalid or missing image content type")
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.TrainerID != trainerID {
		return nil, ErrProgramAccessDenied
	}

	// Unique object key per upload so stale CDN caches never show old images
	uniqueID := uuid.NewString()
	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("programs", programID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrImageUploadURLFailed
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmImageUpload records the uploaded object key on the program.
// Called after the client has PUT the file to S3 via the presigned URL.
func (s *programService) ConfirmImageUpload(ctx context.Context, trainerID, programID primitive.ObjectID, objectKey string) error {
	if objectKey == "" {
		return errors.New("object key is required")
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgramNotFound
		}
		return err
	}
	if program.TrainerID != trainerID {
		return ErrProgramAccessDenied
	}

	// Drop the previous image from storage, if any. Best effort.
	if program.ImageKey != "" && program.ImageKey != objectKey {
		_ = s.fileStorage.DeleteObject(ctx, program.ImageKey)
	}

	return s.programRepo.SetImageKey(ctx, programID, objectKey)
}

// GetImageDownloadURL returns a temporary viewing URL for the program image,
// or an empty string when no image has been uploaded.
func (s *programService) GetImageDownloadURL(ctx context.Context, programID primitive.ObjectID) (string, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrProgramNotFound
		}
		return "", err
	}
	if program.ImageKey == "" {
		return "", nil
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, program.ImageKey, storage.DefaultPresignedURLExpiry)
}
