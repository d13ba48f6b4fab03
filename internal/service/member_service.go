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
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrNotOwner          = errors.New("only the gym owner can perform this action")
	ErrTrainerNotFound   = errors.New("trainer user not found")
	ErrTargetNotTrainer  = errors.New("referenced account is not a trainer")
	ErrMembershipMissing = errors.New("member has no membership profile")
	ErrUserNotFound      = errors.New("user account not found")
)

// MemberDetails pairs a member account with its membership profile.
type MemberDetails struct {
	User       domain.User       `json:"user"`
	Membership domain.Membership `json:"membership"`
}

// --- Service Interface ---
type MemberService interface {
	// CreateMember creates a member account plus its membership profile.
	// Restricted to the owner; self-registration goes through AuthService.
	CreateMember(ctx context.Context, callerRole domain.Role, name, email, password string) (*domain.User, error)

	// ListMembers is role-scoped: owner sees all, trainer sees own, member sees self.
	ListMembers(ctx context.Context, callerID primitive.ObjectID, callerRole domain.Role) ([]MemberDetails, error)

	// SetTrainer sets or clears the trainer reference on a member's membership.
	SetTrainer(ctx context.Context, callerRole domain.Role, memberID primitive.ObjectID, trainerID *primitive.ObjectID) error

	// SetStatus updates the membership status tag.
	SetStatus(ctx context.Context, callerRole domain.Role, memberID primitive.ObjectID, status domain.MembershipStatus) error

	// ListTrainers lists active trainer accounts.
	ListTrainers(ctx context.Context) ([]domain.User, error)

	// Profile image handling via presigned S3 URLs. Each account manages
	// only its own image; the caller's identity is the target.
	RequestProfileImageUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmProfileImageUpload(ctx context.Context, userID primitive.ObjectID, objectKey string) error
	GetProfileImageURL(ctx context.Context, userID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

// memberService implements the MemberService interface.
type memberService struct {
	userRepo       repository.UserRepository
	membershipRepo repository.MembershipRepository
	fileStorage    storage.FileStorage
}

// NewMemberService creates a new instance of memberService.
func NewMemberService(userRepo repository.UserRepository, membershipRepo repository.MembershipRepository, fileStorage storage.FileStorage) MemberService {
	return &memberService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		fileStorage:    fileStorage,
	}
}

// CreateMember creates a member account on behalf of the owner.
func (s *memberService) CreateMember(ctx context.Context, callerRole domain.Role, name, email, password string) (*domain.User, error) {
	if callerRole != domain.RoleOwner {
		return nil, ErrNotOwner
	}
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleMember,
		Active:       true,
	}
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID

	membership := &domain.Membership{
		MemberID: userID,
		Status:   domain.MembershipActive,
	}
	if _, err := s.membershipRepo.Create(ctx, membership); err != nil && !errors.Is(err, repository.ErrConflict) {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// ListMembers returns member accounts visible to the caller. The scoping by
// caller identity is the access-control boundary; there is no row-level ACL
// underneath it.
func (s *memberService) ListMembers(ctx context.Context, callerID primitive.ObjectID, callerRole domain.Role) ([]MemberDetails, error) {
	switch callerRole {
	case domain.RoleOwner:
		members, err := s.userRepo.GetByRole(ctx, domain.RoleMember)
		if err != nil {
			return nil, err
		}
		return s.attachMemberships(ctx, members)

	case domain.RoleTrainer:
		memberships, err := s.membershipRepo.GetByTrainerID(ctx, callerID)
		if err != nil {
			return nil, err
		}
		memberIDs := make([]primitive.ObjectID, len(memberships))
		byMember := make(map[primitive.ObjectID]domain.Membership, len(memberships))
		for i, m := range memberships {
			memberIDs[i] = m.MemberID
			byMember[m.MemberID] = m
		}
		users, err := s.userRepo.GetByIDs(ctx, memberIDs)
		if err != nil {
			return nil, err
		}
		details := make([]MemberDetails, 0, len(users))
		for _, u := range users {
			u.PasswordHash = ""
			details = append(details, MemberDetails{User: u, Membership: byMember[u.ID]})
		}
		return details, nil

	case domain.RoleMember:
		user, err := s.userRepo.GetByID(ctx, callerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrMemberNotFound
			}
			return nil, err
		}
		return s.attachMemberships(ctx, []domain.User{*user})

	default:
		return nil, ErrInvalidRole
	}
}

func (s *memberService) attachMemberships(ctx context.Context, users []domain.User) ([]MemberDetails, error) {
	details := make([]MemberDetails, 0, len(users))
	for _, u := range users {
		u.PasswordHash = ""
		detail := MemberDetails{User: u}
		membership, err := s.membershipRepo.GetByMemberID(ctx, u.ID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			// Account without a profile still shows up in the directory
		} else {
			detail.Membership = *membership
		}
		details = append(details, detail)
	}
	return details, nil
}

// SetTrainer sets or clears the membership's trainer reference.
// A non-nil trainerID must reference an account with role=trainer.
func (s *memberService) SetTrainer(ctx context.Context, callerRole domain.Role, memberID primitive.ObjectID, trainerID *primitive.ObjectID) error {
	if callerRole != domain.RoleOwner {
		return ErrNotOwner
	}
	if memberID == primitive.NilObjectID {
		return errors.New("member ID is required")
	}

	if trainerID != nil {
		trainer, err := s.userRepo.GetByID(ctx, *trainerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTrainerNotFound
			}
			return err
		}
		if !trainer.IsTrainer() {
			return ErrTargetNotTrainer
		}
	}

	err := s.membershipRepo.SetTrainer(ctx, memberID, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMembershipMissing
		}
		return err
	}
	return nil
}

// SetStatus updates the membership status tag.
func (s *memberService) SetStatus(ctx context.Context, callerRole domain.Role, memberID primitive.ObjectID, status domain.MembershipStatus) error {
	if callerRole != domain.RoleOwner {
		return ErrNotOwner
	}
	switch status {
	case domain.MembershipActive, domain.MembershipInactive, domain.MembershipPaused:
	default:
		return errors.New("unknown membership status")
	}

	err := s.membershipRepo.SetStatus(ctx, memberID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMembershipMissing
		}
		return err
	}
	return nil
}

// ListTrainers lists active trainer accounts for the public directory.
func (s *memberService) ListTrainers(ctx context.Context) ([]domain.User, error) {
	trainers, err := s.userRepo.GetByRole(ctx, domain.RoleTrainer)
	if err != nil {
		return nil, err
	}
	active := make([]domain.User, 0, len(trainers))
	for _, t := range trainers {
		if !t.Active {
			continue
		}
		t.PasswordHash = ""
		active = append(active, t)
	}
	return active, nil
}

// === Profile image handling ===

// RequestProfileImageUploadURL generates a presigned URL for uploading the
// caller's profile image.
func (s *memberService) RequestProfileImageUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, errors.New("invalid or missing image content type")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Unique object key per upload so stale CDN caches never show old images
	uniqueID := uuid.NewString()
	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("profiles", userID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrImageUploadURLFailed
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmProfileImageUpload records the uploaded object key on the account.
// Called after the client has PUT the file to S3 via the presigned URL.
func (s *memberService) ConfirmProfileImageUpload(ctx context.Context, userID primitive.ObjectID, objectKey string) error {
	if objectKey == "" {
		return errors.New("object key is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// Drop the previous image from storage, if any. Best effort.
	if user.ImageKey != "" && user.ImageKey != objectKey {
		_ = s.fileStorage.DeleteObject(ctx, user.ImageKey)
	}

	return s.userRepo.SetImageKey(ctx, userID, objectKey)
}

// GetProfileImageURL returns a temporary viewing URL for the account's
// profile image, or an empty string when no image has been uploaded.
func (s *memberService) GetProfileImageURL(ctx context.Context, userID primitive.ObjectID) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if user.ImageKey == "" {
		return "", nil
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, user.ImageKey, storage.DefaultPresignedURLExpiry)
}
