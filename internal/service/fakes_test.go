package service

import (
	"context"
	"musclefit/gym-app/internal/domain"
	"musclefit/gym-app/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mirror the Mongo implementations' error
// contract (repository.ErrNotFound, repository.ErrConflict) so services can
// be exercised without a database.

// --- UserRepository fake ---

type fakeUserRepo struct {
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (f *fakeUserRepo) add(u domain.User) domain.User {
	if u.ID == primitive.NilObjectID {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	stored := f.add(*user)
	return stored.ID, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) SetImageKey(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ImageKey = objectKey
	f.users[id] = u
	return nil
}

// --- MembershipRepository fake ---

type fakeMembershipRepo struct {
	memberships map[primitive.ObjectID]domain.Membership // keyed by MemberID
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{memberships: make(map[primitive.ObjectID]domain.Membership)}
}

func (f *fakeMembershipRepo) Create(ctx context.Context, m *domain.Membership) (primitive.ObjectID, error) {
	if _, exists := f.memberships[m.MemberID]; exists {
		return primitive.NilObjectID, repository.ErrConflict
	}
	if m.ID == primitive.NilObjectID {
		m.ID = primitive.NewObjectID()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	f.memberships[m.MemberID] = *m
	return m.ID, nil
}

func (f *fakeMembershipRepo) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.Membership, error) {
	m, ok := f.memberships[memberID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (f *fakeMembershipRepo) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Membership, error) {
	var out []domain.Membership
	for _, m := range f.memberships {
		if m.TrainerID != nil && *m.TrainerID == trainerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembershipRepo) CountActiveByTrainerID(ctx context.Context, trainerID primitive.ObjectID) (int64, error) {
	var count int64
	for _, m := range f.memberships {
		if m.TrainerID != nil && *m.TrainerID == trainerID && m.Status == domain.MembershipActive {
			count++
		}
	}
	return count, nil
}

func (f *fakeMembershipRepo) SetTrainer(ctx context.Context, memberID primitive.ObjectID, trainerID *primitive.ObjectID) error {
	m, ok := f.memberships[memberID]
	if !ok {
		return repository.ErrNotFound
	}
	m.TrainerID = trainerID
	f.memberships[memberID] = m
	return nil
}

func (f *fakeMembershipRepo) SetStatus(ctx context.Context, memberID primitive.ObjectID, status domain.MembershipStatus) error {
	m, ok := f.memberships[memberID]
	if !ok {
		return repository.ErrNotFound
	}
	m.Status = status
	f.memberships[memberID] = m
	return nil
}

// --- ProgramRepository fake ---

type fakeProgramRepo struct {
	programs map[primitive.ObjectID]domain.Program
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: make(map[primitive.ObjectID]domain.Program)}
}

func (f *fakeProgramRepo) Create(ctx context.Context, p *domain.Program) (primitive.ObjectID, error) {
	if p.ID == primitive.NilObjectID {
		p.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	f.programs[p.ID] = *p
	return p.ID, nil
}

func (f *fakeProgramRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error) {
	p, ok := f.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProgramRepo) GetActive(ctx context.Context, programType domain.ProgramType, limit int64) ([]domain.Program, error) {
	var out []domain.Program
	for _, p := range f.programs {
		if !p.Active {
			continue
		}
		if programType != "" && p.Type != programType {
			continue
		}
		out = append(out, p)
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeProgramRepo) GetActiveByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Program, error) {
	var out []domain.Program
	for _, p := range f.programs {
		if p.Active && p.TrainerID == trainerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProgramRepo) Update(ctx context.Context, p *domain.Program) error {
	if _, ok := f.programs[p.ID]; !ok {
		return repository.ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	f.programs[p.ID] = *p
	return nil
}

func (f *fakeProgramRepo) SetActive(ctx context.Context, id, trainerID primitive.ObjectID, active bool) error {
	p, ok := f.programs[id]
	if !ok || p.TrainerID != trainerID {
		return repository.ErrNotFound
	}
	p.Active = active
	f.programs[id] = p
	return nil
}

func (f *fakeProgramRepo) SetImageKey(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	p, ok := f.programs[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.ImageKey = objectKey
	f.programs[id] = p
	return nil
}

// --- AssignmentRepository fake ---

type pairKey struct {
	programID primitive.ObjectID
	memberID  primitive.ObjectID
}

type fakeAssignmentRepo struct {
	assignments map[pairKey]domain.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[pairKey]domain.Assignment)}
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) (primitive.ObjectID, error) {
	key := pairKey{a.ProgramID, a.MemberID}
	if _, exists := f.assignments[key]; exists {
		return primitive.NilObjectID, repository.ErrConflict
	}
	if a.ID == primitive.NilObjectID {
		a.ID = primitive.NewObjectID()
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now().UTC()
	}
	f.assignments[key] = *a
	return a.ID, nil
}

func (f *fakeAssignmentRepo) GetByProgramAndMember(ctx context.Context, programID, memberID primitive.ObjectID) (*domain.Assignment, error) {
	a, ok := f.assignments[pairKey{programID, memberID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (f *fakeAssignmentRepo) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Assignment, error) {
	var out []domain.Assignment
	for _, a := range f.assignments {
		if a.MemberID == memberID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, programID, memberID primitive.ObjectID) error {
	key := pairKey{programID, memberID}
	if _, ok := f.assignments[key]; !ok {
		return repository.ErrNotFound
	}
	delete(f.assignments, key)
	return nil
}

// --- SessionRepository fake ---

type fakeSessionRepo struct {
	sessions map[primitive.ObjectID]domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[primitive.ObjectID]domain.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *domain.Session) (primitive.ObjectID, error) {
	if s.ID == primitive.NilObjectID {
		s.ID = primitive.NewObjectID()
	}
	s.CreatedAt = time.Now().UTC()
	f.sessions[s.ID] = *s
	return s.ID, nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (f *fakeSessionRepo) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error) {
	var out []domain.Session
	for _, s := range f.sessions {
		if s.TrainerID == trainerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Session, error) {
	var out []domain.Session
	for _, s := range f.sessions {
		if s.MemberID == memberID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) SetAttendance(ctx context.Context, id primitive.ObjectID, status domain.AttendanceStatus) error {
	s, ok := f.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Attendance = status
	f.sessions[id] = s
	return nil
}

// --- GymRepository fake ---

type fakeGymRepo struct {
	info     *domain.GymInfo
	messages []domain.ContactMessage
}

func newFakeGymRepo() *fakeGymRepo {
	return &fakeGymRepo{}
}

func (f *fakeGymRepo) GetInfo(ctx context.Context) (*domain.GymInfo, error) {
	if f.info == nil {
		return nil, repository.ErrNotFound
	}
	info := *f.info
	return &info, nil
}

func (f *fakeGymRepo) UpsertInfo(ctx context.Context, info *domain.GymInfo) error {
	if info.ID == primitive.NilObjectID {
		info.ID = primitive.NewObjectID()
	}
	info.UpdatedAt = time.Now().UTC()
	stored := *info
	f.info = &stored
	return nil
}

func (f *fakeGymRepo) CreateContactMessage(ctx context.Context, msg *domain.ContactMessage) (primitive.ObjectID, error) {
	if msg.ID == primitive.NilObjectID {
		msg.ID = primitive.NewObjectID()
	}
	msg.CreatedAt = time.Now().UTC()
	f.messages = append(f.messages, *msg)
	return msg.ID, nil
}

func (f *fakeGymRepo) GetUnreadContactMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	var out []domain.ContactMessage
	for _, m := range f.messages {
		if !m.Read {
			out = append(out, m)
		}
	}
	return out, nil
}

// --- FileStorage fake ---

type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}
