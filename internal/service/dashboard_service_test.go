package service

import (
	"context"
	"errors"
	"musclefit/gym-app/internal/domain"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type dashboardFixture struct {
	users       *fakeUserRepo
	memberships *fakeMembershipRepo
	programs    *fakeProgramRepo
	assignments *fakeAssignmentRepo
	service     DashboardService
}

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		users:       newFakeUserRepo(),
		memberships: newFakeMembershipRepo(),
		programs:    newFakeProgramRepo(),
		assignments: newFakeAssignmentRepo(),
	}
	f.service = NewDashboardService(f.users, f.memberships, f.programs, f.assignments)
	return f
}

func (f *dashboardFixture) addTrainer(t *testing.T, name, email string) domain.User {
	t.Helper()
	return f.users.add(domain.User{Name: name, Email: email, Role: domain.RoleTrainer, Active: true})
}

func (f *dashboardFixture) addMember(t *testing.T, name, email string, trainerID *primitive.ObjectID) domain.User {
	t.Helper()
	member := f.users.add(domain.User{Name: name, Email: email, Role: domain.RoleMember, Active: true})
	_, err := f.memberships.Create(context.Background(), &domain.Membership{
		MemberID:  member.ID,
		TrainerID: trainerID,
		Status:    domain.MembershipActive,
	})
	if err != nil {
		t.Fatalf("create membership: %v", err)
	}
	return member
}

func (f *dashboardFixture) addProgram(t *testing.T, trainerID primitive.ObjectID, name string) domain.Program {
	t.Helper()
	program := domain.Program{
		TrainerID:     trainerID,
		Name:          name,
		Type:          domain.ProgramStrength,
		Difficulty:    domain.DifficultyBeginner,
		DurationWeeks: 8,
		Active:        true,
	}
	id, err := f.programs.Create(context.Background(), &program)
	if err != nil {
		t.Fatalf("create program: %v", err)
	}
	program.ID = id
	return program
}

func TestGetDashboardOwner(t *testing.T) {
	f := newDashboardFixture()

	trainer := f.addTrainer(t, "Tara", "tara@gym.test")
	f.addMember(t, "Mia", "mia@gym.test", &trainer.ID)
	f.addMember(t, "Milo", "milo@gym.test", nil)

	result, err := f.service.GetDashboard(context.Background(), primitive.NewObjectID(), domain.RoleOwner)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	view, ok := result.(*OwnerDashboard)
	if !ok {
		t.Fatalf("expected *OwnerDashboard, got %T", result)
	}

	if view.Role != domain.RoleOwner {
		t.Errorf("role = %q, want %q", view.Role, domain.RoleOwner)
	}
	if view.TotalTrainers != 1 {
		t.Errorf("TotalTrainers = %d, want 1", view.TotalTrainers)
	}
	if view.TotalMembers != 2 {
		t.Errorf("TotalMembers = %d, want 2", view.TotalMembers)
	}

	var trainerItem *DashboardUser
	for i := range view.Trainers {
		if view.Trainers[i].ID == trainer.ID.Hex() {
			trainerItem = &view.Trainers[i]
		}
	}
	if trainerItem == nil {
		t.Fatal("trainer missing from owner view")
	}
	if trainerItem.MemberCount == nil || *trainerItem.MemberCount != 1 {
		t.Errorf("trainer MemberCount = %v, want 1", trainerItem.MemberCount)
	}

	for _, m := range view.Members {
		switch m.Email {
		case "mia@gym.test":
			if m.TrainerName == nil || *m.TrainerName != "Tara" {
				t.Errorf("Mia's TrainerName = %v, want Tara", m.TrainerName)
			}
		case "milo@gym.test":
			if m.TrainerName != nil {
				t.Errorf("Milo's TrainerName = %q, want nil", *m.TrainerName)
			}
		default:
			t.Errorf("unexpected member in owner view: %s", m.Email)
		}
	}
}

func TestGetDashboardTrainerScoping(t *testing.T) {
	f := newDashboardFixture()

	trainer1 := f.addTrainer(t, "T1", "t1@gym.test")
	trainer2 := f.addTrainer(t, "T2", "t2@gym.test")

	mine := f.addMember(t, "Mine", "mine@gym.test", &trainer1.ID)
	f.addMember(t, "Other", "other@gym.test", &trainer2.ID)

	myProgram := f.addProgram(t, trainer1.ID, "Mine Strength")
	f.addProgram(t, trainer2.ID, "Other Strength")

	result, err := f.service.GetDashboard(context.Background(), trainer1.ID, domain.RoleTrainer)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	view, ok := result.(*TrainerDashboard)
	if !ok {
		t.Fatalf("expected *TrainerDashboard, got %T", result)
	}

	if view.TotalMembers != 1 {
		t.Fatalf("TotalMembers = %d, want 1", view.TotalMembers)
	}
	if view.Members[0].ID != mine.ID.Hex() {
		t.Errorf("member in view = %s, want %s", view.Members[0].ID, mine.ID.Hex())
	}
	if view.Members[0].TrainerName == nil || *view.Members[0].TrainerName != "T1" {
		t.Errorf("member TrainerName = %v, want T1", view.Members[0].TrainerName)
	}

	if view.TotalPrograms != 1 {
		t.Fatalf("TotalPrograms = %d, want 1", view.TotalPrograms)
	}
	if view.Programs[0].ID != myProgram.ID {
		t.Errorf("program in view = %s, want %s", view.Programs[0].ID.Hex(), myProgram.ID.Hex())
	}
}

func TestGetDashboardMember(t *testing.T) {
	f := newDashboardFixture()

	trainer := f.addTrainer(t, "Tara", "tara@gym.test")
	member := f.addMember(t, "Mia", "mia@gym.test", &trainer.ID)

	program := f.addProgram(t, trainer.ID, "Cardio Blast")
	_, err := f.assignments.Create(context.Background(), &domain.Assignment{
		ProgramID: program.ID,
		MemberID:  member.ID,
		TrainerID: trainer.ID,
	})
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	result, err := f.service.GetDashboard(context.Background(), member.ID, domain.RoleMember)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	view, ok := result.(*MemberDashboard)
	if !ok {
		t.Fatalf("expected *MemberDashboard, got %T", result)
	}

	if view.Trainer == nil || view.Trainer.ID != trainer.ID.Hex() {
		t.Errorf("trainer = %v, want %s", view.Trainer, trainer.ID.Hex())
	}
	if len(view.Programs) != 1 || view.Programs[0].ID != program.ID {
		t.Errorf("programs = %v, want [%s]", view.Programs, program.ID.Hex())
	}
	if view.Stats != (MemberStats{}) {
		t.Errorf("stats = %+v, want zero values", view.Stats)
	}
}

func TestGetDashboardMemberSkipsDeactivatedPrograms(t *testing.T) {
	f := newDashboardFixture()

	trainer := f.addTrainer(t, "Tara", "tara@gym.test")
	member := f.addMember(t, "Mia", "mia@gym.test", &trainer.ID)

	kept := f.addProgram(t, trainer.ID, "Cardio Blast")
	retired := f.addProgram(t, trainer.ID, "Retired Plan")
	for _, p := range []domain.Program{kept, retired} {
		_, err := f.assignments.Create(context.Background(), &domain.Assignment{
			ProgramID: p.ID,
			MemberID:  member.ID,
			TrainerID: trainer.ID,
		})
		if err != nil {
			t.Fatalf("create assignment: %v", err)
		}
	}
	if err := f.programs.SetActive(context.Background(), retired.ID, trainer.ID, false); err != nil {
		t.Fatalf("deactivate program: %v", err)
	}

	result, err := f.service.GetDashboard(context.Background(), member.ID, domain.RoleMember)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	view := result.(*MemberDashboard)

	if len(view.Programs) != 1 || view.Programs[0].ID != kept.ID {
		t.Errorf("programs = %v, want only %q", view.Programs, kept.Name)
	}
}

func TestGetDashboardMemberWithoutTrainer(t *testing.T) {
	f := newDashboardFixture()
	member := f.addMember(t, "Milo", "milo@gym.test", nil)

	result, err := f.service.GetDashboard(context.Background(), member.ID, domain.RoleMember)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	view := result.(*MemberDashboard)

	if view.Trainer != nil {
		t.Errorf("trainer = %+v, want nil", view.Trainer)
	}
	if len(view.Programs) != 0 {
		t.Errorf("programs = %v, want empty", view.Programs)
	}
}

func TestGetDashboardInvalidRole(t *testing.T) {
	f := newDashboardFixture()

	_, err := f.service.GetDashboard(context.Background(), primitive.NewObjectID(), domain.Role("admin"))
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
}

func TestBuildMemberViewNilPrograms(t *testing.T) {
	view := buildMemberView(nil, nil)
	if view.Programs == nil {
		t.Error("Programs should be an empty slice, not nil")
	}
	if view.Role != domain.RoleMember {
		t.Errorf("role = %q, want %q", view.Role, domain.RoleMember)
	}
}
