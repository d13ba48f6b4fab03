package service

import (
	"context"
	"errors"
	"musclefit/gym-app/internal/domain"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sessionFixture struct {
	sessions    *fakeSessionRepo
	memberships *fakeMembershipRepo
	service     SessionService
}

func newSessionFixture() *sessionFixture {
	f := &sessionFixture{
		sessions:    newFakeSessionRepo(),
		memberships: newFakeMembershipRepo(),
	}
	f.service = NewSessionService(f.sessions, f.memberships)
	return f
}

func (f *sessionFixture) addMembership(t *testing.T, memberID primitive.ObjectID, trainerID *primitive.ObjectID) {
	t.Helper()
	_, err := f.memberships.Create(context.Background(), &domain.Membership{
		MemberID:  memberID,
		TrainerID: trainerID,
		Status:    domain.MembershipActive,
	})
	if err != nil {
		t.Fatalf("create membership: %v", err)
	}
}

func TestScheduleSession(t *testing.T) {
	f := newSessionFixture()
	trainerID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	f.addMembership(t, memberID, &trainerID)

	when := time.Now().Add(24 * time.Hour)
	session, err := f.service.ScheduleSession(context.Background(), trainerID, memberID, when, domain.SessionInPerson, 0, "leg day")
	if err != nil {
		t.Fatalf("ScheduleSession: %v", err)
	}
	if session.Attendance != domain.AttendanceScheduled {
		t.Errorf("attendance = %q, want scheduled", session.Attendance)
	}
	if session.DurationMinutes != 60 {
		t.Errorf("duration = %d, want default 60", session.DurationMinutes)
	}
}

func TestScheduleSessionRejections(t *testing.T) {
	f := newSessionFixture()
	trainerID := primitive.NewObjectID()
	otherTrainerID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	f.addMembership(t, memberID, &trainerID)

	future := time.Now().Add(24 * time.Hour)

	t.Run("past time", func(t *testing.T) {
		_, err := f.service.ScheduleSession(context.Background(), trainerID, memberID, time.Now().Add(-time.Hour), domain.SessionInPerson, 60, "")
		if !errors.Is(err, ErrSessionInPast) {
			t.Errorf("err = %v, want ErrSessionInPast", err)
		}
	})

	t.Run("unknown session type", func(t *testing.T) {
		_, err := f.service.ScheduleSession(context.Background(), trainerID, memberID, future, domain.SessionType("phone"), 60, "")
		if !errors.Is(err, ErrInvalidSessionType) {
			t.Errorf("err = %v, want ErrInvalidSessionType", err)
		}
	})

	t.Run("member of another trainer", func(t *testing.T) {
		_, err := f.service.ScheduleSession(context.Background(), otherTrainerID, memberID, future, domain.SessionVirtual, 60, "")
		if !errors.Is(err, ErrMemberNotOfTrainer) {
			t.Errorf("err = %v, want ErrMemberNotOfTrainer", err)
		}
	})

	t.Run("member without membership", func(t *testing.T) {
		_, err := f.service.ScheduleSession(context.Background(), trainerID, primitive.NewObjectID(), future, domain.SessionVirtual, 60, "")
		if !errors.Is(err, ErrMemberNotFound) {
			t.Errorf("err = %v, want ErrMemberNotFound", err)
		}
	})
}

func TestSetAttendance(t *testing.T) {
	f := newSessionFixture()
	trainerID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	f.addMembership(t, memberID, &trainerID)

	session, err := f.service.ScheduleSession(context.Background(), trainerID, memberID, time.Now().Add(time.Hour), domain.SessionVirtual, 45, "")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	t.Run("foreign trainer rejected", func(t *testing.T) {
		_, err := f.service.SetAttendance(context.Background(), primitive.NewObjectID(), session.ID, domain.AttendancePresent)
		if !errors.Is(err, ErrSessionAccessDenied) {
			t.Errorf("err = %v, want ErrSessionAccessDenied", err)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := f.service.SetAttendance(context.Background(), trainerID, session.ID, domain.AttendanceStatus("late"))
		if !errors.Is(err, ErrInvalidAttendance) {
			t.Errorf("err = %v, want ErrInvalidAttendance", err)
		}
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := f.service.SetAttendance(context.Background(), trainerID, primitive.NewObjectID(), domain.AttendancePresent)
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("err = %v, want ErrSessionNotFound", err)
		}
	})

	updated, err := f.service.SetAttendance(context.Background(), trainerID, session.ID, domain.AttendancePresent)
	if err != nil {
		t.Fatalf("SetAttendance: %v", err)
	}
	if updated.Attendance != domain.AttendancePresent {
		t.Errorf("attendance = %q, want present", updated.Attendance)
	}
}

func TestSessionListingScoped(t *testing.T) {
	f := newSessionFixture()
	trainerID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	otherMemberID := primitive.NewObjectID()
	f.addMembership(t, memberID, &trainerID)
	f.addMembership(t, otherMemberID, &trainerID)

	future := time.Now().Add(time.Hour)
	if _, err := f.service.ScheduleSession(context.Background(), trainerID, memberID, future, domain.SessionInPerson, 60, ""); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if _, err := f.service.ScheduleSession(context.Background(), trainerID, otherMemberID, future, domain.SessionInPerson, 60, ""); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	forTrainer, err := f.service.GetSessionsForTrainer(context.Background(), trainerID)
	if err != nil {
		t.Fatalf("GetSessionsForTrainer: %v", err)
	}
	if len(forTrainer) != 2 {
		t.Errorf("trainer sees %d sessions, want 2", len(forTrainer))
	}

	forMember, err := f.service.GetSessionsForMember(context.Background(), memberID)
	if err != nil {
		t.Fatalf("GetSessionsForMember: %v", err)
	}
	if len(forMember) != 1 || forMember[0].MemberID != memberID {
		t.Errorf("member sees %d sessions, want only their own", len(forMember))
	}
}
