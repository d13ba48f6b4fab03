package service

import (
	"context"
	"errors"
	"musclefit/gym-app/internal/domain"
	"testing"
)

func TestGymInfoLifecycle(t *testing.T) {
	gymRepo := newFakeGymRepo()
	svc := NewGymService(gymRepo)
	ctx := context.Background()

	if _, err := svc.GetInfo(ctx); !errors.Is(err, ErrGymInfoNotFound) {
		t.Fatalf("err = %v, want ErrGymInfoNotFound before first update", err)
	}

	info := &domain.GymInfo{Name: "Muscle Fit", Email: "info@gym.test", Phone: "555-0100", Address: "1 Gym St", City: "Sporttown"}
	if _, err := svc.UpdateInfo(ctx, domain.RoleTrainer, info); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}

	first, err := svc.UpdateInfo(ctx, domain.RoleOwner, info)
	if err != nil {
		t.Fatalf("UpdateInfo: %v", err)
	}

	// A second update keeps the single-document shape.
	second, err := svc.UpdateInfo(ctx, domain.RoleOwner, &domain.GymInfo{Name: "Muscle Fit 2", Email: "info@gym.test", Phone: "555-0100", Address: "1 Gym St", City: "Sporttown"})
	if err != nil {
		t.Fatalf("second UpdateInfo: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("document ID changed across updates: %s -> %s", first.ID.Hex(), second.ID.Hex())
	}
	if second.Name != "Muscle Fit 2" {
		t.Errorf("name = %q, want Muscle Fit 2", second.Name)
	}
}

func TestContactMessages(t *testing.T) {
	gymRepo := newFakeGymRepo()
	svc := NewGymService(gymRepo)
	ctx := context.Background()

	if _, err := svc.SubmitContactMessage(ctx, &domain.ContactMessage{Name: "Visitor"}); err == nil {
		t.Fatal("incomplete message accepted")
	}

	msg := &domain.ContactMessage{Name: "Visitor", Email: "v@example.test", Subject: "Hours", Message: "When do you open?"}
	stored, err := svc.SubmitContactMessage(ctx, msg)
	if err != nil {
		t.Fatalf("SubmitContactMessage: %v", err)
	}
	if stored.ID.IsZero() {
		t.Error("stored message has no ID")
	}

	if _, err := svc.GetUnreadContactMessages(ctx, domain.RoleMember); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	unread, err := svc.GetUnreadContactMessages(ctx, domain.RoleOwner)
	if err != nil {
		t.Fatalf("GetUnreadContactMessages: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("unread = %d, want 1", len(unread))
	}
}
