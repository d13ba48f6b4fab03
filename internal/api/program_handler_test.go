package api

import (
	"context"
	"encoding/json"
	"musclefit/gym-app/internal/domain"
	"musclefit/gym-app/internal/service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubProgramService lets each test pin the behavior of the one method the
// handler under test calls.
type stubProgramService struct {
	service.ProgramService

	assignFn   func(ctx context.Context, trainerID, programID, memberID primitive.ObjectID) (*domain.Assignment, bool, error)
	unassignFn func(ctx context.Context, trainerID, programID, memberID primitive.ObjectID) error
}

func (s *stubProgramService) AssignProgram(ctx context.Context, trainerID, programID, memberID primitive.ObjectID) (*domain.Assignment, bool, error) {
	return s.assignFn(ctx, trainerID, programID, memberID)
}

func (s *stubProgramService) UnassignProgram(ctx context.Context, trainerID, programID, memberID primitive.ObjectID) error {
	return s.unassignFn(ctx, trainerID, programID, memberID)
}

// newProgramRouter wires the handler behind a fake authenticated trainer.
func newProgramRouter(svc service.ProgramService, trainerID primitive.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserIDKey, trainerID.Hex())
		c.Set(ContextUserRoleKey, domain.RoleTrainer)
	})
	handler := NewProgramHandler(svc)
	router.POST("/programs/:id/assign", handler.AssignProgram)
	router.DELETE("/programs/:id/unassign", handler.UnassignProgram)
	return router
}

func TestAssignProgramHandlerStatusCodes(t *testing.T) {
	trainerID := primitive.NewObjectID()
	programID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	assignment := &domain.Assignment{
		ID:        primitive.NewObjectID(),
		ProgramID: programID,
		MemberID:  memberID,
		TrainerID: trainerID,
	}

	tests := []struct {
		name       string
		created    bool
		err        error
		wantStatus int
	}{
		{"new assignment", true, nil, http.StatusCreated},
		{"existing assignment", false, nil, http.StatusOK},
		{"foreign program", false, service.ErrProgramAccessDenied, http.StatusForbidden},
		{"target not member", false, service.ErrTargetNotMember, http.StatusForbidden},
		{"missing program", false, service.ErrProgramNotFound, http.StatusNotFound},
		{"missing member", false, service.ErrMemberNotFound, http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubProgramService{
				assignFn: func(ctx context.Context, gotTrainer, gotProgram, gotMember primitive.ObjectID) (*domain.Assignment, bool, error) {
					if gotTrainer != trainerID || gotProgram != programID || gotMember != memberID {
						t.Errorf("service called with (%s, %s, %s)", gotTrainer.Hex(), gotProgram.Hex(), gotMember.Hex())
					}
					if tc.err != nil {
						return nil, false, tc.err
					}
					return assignment, tc.created, nil
				},
			}
			router := newProgramRouter(svc, trainerID)

			body := `{"memberId":"` + memberID.Hex() + `"}`
			req := httptest.NewRequest(http.MethodPost, "/programs/"+programID.Hex()+"/assign", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.err == nil {
				var resp AssignmentResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if resp.ProgramID != programID.Hex() || resp.MemberID != memberID.Hex() {
					t.Errorf("response pair = (%s, %s)", resp.ProgramID, resp.MemberID)
				}
			}
		})
	}
}

func TestAssignProgramHandlerBadInput(t *testing.T) {
	trainerID := primitive.NewObjectID()
	svc := &stubProgramService{
		assignFn: func(ctx context.Context, _, _, _ primitive.ObjectID) (*domain.Assignment, bool, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, false, nil
		},
	}
	router := newProgramRouter(svc, trainerID)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"missing member id", "/programs/" + primitive.NewObjectID().Hex() + "/assign", `{}`},
		{"malformed member id", "/programs/" + primitive.NewObjectID().Hex() + "/assign", `{"memberId":"nope"}`},
		{"malformed program id", "/programs/nope/assign", `{"memberId":"` + primitive.NewObjectID().Hex() + `"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUnassignProgramHandlerStatusCodes(t *testing.T) {
	trainerID := primitive.NewObjectID()
	programID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"removed", nil, http.StatusNoContent},
		{"absent assignment", service.ErrAssignmentNotFound, http.StatusNotFound},
		{"foreign program", service.ErrProgramAccessDenied, http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubProgramService{
				unassignFn: func(ctx context.Context, _, _, _ primitive.ObjectID) error {
					return tc.err
				},
			}
			router := newProgramRouter(svc, trainerID)

			body := `{"memberId":"` + memberID.Hex() + `"}`
			req := httptest.NewRequest(http.MethodDelete, "/programs/"+programID.Hex()+"/unassign", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
		})
	}
}
