package api

import (
	"errors"
	"musclefit/gym-app/internal/domain"
	"musclefit/gym-app/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionHandler holds the session service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs ---

// ScheduleSessionRequest defines the expected JSON for scheduling a session.
type ScheduleSessionRequest struct {
	MemberID        string    `json:"memberId" binding:"required"`
	ScheduledAt     time.Time `json:"scheduledAt" binding:"required"`
	Type            string    `json:"type" binding:"required,oneof=in-person virtual"`
	DurationMinutes int       `json:"durationMinutes" binding:"gte=0"`
	Notes           string    `json:"notes"`
}

// SetAttendanceRequest carries the attendance outcome for a session.
type SetAttendanceRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled present absent cancelled"`
}

// SessionResponse is the DTO for returning session details.
type SessionResponse struct {
	ID              string    `json:"id"`
	TrainerID       string    `json:"trainerId"`
	MemberID        string    `json:"memberId"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	Type            string    `json:"type"`
	DurationMinutes int       `json:"durationMinutes"`
	Attendance      string    `json:"attendance"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// MapSessionToResponse converts a domain.Session to SessionResponse DTO.
func MapSessionToResponse(s *domain.Session) SessionResponse {
	if s == nil {
		return SessionResponse{}
	}
	return SessionResponse{
		ID:              s.ID.Hex(),
		TrainerID:       s.TrainerID.Hex(),
		MemberID:        s.MemberID.Hex(),
		ScheduledAt:     s.ScheduledAt,
		Type:            string(s.Type),
		DurationMinutes: s.DurationMinutes,
		Attendance:      string(s.Attendance),
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
	}
}

// MapSessionsToResponse converts a slice of domain.Session to DTOs.
func MapSessionsToResponse(sessions []domain.Session) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		responses[i] = MapSessionToResponse(&s)
	}
	return responses
}

// --- Handler Methods ---

// ScheduleSession godoc
// @Summary Schedule a training session
// @Description Trainer schedules a session with one of their assigned members.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body ScheduleSessionRequest true "Session details"
// @Success 201 {object} SessionResponse "Session scheduled"
// @Failure 400 {object} gin.H "Invalid input (past time, bad member ID)"
// @Failure 403 {object} gin.H "Forbidden (member not assigned to this trainer)"
// @Failure 404 {object} gin.H "Member not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /sessions [post]
func (h *SessionHandler) ScheduleSession(c *gin.Context) {
	var req ScheduleSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid member ID format.")
		return
	}

	session, err := h.sessionService.ScheduleSession(
		c.Request.Context(),
		trainerID,
		memberID,
		req.ScheduledAt,
		domain.SessionType(req.Type),
		req.DurationMinutes,
		req.Notes,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionInPast):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMemberNotOfTrainer):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrMemberNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to schedule session.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapSessionToResponse(session))
}

// ListSessions godoc
// @Summary List the caller's sessions
// @Description Trainers see sessions they run, members see sessions scheduled for them.
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} SessionResponse "Sessions for the caller"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /sessions [get]
func (h *SessionHandler) ListSessions(c *gin.Context) {
	callerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user role from token.")
		return
	}

	var sessions []domain.Session
	switch role {
	case domain.RoleTrainer:
		sessions, err = h.sessionService.GetSessionsForTrainer(c.Request.Context(), callerID)
	case domain.RoleMember:
		sessions, err = h.sessionService.GetSessionsForMember(c.Request.Context(), callerID)
	default:
		abortWithError(c, http.StatusForbidden, "Sessions are only available to trainers and members.")
		return
	}
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions.")
		return
	}
	c.JSON(http.StatusOK, MapSessionsToResponse(sessions))
}

// SetAttendance godoc
// @Summary Record a session's attendance outcome
// @Description Trainer marks one of their own sessions.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session's ObjectID Hex"
// @Param attendance body SetAttendanceRequest true "Attendance outcome"
// @Success 200 {object} SessionResponse "Updated session"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Forbidden (session owned by another trainer)"
// @Failure 404 {object} gin.H "Session not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /sessions/{id}/attendance [put]
func (h *SessionHandler) SetAttendance(c *gin.Context) {
	var req SetAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.SetAttendance(c.Request.Context(), trainerID, sessionID, domain.AttendanceStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSessionAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record attendance.")
		}
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}
