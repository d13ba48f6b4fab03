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

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- DTOs ---

// CreateProgramRequest defines the expected JSON for creating a program.
type CreateProgramRequest struct {
	Name          string  `json:"name" binding:"required"`
	Type          string  `json:"type" binding:"required,oneof=cardio muscle yoga strength flexibility"`
	Description   string  `json:"description"`
	Difficulty    string  `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	DurationWeeks int     `json:"durationWeeks" binding:"required,gt=0"`
	Price         float64 `json:"price" binding:"gte=0"`
}

// UpdateProgramRequest mirrors CreateProgramRequest plus the active flag.
type UpdateProgramRequest struct {
	Name          string  `json:"name" binding:"required"`
	Type          string  `json:"type" binding:"required,oneof=cardio muscle yoga strength flexibility"`
	Description   string  `json:"description"`
	Difficulty    string  `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	DurationWeeks int     `json:"durationWeeks" binding:"required,gt=0"`
	Price         float64 `json:"price" binding:"gte=0"`
	Active        bool    `json:"active"`
}

// ProgramResponse is the DTO for returning program details.
type ProgramResponse struct {
	ID            string    `json:"id"`
	TrainerID     string    `json:"trainerId"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Description   string    `json:"description,omitempty"`
	Difficulty    string    `json:"difficulty"`
	DurationWeeks int       `json:"durationWeeks"`
	Price         float64   `json:"price"`
	Active        bool      `json:"active"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// AssignRequest carries the member id for assign/unassign operations.
type AssignRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

// AssignmentResponse is the DTO for returning assignment details.
type AssignmentResponse struct {
	ID         string    `json:"id"`
	ProgramID  string    `json:"programId"`
	MemberID   string    `json:"memberId"`
	AssignedAt time.Time `json:"assignedAt"`
}

// ImageUploadConfirmRequest reports the uploaded object key back.
type ImageUploadConfirmRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// MapProgramToResponse converts a domain.Program to ProgramResponse DTO.
func MapProgramToResponse(p *domain.Program) ProgramResponse {
	if p == nil {
		return ProgramResponse{}
	}
	return ProgramResponse{
		ID:            p.ID.Hex(),
		TrainerID:     p.TrainerID.Hex(),
		Name:          p.Name,
		Type:          string(p.Type),
		Description:   p.Description,
		Difficulty:    string(p.Difficulty),
		DurationWeeks: p.DurationWeeks,
		Price:         p.Price,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// MapProgramsToResponse converts a slice of domain.Program to DTOs.
func MapProgramsToResponse(programs []domain.Program) []ProgramResponse {
	responses := make([]ProgramResponse, len(programs))
	for i, p := range programs {
		responses[i] = MapProgramToResponse(&p)
	}
	return responses
}

// MapAssignmentToResponse converts a domain.Assignment to AssignmentResponse DTO.
func MapAssignmentToResponse(a *domain.Assignment) AssignmentResponse {
	if a == nil {
		return AssignmentResponse{}
	}
	return AssignmentResponse{
		ID:         a.ID.Hex(),
		ProgramID:  a.ProgramID.Hex(),
		MemberID:   a.MemberID.Hex(),
		AssignedAt: a.AssignedAt,
	}
}

// --- Handler Methods ---

// CreateProgram godoc
// @Summary Create a new program
// @Description Creates a catalog program for the authenticated trainer.
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param program body CreateProgramRequest true "Program details"
// @Success 201 {object} ProgramResponse "Program created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden (not a trainer)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /programs [post]
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}

	program := &domain.Program{
		Name:          req.Name,
		Type:          domain.ProgramType(req.Type),
		Description:   req.Description,
		Difficulty:    domain.ProgramDifficulty(req.Difficulty),
		DurationWeeks: req.DurationWeeks,
		Price:         req.Price,
	}

	created, err := h.programService.CreateProgram(c.Request.Context(), trainerID, program)
	if err != nil {
		if errors.Is(err, service.ErrProgramValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create program.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapProgramToResponse(created))
}

// ListPrograms godoc
// @Summary List active programs
// @Description Lists the active program catalog, optionally filtered by type.
// @Tags Programs
// @Produce json
// @Param type query string false "Program type filter"
// @Success 200 {array} ProgramResponse "List of programs"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /programs [get]
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	programType := domain.ProgramType(c.Query("type"))

	programs, err := h.programService.GetActivePrograms(c.Request.Context(), programType, 0)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve programs.")
		return
	}
	c.JSON(http.StatusOK, MapProgramsToResponse(programs))
}

// FeaturedPrograms godoc
// @Summary List featured programs
// @Description Lists the most recent six active programs.
// @Tags Programs
// @Produce json
// @Success 200 {array} ProgramResponse "Featured programs"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /programs/featured [get]
func (h *ProgramHandler) FeaturedPrograms(c *gin.Context) {
	programs, err := h.programService.GetActivePrograms(c.Request.Context(), "", 6)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve programs.")
		return
	}
	c.JSON(http.StatusOK, MapProgramsToResponse(programs))
}

// GetProgram godoc
// @Summary Get a single program
// @Tags Programs
// @Produce json
// @Param id path string true "Program's ObjectID Hex"
// @Success 200 {object} ProgramResponse "Program details"
// @Failure 400 {object} gin.H "Invalid program ID format"
// @Failure 404 {object} gin.H "Program not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /programs/{id} [get]
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	program, err := h.programService.GetProgramByID(c.Request.Context(), programID)
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve program.")
		}
		return
	}

	resp := MapProgramToResponse(program)
	// Attach a temporary viewing URL when an image exists. Best effort;
	// a presign failure should not fail the whole read.
	if url, err := h.programService.GetImageDownloadURL(c.Request.Context(), programID); err == nil {
		resp.ImageURL = url
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateProgram godoc
// @Summary Update a program
// @Description Updates a program owned by the authenticated trainer.
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program's ObjectID Hex"
// @Param program body UpdateProgramRequest true "Program details"
// @Success 200 {object} ProgramResponse "Updated program"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Forbidden (program owned by another trainer)"
// @Failure 404 {object} gin.H "Program not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /programs/{id} [put]
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	program := &domain.Program{
		ID:            programID,
		Name:          req.Name,
		Type:          domain.ProgramType(req.Type),
		Description:   req.Description,
		Difficulty:    domain.ProgramDifficulty(req.Difficulty),
		DurationWeeks: req.DurationWeeks,
		Price:         req.Price,
		Active:        req.Active,
	}

	updated, err := h.programService.UpdateProgram(c.Request.Context(), trainerID, program)
	if err != nil {
		respondProgramError(c, err, "Failed to update program.")
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(updated))
}

// DeactivateProgram godoc
// @Summary Disable a program
// @Description Soft-disables a program owned by the authenticated trainer. Programs are never hard-deleted.
// @Tags Programs
// @Security BearerAuth
// @Param id path string true "Program's ObjectID Hex"
// @Success 204 "Program disabled"
// @Failure 404 {object} gin.H "Program not found (or owned by another trainer)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /programs/{id} [delete]
func (h *ProgramHandler) DeactivateProgram(c *gin.Context) {
	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.programService.DeactivateProgram(c.Request.Context(), trainerID, programID); err != nil {
		respondProgramError(c, err, "Failed to disable program.")
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignProgram godoc
// @Summary Assign a program to a member
// @Description Creates the assignment row if absent. Idempotent: re-assigning returns the existing row.
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program's ObjectID Hex"
// @Param assignment body AssignRequest true "Member to assign"
// @Success 200 {object} AssignmentResponse "Assignment already existed"
// @Success 201 {object} AssignmentResponse "Assignment created"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Forbidden (program owned by another trainer, or target not a member)"
// @Failure 404 {object} gin.H "Program or member not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /programs/{id}/assign [post]
func (h *ProgramHandler) AssignProgram(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid member ID format.")
		return
	}

	assignment, created, err := h.programService.AssignProgram(c.Request.Context(), trainerID, programID, memberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramNotFound), errors.Is(err, service.ErrMemberNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrProgramAccessDenied), errors.Is(err, service.ErrTargetNotMember):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to assign program.")
		}
		return
	}

	status := http.StatusOK // Re-assign is a no-op returning the existing row
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, MapAssignmentToResponse(assignment))
}

// UnassignProgram godoc
// @Summary Remove a program assignment
// @Tags Programs
// @Accept json
// @Security BearerAuth
// @Param id path string true "Program's ObjectID Hex"
// @Param assignment body AssignRequest true "Member to unassign"
// @Success 204 "Assignment removed"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Forbidden (program owned by another trainer)"
// @Failure 404 {object} gin.H "Program or assignment not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /programs/{id}/unassign [delete]
func (h *ProgramHandler) UnassignProgram(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid member ID format.")
		return
	}

	err = h.programService.UnassignProgram(c.Request.Context(), trainerID, programID, memberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramNotFound), errors.Is(err, service.ErrAssignmentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrProgramAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to remove assignment.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestImageUploadURL godoc
// @Summary Request a presigned URL for a program image
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program's ObjectID Hex"
// @Success 200 {object} service.UploadURLResponse "Presigned PUT URL and object key"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Forbidden (program owned by another trainer)"
// @Failure 404 {object} gin.H "Program not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /programs/{id}/image [post]
func (h *ProgramHandler) RequestImageUploadURL(c *gin.Context) {
	var req struct {
		ContentType string `json:"contentType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	resp, err := h.programService.RequestImageUploadURL(c.Request.Context(), trainerID, programID, req.ContentType)
	if err != nil {
		respondProgramError(c, err, "Failed to generate upload URL.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmImageUpload godoc
// @Summary Confirm a program image upload
// @Tags Programs
// @Accept json
// @Security BearerAuth
// @Param id path string true "Program's ObjectID Hex"
// @Param confirmation body ImageUploadConfirmRequest true "Uploaded object key"
// @Success 204 "Image recorded"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Forbidden (program owned by another trainer)"
// @Failure 404 {object} gin.H "Program not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /programs/{id}/image [put]
func (h *ProgramHandler) ConfirmImageUpload(c *gin.Context) {
	var req ImageUploadConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.programService.ConfirmImageUpload(c.Request.Context(), trainerID, programID, req.ObjectKey); err != nil {
		respondProgramError(c, err, "Failed to record image.")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Shared helpers ---

// callerObjectID extracts and parses the authenticated caller's ObjectID.
// Writes the error response itself when extraction fails.
func callerObjectID(c *gin.Context) (primitive.ObjectID, bool) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathObjectID parses an ObjectID path parameter.
func pathObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+param+" format.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondProgramError maps common program service errors to status codes.
func respondProgramError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProgramNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProgramAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrProgramValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
