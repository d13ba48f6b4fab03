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

// MemberHandler holds the member service dependency.
type MemberHandler struct {
	memberService service.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// --- DTOs ---

// CreateMemberRequest defines the expected JSON for the owner creating a member account.
type CreateMemberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SetTrainerRequest carries the trainer to attach, or null to detach.
type SetTrainerRequest struct {
	TrainerID *string `json:"trainerId"`
}

// SetStatusRequest carries the new membership status.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive paused"`
}

// MemberResponse is the DTO for returning a member with membership details.
type MemberResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Status    string    `json:"status,omitempty"`
	TrainerID *string   `json:"trainerId,omitempty"`
	JoinedAt  time.Time `json:"joinedAt,omitempty"`
}

// MapMemberDetailsToResponse converts a service.MemberDetails to MemberResponse DTO.
func MapMemberDetailsToResponse(d *service.MemberDetails) MemberResponse {
	if d == nil {
		return MemberResponse{}
	}
	resp := MemberResponse{
		ID:    d.User.ID.Hex(),
		Email: d.User.Email,
		Name:  d.User.Name,
	}
	// A zero membership means the account has no profile yet.
	if d.Membership.MemberID != primitive.NilObjectID {
		resp.Status = string(d.Membership.Status)
		resp.JoinedAt = d.Membership.JoinedAt
		if d.Membership.TrainerID != nil {
			hex := d.Membership.TrainerID.Hex()
			resp.TrainerID = &hex
		}
	}
	return resp
}

// --- Handler Methods ---

// CreateMember godoc
// @Summary Create a member account
// @Description Owner-only. Creates a member account together with its membership record.
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param member body CreateMemberRequest true "Member details"
// @Success 201 {object} UserResponse "Member created"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Forbidden (caller is not the owner)"
// @Failure 409 {object} gin.H "Email already registered"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user role from token.")
		return
	}

	user, err := h.memberService.CreateMember(c.Request.Context(), role, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrUserAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create member.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// ListMembers godoc
// @Summary List members visible to the caller
// @Description Owner sees all members, a trainer sees assigned members, a member sees only themselves.
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Success 200 {array} MemberResponse "Members visible to the caller"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	callerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user role from token.")
		return
	}

	details, err := h.memberService.ListMembers(c.Request.Context(), callerID, role)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			abortWithError(c, http.StatusInternalServerError, "Account role is invalid.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve members.")
		}
		return
	}

	responses := make([]MemberResponse, len(details))
	for i := range details {
		responses[i] = MapMemberDetailsToResponse(&details[i])
	}
	c.JSON(http.StatusOK, responses)
}

// SetTrainer godoc
// @Summary Attach or detach a member's trainer
// @Description Owner-only. Pass a trainerId to attach, or null to detach.
// @Tags Members
// @Accept json
// @Security BearerAuth
// @Param id path string true "Member's ObjectID Hex"
// @Param trainer body SetTrainerRequest true "Trainer to attach (null to detach)"
// @Success 204 "Trainer updated"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Forbidden (caller is not the owner, or target is not a trainer)"
// @Failure 404 {object} gin.H "Member or trainer not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /members/{id}/trainer [put]
func (h *MemberHandler) SetTrainer(c *gin.Context) {
	var req SetTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user role from token.")
		return
	}
	memberID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var trainerID *primitive.ObjectID
	if req.TrainerID != nil {
		id, err := primitive.ObjectIDFromHex(*req.TrainerID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format.")
			return
		}
		trainerID = &id
	}

	err = h.memberService.SetTrainer(c.Request.Context(), role, memberID, trainerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner), errors.Is(err, service.ErrTargetNotTrainer):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrMemberNotFound), errors.Is(err, service.ErrTrainerNotFound), errors.Is(err, service.ErrMembershipMissing):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update trainer.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// SetStatus godoc
// @Summary Change a member's membership status
// @Description Owner-only.
// @Tags Members
// @Accept json
// @Security BearerAuth
// @Param id path string true "Member's ObjectID Hex"
// @Param status body SetStatusRequest true "New status"
// @Success 204 "Status updated"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Forbidden (caller is not the owner)"
// @Failure 404 {object} gin.H "Member not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /members/{id}/status [put]
func (h *MemberHandler) SetStatus(c *gin.Context) {
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user role from token.")
		return
	}
	memberID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	err = h.memberService.SetStatus(c.Request.Context(), role, memberID, domain.MembershipStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrMemberNotFound), errors.Is(err, service.ErrMembershipMissing):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update status.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTrainers godoc
// @Summary List active trainers
// @Tags Members
// @Produce json
// @Success 200 {array} UserResponse "Active trainers"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /trainers [get]
func (h *MemberHandler) ListTrainers(c *gin.Context) {
	trainers, err := h.memberService.ListTrainers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve trainers.")
		return
	}
	c.JSON(http.StatusOK, MapUsersToResponse(trainers))
}

// RequestProfileImageUpload godoc
// @Summary Request a presigned URL for the caller's profile image
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.UploadURLResponse "Presigned PUT URL and object key"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Account not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /me/image [post]
func (h *MemberHandler) RequestProfileImageUpload(c *gin.Context) {
	var req struct {
		ContentType string `json:"contentType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := callerObjectID(c)
	if !ok {
		return
	}

	resp, err := h.memberService.RequestProfileImageUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		respondProfileImageError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmProfileImageUpload godoc
// @Summary Confirm a profile image upload
// @Tags Profile
// @Accept json
// @Security BearerAuth
// @Param confirmation body ImageUploadConfirmRequest true "Uploaded object key"
// @Success 204 "Image recorded"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Account not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /me/image [put]
func (h *MemberHandler) ConfirmProfileImageUpload(c *gin.Context) {
	var req ImageUploadConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := callerObjectID(c)
	if !ok {
		return
	}

	if err := h.memberService.ConfirmProfileImageUpload(c.Request.Context(), userID, req.ObjectKey); err != nil {
		respondProfileImageError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetProfileImage godoc
// @Summary Get a temporary viewing URL for the caller's profile image
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "imageUrl (empty when no image uploaded)"
// @Failure 404 {object} gin.H "Account not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /me/image [get]
func (h *MemberHandler) GetProfileImage(c *gin.Context) {
	userID, ok := callerObjectID(c)
	if !ok {
		return
	}

	url, err := h.memberService.GetProfileImageURL(c.Request.Context(), userID)
	if err != nil {
		respondProfileImageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

// respondProfileImageError maps profile image service errors to status codes.
// Unrecognized errors are treated as input faults; the service validates
// content type and object key with plain errors.
func respondProfileImageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrImageUploadURLFailed):
		abortWithError(c, http.StatusInternalServerError, err.Error())
	default:
		abortWithError(c, http.StatusBadRequest, err.Error())
	}
}
