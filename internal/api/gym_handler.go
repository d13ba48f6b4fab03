package api

import (
	"errors"
	"musclefit/gym-app/internal/domain"
	"musclefit/gym-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GymHandler holds the gym service dependency.
type GymHandler struct {
	gymService service.GymService
}

// NewGymHandler creates a new GymHandler.
func NewGymHandler(gymService service.GymService) *GymHandler {
	return &GymHandler{gymService: gymService}
}

// UpdateGymInfoRequest defines the expected JSON for updating the gym profile.
type UpdateGymInfoRequest struct {
	Name            string                `json:"name" binding:"required"`
	Email           string                `json:"email" binding:"required,email"`
	Phone           string                `json:"phone" binding:"required"`
	Whatsapp        string                `json:"whatsapp"`
	Address         string                `json:"address" binding:"required"`
	City            string                `json:"city" binding:"required"`
	State           string                `json:"state" binding:"required"`
	PostalCode      string                `json:"postalCode" binding:"required"`
	Description     string                `json:"description"`
	EstablishedYear int                   `json:"establishedYear"`
	WorkingHours    []domain.WorkingHours `json:"workingHours"`
}

// ContactMessageRequest defines the expected JSON for a public enquiry.
type ContactMessageRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// GetInfo godoc
// @Summary Get the gym's public profile
// @Tags Gym
// @Produce json
// @Success 200 {object} domain.GymInfo "Gym profile"
// @Failure 404 {object} gin.H "Profile not configured yet"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /gym/info [get]
func (h *GymHandler) GetInfo(c *gin.Context) {
	info, err := h.gymService.GetInfo(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrGymInfoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve gym info.")
		}
		return
	}
	c.JSON(http.StatusOK, info)
}

// UpdateInfo godoc
// @Summary Update the gym's public profile
// @Description Owner-only. Creates the profile document on first update.
// @Tags Gym
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param info body UpdateGymInfoRequest true "Gym profile"
// @Success 200 {object} domain.GymInfo "Updated profile"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Forbidden (caller is not the owner)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /gym/info [put]
func (h *GymHandler) UpdateInfo(c *gin.Context) {
	var req UpdateGymInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user role from token.")
		return
	}

	info := &domain.GymInfo{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Whatsapp:        req.Whatsapp,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		PostalCode:      req.PostalCode,
		Description:     req.Description,
		EstablishedYear: req.EstablishedYear,
		WorkingHours:    req.WorkingHours,
	}

	updated, err := h.gymService.UpdateInfo(c.Request.Context(), role, info)
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update gym info.")
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SubmitContactMessage godoc
// @Summary Submit a contact enquiry
// @Description Public endpoint, no authentication required.
// @Tags Gym
// @Accept json
// @Produce json
// @Param message body ContactMessageRequest true "Enquiry"
// @Success 201 {object} domain.ContactMessage "Stored enquiry"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /gym/contact [post]
func (h *GymHandler) SubmitContactMessage(c *gin.Context) {
	var req ContactMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	msg := &domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	stored, err := h.gymService.SubmitContactMessage(c.Request.Context(), msg)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to submit message.")
		return
	}
	c.JSON(http.StatusCreated, stored)
}

// GetUnreadContactMessages godoc
// @Summary List unread contact enquiries
// @Description Owner-only.
// @Tags Gym
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.ContactMessage "Unread enquiries"
// @Failure 403 {object} gin.H "Forbidden (caller is not the owner)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /gym/contact/unread [get]
func (h *GymHandler) GetUnreadContactMessages(c *gin.Context) {
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user role from token.")
		return
	}

	messages, err := h.gymService.GetUnreadContactMessages(c.Request.Context(), role)
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve messages.")
		}
		return
	}
	c.JSON(http.StatusOK, messages)
}
