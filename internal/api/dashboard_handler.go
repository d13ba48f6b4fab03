package api

import (
	"errors"
	"musclefit/gym-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardHandler holds the dashboard service dependency.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary Get the role-specific dashboard
// @Description Returns the owner, trainer, or member snapshot depending on the caller's role.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "Role-specific dashboard body"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error (including unknown stored role)"
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify role from token.")
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), userID, role)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			// A role outside the known set is stored-data corruption,
			// not something the client can fix by retrying.
			abortWithError(c, http.StatusInternalServerError, "Account role is invalid.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to build dashboard.")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
