package api

import (
	"musclefit/gym-app/internal/domain"
	"musclefit/gym-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	dashboardService service.DashboardService,
	programService service.ProgramService,
	memberService service.MemberService,
	sessionService service.SessionService,
	gymService service.GymService,
) {
	authHandler := NewAuthHandler(authService)
	dashboardHandler := NewDashboardHandler(dashboardService)
	programHandler := NewProgramHandler(programService)
	memberHandler := NewMemberHandler(memberService)
	sessionHandler := NewSessionHandler(sessionService)
	gymHandler := NewGymHandler(gymService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Public catalog and gym profile. No token required.
		apiV1.GET("/programs", programHandler.ListPrograms)
		apiV1.GET("/programs/featured", programHandler.FeaturedPrograms)
		apiV1.GET("/programs/:id", programHandler.GetProgram)
		apiV1.GET("/trainers", memberHandler.ListTrainers)
		apiV1.GET("/gym/info", gymHandler.GetInfo)
		apiV1.POST("/gym/contact", gymHandler.SubmitContactMessage)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// Profile image for the authenticated account, any role.
		protected.GET("/me/image", memberHandler.GetProfileImage)
		protected.POST("/me/image", memberHandler.RequestProfileImageUpload)
		protected.PUT("/me/image", memberHandler.ConfirmProfileImageUpload)

		// GET /api/v1/dashboard - shape of the payload depends on the caller's role.
		protected.GET("/dashboard", dashboardHandler.GetDashboard)

		// --- Program management (trainer only) ---
		programGroup := protected.Group("/programs")
		programGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			programGroup.POST("", programHandler.CreateProgram)
			programGroup.PUT("/:id", programHandler.UpdateProgram)
			programGroup.DELETE("/:id", programHandler.DeactivateProgram)

			programGroup.POST("/:id/assign", programHandler.AssignProgram)
			programGroup.DELETE("/:id/unassign", programHandler.UnassignProgram)

			programGroup.POST("/:id/image", programHandler.RequestImageUploadURL)
			programGroup.PUT("/:id/image", programHandler.ConfirmImageUpload)
		}

		// --- Member directory ---
		memberGroup := protected.Group("/members")
		{
			// Listing is role-scoped inside the service.
			memberGroup.GET("", memberHandler.ListMembers)

			memberGroup.POST("", RoleMiddleware(domain.RoleOwner), memberHandler.CreateMember)
			memberGroup.PUT("/:id/trainer", RoleMiddleware(domain.RoleOwner), memberHandler.SetTrainer)
			memberGroup.PUT("/:id/status", RoleMiddleware(domain.RoleOwner), memberHandler.SetStatus)
		}

		// --- Sessions ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.GET("", sessionHandler.ListSessions)
			sessionGroup.POST("", RoleMiddleware(domain.RoleTrainer), sessionHandler.ScheduleSession)
			sessionGroup.PUT("/:id/attendance", RoleMiddleware(domain.RoleTrainer), sessionHandler.SetAttendance)
		}

		// --- Gym administration (owner only) ---
		gymGroup := protected.Group("/gym")
		gymGroup.Use(RoleMiddleware(domain.RoleOwner))
		{
			gymGroup.PUT("/info", gymHandler.UpdateInfo)
			gymGroup.GET("/contact/unread", gymHandler.GetUnreadContactMessages)
		}
	}
}
