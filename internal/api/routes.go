package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"capifit/internal/ai"
	"capifit/internal/domain"
	"capifit/internal/service"
)

// SetupRoutes wires all handlers under /api/v1.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	rosterService service.RosterService,
	planService service.PlanService,
	suggester ai.Suggester,
) {
	authHandler := NewAuthHandler(authService)
	studentHandler := NewStudentHandler(rosterService)
	planHandler := NewPlanHandler(planService, rosterService)
	aiHandler := NewAIHandler(suggester)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
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
			role, _ := c.Get(ContextUserRoleKey)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Roster (trainer only) ---
		students := protected.Group("/students")
		students.Use(RoleMiddleware(domain.RoleTrainer))
		{
			students.GET("", studentHandler.ListStudents)
			students.POST("", studentHandler.CreateStudent)
			students.POST("/:id/measurements", studentHandler.AddMeasurement)
			students.POST("/:id/photos", studentHandler.AddPhoto)
		}

		// --- Plan templates (trainer only) ---
		plans := protected.Group("/plans")
		plans.Use(RoleMiddleware(domain.RoleTrainer))
		{
			plans.GET("/:kind", planHandler.ListPlans)
			plans.POST("/:kind", planHandler.CreatePlan)
			plans.POST("/:kind/assign", planHandler.AssignPlan)
		}

		// --- AI suggestions ---
		protected.POST("/ai/suggestion", aiHandler.Suggest)
	}
}
