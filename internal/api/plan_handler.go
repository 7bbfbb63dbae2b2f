package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"capifit/internal/domain"
	"capifit/internal/service"
)

// PlanHandler holds the plan and roster service dependencies. Assignment
// lives here because it links a plan to a student.
type PlanHandler struct {
	planService   service.PlanService
	rosterService service.RosterService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService, rosterService service.RosterService) *PlanHandler {
	return &PlanHandler{planService: planService, rosterService: rosterService}
}

// --- Request Structs ---

type CreatePlanRequest struct {
	Name    string `json:"name" binding:"required"`
	Details string `json:"details" binding:"required"`
}

type AssignPlanRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	PlanID    string `json:"planId" binding:"required"`
}

// planKind parses the :kind path parameter.
func planKind(c *gin.Context) (domain.PlanKind, bool) {
	kind := domain.PlanKind(c.Param("kind"))
	if !kind.Valid() {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Unknown plan kind '%s'", c.Param("kind")))
		return "", false
	}
	return kind, true
}

// --- Handler Methods ---

// ListPlans returns the caller's templates of one kind.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	tid, ok := trainerID(c)
	if !ok {
		return
	}
	kind, ok := planKind(c)
	if !ok {
		return
	}

	plans, err := h.planService.GetPlans(c.Request.Context(), tid, kind)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// CreatePlan creates a template and echoes it back with its server id.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	tid, ok := trainerID(c)
	if !ok {
		return
	}
	kind, ok := planKind(c)
	if !ok {
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), tid, kind, req.Name, req.Details)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// AssignPlan links a template to a student on the caller's roster.
func (h *PlanHandler) AssignPlan(c *gin.Context) {
	tid, ok := trainerID(c)
	if !ok {
		return
	}
	kind, ok := planKind(c)
	if !ok {
		return
	}

	var req AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	studentID, err := primitive.ObjectIDFromHex(req.StudentID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid student id")
		return
	}
	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan id")
		return
	}

	err = h.rosterService.AssignPlan(c.Request.Context(), tid, studentID, planID, kind)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPlanNotFound), errors.Is(err, service.ErrPlanAccessDenied):
			// Another trainer's plan reads as not-found. 403 is reserved
			// for authorization failures, which clients treat as a dead
			// session; it also avoids confirming the plan id exists.
			abortWithError(c, http.StatusNotFound, service.ErrPlanNotFound.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to assign plan")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan assigned"})
}
