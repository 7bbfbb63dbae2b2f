package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"capifit/internal/domain"
	"capifit/internal/service"
)

// StudentHandler holds the roster service dependency.
type StudentHandler struct {
	rosterService service.RosterService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(rosterService service.RosterService) *StudentHandler {
	return &StudentHandler{rosterService: rosterService}
}

// --- Request Structs ---

type CreateStudentRequest struct {
	Name   string                    `json:"name" binding:"required"`
	Email  string                    `json:"email" binding:"required,email"`
	Plan   string                    `json:"plan"`
	Status domain.SubscriptionStatus `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

type AddMeasurementRequest struct {
	Date    time.Time `json:"date"`
	Weight  float64   `json:"weight" binding:"required,gt=0"`
	BodyFat *float64  `json:"bodyFat"`
	Chest   *float64  `json:"chest"`
	Waist   *float64  `json:"waist"`
	Hips    *float64  `json:"hips"`
}

type AddPhotoRequest struct {
	ContentType string `json:"contentType"`
}

type AddPhotoResponse struct {
	Photo     domain.ProgressPhoto `json:"photo"`
	UploadURL string               `json:"uploadUrl"`
}

// trainerID extracts and parses the authenticated caller's id.
func trainerID(c *gin.Context) (primitive.ObjectID, bool) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Invalid user ID in token")
		return primitive.NilObjectID, false
	}
	return id, true
}

// --- Handler Methods ---

// ListStudents returns the caller's roster.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	tid, ok := trainerID(c)
	if !ok {
		return
	}

	students, err := h.rosterService.GetStudents(c.Request.Context(), tid)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch students")
		return
	}
	c.JSON(http.StatusOK, students)
}

// CreateStudent adds a student to the caller's roster and returns the full
// created record, derived fields included.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	tid, ok := trainerID(c)
	if !ok {
		return
	}

	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	student, err := h.rosterService.AddStudent(c.Request.Context(), tid, req.Name, req.Email, req.Plan, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrStudentAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create student")
		}
		return
	}
	c.JSON(http.StatusCreated, student)
}

// AddMeasurement appends a measurement sample to a student.
func (h *StudentHandler) AddMeasurement(c *gin.Context) {
	tid, ok := trainerID(c)
	if !ok {
		return
	}
	sid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid student id")
		return
	}

	var req AddMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	m := domain.Measurement{
		Date:    req.Date,
		Weight:  req.Weight,
		BodyFat: req.BodyFat,
		Chest:   req.Chest,
		Waist:   req.Waist,
		Hips:    req.Hips,
	}
	err = h.rosterService.AddMeasurement(c.Request.Context(), tid, sid, m)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrMeasurementOutOfOrder):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record measurement")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "measurement recorded"})
}

// AddPhoto records a progress photo entry and returns a presigned upload URL.
func (h *StudentHandler) AddPhoto(c *gin.Context) {
	tid, ok := trainerID(c)
	if !ok {
		return
	}
	sid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid student id")
		return
	}

	// Body is optional; the default content type is used when absent.
	var req AddPhotoRequest
	_ = c.ShouldBindJSON(&req)

	upload, err := h.rosterService.AddProgressPhoto(c.Request.Context(), tid, sid, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to prepare photo upload")
		}
		return
	}
	c.JSON(http.StatusCreated, AddPhotoResponse{Photo: upload.Photo, UploadURL: upload.UploadURL})
}
