package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"capifit/internal/domain"
	"capifit/internal/service"
)

// MockRosterService is a mock implementation of service.RosterService.
type MockRosterService struct {
	mock.Mock
}

func (m *MockRosterService) AddStudent(ctx context.Context, trainerID primitive.ObjectID, name, email, plan string, status domain.SubscriptionStatus) (*domain.Student, error) {
	args := m.Called(ctx, trainerID, name, email, plan, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockRosterService) GetStudents(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Student, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Student), args.Error(1)
}

func (m *MockRosterService) AssignPlan(ctx context.Context, trainerID, studentID, planID primitive.ObjectID, kind domain.PlanKind) error {
	args := m.Called(ctx, trainerID, studentID, planID, kind)
	return args.Error(0)
}

func (m *MockRosterService) AddMeasurement(ctx context.Context, trainerID, studentID primitive.ObjectID, meas domain.Measurement) error {
	args := m.Called(ctx, trainerID, studentID, meas)
	return args.Error(0)
}

func (m *MockRosterService) AddProgressPhoto(ctx context.Context, trainerID, studentID primitive.ObjectID, contentType string) (*service.PhotoUpload, error) {
	args := m.Called(ctx, trainerID, studentID, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PhotoUpload), args.Error(1)
}

// MockPlanService is a mock implementation of service.PlanService.
type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) CreatePlan(ctx context.Context, trainerID primitive.ObjectID, kind domain.PlanKind, name, details string) (*domain.PlanTemplate, error) {
	args := m.Called(ctx, trainerID, kind, name, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanTemplate), args.Error(1)
}

func (m *MockPlanService) GetPlans(ctx context.Context, trainerID primitive.ObjectID, kind domain.PlanKind) ([]domain.PlanTemplate, error) {
	args := m.Called(ctx, trainerID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanTemplate), args.Error(1)
}

// asTrainer injects the auth context the middleware would have set.
func asTrainer(trainerID primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserIDKey, trainerID.Hex())
		c.Set(ContextUserRoleKey, domain.RoleTrainer)
		c.Next()
	}
}

func planRouter(trainerID primitive.ObjectID, roster *MockRosterService, plans *MockPlanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPlanHandler(plans, roster)
	grp := r.Group("/plans", asTrainer(trainerID))
	grp.GET("/:kind", h.ListPlans)
	grp.POST("/:kind", h.CreatePlan)
	grp.POST("/:kind/assign", h.AssignPlan)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAssignPlanStatusMapping(t *testing.T) {
	trainerID := primitive.NewObjectID()
	studentID := primitive.NewObjectID()
	planID := primitive.NewObjectID()
	body := `{"studentId":"` + studentID.Hex() + `","planId":"` + planID.Hex() + `"}`

	cases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"unknown student", service.ErrStudentNotFound, http.StatusNotFound},
		{"unknown plan", service.ErrPlanNotFound, http.StatusNotFound},
		// A foreign plan must not surface as 403: clients reserve that
		// status for session death.
		{"foreign plan", service.ErrPlanAccessDenied, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			roster := new(MockRosterService)
			roster.On("AssignPlan", mock.Anything, trainerID, studentID, planID, domain.KindWorkout).
				Return(tc.serviceErr)

			r := planRouter(trainerID, roster, new(MockPlanService))
			w := postJSON(r, "/plans/workout/assign", body)
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestAssignPlanRejectsBadInput(t *testing.T) {
	trainerID := primitive.NewObjectID()
	roster := new(MockRosterService)
	r := planRouter(trainerID, roster, new(MockPlanService))

	w := postJSON(r, "/plans/cardio/assign", `{"studentId":"x","planId":"y"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/plans/workout/assign", `{"studentId":"not-hex","planId":"`+primitive.NewObjectID().Hex()+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/plans/workout/assign", `{"planId":"`+primitive.NewObjectID().Hex()+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	roster.AssertNotCalled(t, "AssignPlan", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePlanEchoesServerID(t *testing.T) {
	trainerID := primitive.NewObjectID()
	created := &domain.PlanTemplate{
		ID:        primitive.NewObjectID(),
		TrainerID: trainerID,
		Kind:      domain.KindDiet,
		Name:      "Cutting",
		Details:   "1800 kcal",
	}
	plans := new(MockPlanService)
	plans.On("CreatePlan", mock.Anything, trainerID, domain.KindDiet, "Cutting", "1800 kcal").
		Return(created, nil)

	r := planRouter(trainerID, new(MockRosterService), plans)
	w := postJSON(r, "/plans/diet", `{"name":"Cutting","details":"1800 kcal"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), created.ID.Hex())
}
