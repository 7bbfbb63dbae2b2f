package gateway

import (
	"context"

	"capifit/internal/domain"
)

// TokenSource supplies the bearer credential of the current session.
// An empty string means no session; the call goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// StudentDraft is the client-supplied part of a new student. The server
// owns every derived field (id, avatar URL, lastActive, empty photo and
// measurement sequences).
type StudentDraft struct {
	Name   string                    `json:"name"`
	Email  string                    `json:"email"`
	Plan   string                    `json:"plan"`
	Status domain.SubscriptionStatus `json:"status"`
}

// PlanDraft names and describes a plan template to be created.
type PlanDraft struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

// RegisterInput carries a new account registration.
type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// LoginResult is a successful authentication: the bearer token plus the
// authenticated user's identity.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Gateway performs the authenticated remote calls for each resource.
// Implementations normalize every failure into ValidationError or
// RemoteError and never mutate session or application state; callers do.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, in RegisterInput) (string, error)
	ListStudents(ctx context.Context) ([]domain.Student, error)
	CreateStudent(ctx context.Context, draft StudentDraft) (*domain.Student, error)
	ListPlans(ctx context.Context, kind domain.PlanKind) ([]domain.PlanTemplate, error)
	CreatePlan(ctx context.Context, kind domain.PlanKind, draft PlanDraft) (*domain.PlanTemplate, error)
	AssignPlan(ctx context.Context, kind domain.PlanKind, studentID, planID string) error
	RequestSuggestion(ctx context.Context, kind domain.PlanKind, prompt string) (string, error)
}
