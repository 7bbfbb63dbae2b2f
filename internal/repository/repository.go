package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"capifit/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with login accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// StudentRepository defines the interface for interacting with roster data.
// Creation must be all-or-nothing: a student either appears fully formed
// (with its derived fields) or not at all.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Student, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Student, error)
	// SetPlanID links a plan template to the student. A nil planID clears
	// the link.
	SetPlanID(ctx context.Context, studentID, trainerID primitive.ObjectID, kind domain.PlanKind, planID *primitive.ObjectID) error
	AppendMeasurement(ctx context.Context, studentID, trainerID primitive.ObjectID, m domain.Measurement) error
	AppendPhoto(ctx context.Context, studentID, trainerID primitive.ObjectID, p domain.ProgressPhoto) error
}

// PlanRepository defines the interface for interacting with plan templates.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.PlanTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanTemplate, error)
	GetByTrainerAndKind(ctx context.Context, trainerID primitive.ObjectID, kind domain.PlanKind) ([]domain.PlanTemplate, error)
}
