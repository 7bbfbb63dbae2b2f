package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"capifit/internal/domain"
	"capifit/internal/repository"
)

var ErrInvalidPlanKind = errors.New("plan kind must be workout or diet")

// PlanService manages reusable plan templates. Creation is not
// deduplicated by name: the create-or-reuse decision belongs to clients,
// which resolve by case-insensitive name against their cache.
type PlanService interface {
	CreatePlan(ctx context.Context, trainerID primitive.ObjectID, kind domain.PlanKind, name, details string) (*domain.PlanTemplate, error)
	GetPlans(ctx context.Context, trainerID primitive.ObjectID, kind domain.PlanKind) ([]domain.PlanTemplate, error)
}

// planService implements the PlanService interface.
type planService struct {
	planRepo repository.PlanRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

func (s *planService) CreatePlan(ctx context.Context, trainerID primitive.ObjectID, kind domain.PlanKind, name, details string) (*domain.PlanTemplate, error) {
	if !kind.Valid() {
		return nil, ErrInvalidPlanKind
	}
	if name == "" || details == "" {
		return nil, errors.New("plan name and details cannot be empty")
	}

	plan := &domain.PlanTemplate{
		TrainerID: trainerID,
		Kind:      kind,
		Name:      name,
		Details:   details,
	}
	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *planService) GetPlans(ctx context.Context, trainerID primitive.ObjectID, kind domain.PlanKind) ([]domain.PlanTemplate, error) {
	if !kind.Valid() {
		return nil, ErrInvalidPlanKind
	}
	return s.planRepo.GetByTrainerAndKind(ctx, trainerID, kind)
}
