package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanKind distinguishes the two template collections. They are structurally
// identical; only the kind differs.
type PlanKind string

const (
	KindWorkout PlanKind = "workout"
	KindDiet    PlanKind = "diet"
)

// Valid reports whether k is one of the two known kinds.
func (k PlanKind) Valid() bool {
	return k == KindWorkout || k == KindDiet
}

// PlanTemplate is a reusable, named workout or diet plan. Templates are
// shared: zero or more students may reference one, and there is no
// deletion path. Duplicate names are possible (creation is not
// deduplicated server-side); clients resolve by first match.
type PlanTemplate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	Kind      PlanKind           `bson:"kind" json:"kind"`
	Name      string             `bson:"name" json:"name"`
	Details   string             `bson:"details" json:"details"` // Free-text body (markdown)
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
