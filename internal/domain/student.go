package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionStatus tracks whether a student's subscription is current.
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "Active"
	StatusInactive SubscriptionStatus = "Inactive"
)

// ProgressPhoto is one entry in a student's photo history.
// The sequence is append-only; photos are never edited in place.
type ProgressPhoto struct {
	ID        string    `bson:"id" json:"id"`
	Date      time.Time `bson:"date" json:"date"`
	URL       string    `bson:"url" json:"url"`
	ObjectKey string    `bson:"objectKey,omitempty" json:"-"` // S3 key, server-side only
}

// Measurement is one dated body-measurement sample. Samples are appended
// in chronological order and never rewritten.
type Measurement struct {
	Date    time.Time `bson:"date" json:"date"`
	Weight  float64   `bson:"weight" json:"weight"` // kg
	BodyFat *float64  `bson:"bodyFat,omitempty" json:"bodyFat,omitempty"`
	Chest   *float64  `bson:"chest,omitempty" json:"chest,omitempty"` // cm
	Waist   *float64  `bson:"waist,omitempty" json:"waist,omitempty"`
	Hips    *float64  `bson:"hips,omitempty" json:"hips,omitempty"`
}

// Student is a trainee on a trainer's roster. WorkoutPlanID/DietPlanID are
// nullable references into the plan template collection; a reference the
// client cannot resolve is shown as "unknown plan", not treated as fatal.
type Student struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TrainerID     primitive.ObjectID  `bson:"trainerId" json:"trainerId"`
	Name          string              `bson:"name" json:"name"`
	Email         string              `bson:"email" json:"email"` // Unique per trainer roster
	AvatarURL     string              `bson:"avatarUrl" json:"avatarUrl"`
	Plan          string              `bson:"plan" json:"plan"` // Subscription label, e.g. "Premium Monthly"
	Status        SubscriptionStatus  `bson:"status" json:"status"`
	LastActive    time.Time           `bson:"lastActive" json:"lastActive"`
	WorkoutPlanID *primitive.ObjectID `bson:"workoutPlanId,omitempty" json:"workoutPlanId,omitempty"`
	DietPlanID    *primitive.ObjectID `bson:"dietPlanId,omitempty" json:"dietPlanId,omitempty"`
	Photos        []ProgressPhoto     `bson:"photos" json:"progressPhotos"`
	Measurements  []Measurement       `bson:"measurements" json:"measurements"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}
