package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"capifit/internal/domain"
	"capifit/internal/repository"
)

const planCollectionName = "plan_templates"

// mongoPlanRepository implements repository.PlanRepository using MongoDB.
// Names are deliberately NOT unique: duplicate named templates are possible
// and clients resolve by first match.
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new instance of mongoPlanRepository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{collection: db.Collection(planCollectionName)}
}

// EnsurePlanIndexes creates the trainer+kind listing index.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "trainerId", Value: 1}, {Key: "kind", Value: 1}},
	})
	if err != nil {
		log.Printf("WARN: could not ensure plan indexes: %v", err)
	}
}

// Create inserts a new plan template.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.PlanTemplate) (primitive.ObjectID, error) {
	if plan.Name == "" || !plan.Kind.Valid() || plan.TrainerID.IsZero() {
		return primitive.NilObjectID, errors.New("plan name, kind, and trainer id are required")
	}

	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanTemplate, error) {
	var plan domain.PlanTemplate
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByTrainerAndKind lists the trainer's templates of one kind, oldest first.
func (r *mongoPlanRepository) GetByTrainerAndKind(ctx context.Context, trainerID primitive.ObjectID, kind domain.PlanKind) ([]domain.PlanTemplate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"trainerId": trainerID, "kind": kind}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []domain.PlanTemplate{}
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}
