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

const studentCollectionName = "students"

// mongoStudentRepository implements repository.StudentRepository using MongoDB.
// A student is a single document, so creation and the append-only updates
// are atomic without multi-document transactions.
type mongoStudentRepository struct {
	collection *mongo.Collection
}

// NewMongoStudentRepository creates a new instance of mongoStudentRepository.
func NewMongoStudentRepository(db *mongo.Database) repository.StudentRepository {
	return &mongoStudentRepository{collection: db.Collection(studentCollectionName)}
}

// EnsureStudentIndexes creates the per-trainer unique email index and the
// roster lookup index.
func EnsureStudentIndexes(ctx context.Context, collection *mongo.Collection) {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "trainerId", Value: 1}},
		},
	})
	if err != nil {
		log.Printf("WARN: could not ensure student indexes: %v", err)
	}
}

// Create inserts a new student. Photos and measurements are seeded as empty
// sequences so clients always receive arrays, never null.
func (r *mongoStudentRepository) Create(ctx context.Context, student *domain.Student) (primitive.ObjectID, error) {
	if student.Email == "" || student.TrainerID.IsZero() {
		return primitive.NilObjectID, errors.New("student email and trainer id are required")
	}

	student.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	if student.Photos == nil {
		student.Photos = []domain.ProgressPhoto{}
	}
	if student.Measurements == nil {
		student.Measurements = []domain.Measurement{}
	}

	result, err := r.collection.InsertOne(ctx, student)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoStudentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Student, error) {
	var student domain.Student
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// GetByTrainerID returns the trainer's full roster, oldest first.
func (r *mongoStudentRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Student, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"trainerId": trainerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	students := []domain.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// SetPlanID links (or with a nil planID, unlinks) a plan template. The
// filter includes trainerId so a trainer can only touch their own roster.
func (r *mongoStudentRepository) SetPlanID(ctx context.Context, studentID, trainerID primitive.ObjectID, kind domain.PlanKind, planID *primitive.ObjectID) error {
	field := "workoutPlanId"
	if kind == domain.KindDiet {
		field = "dietPlanId"
	}

	var update bson.M
	if planID == nil {
		update = bson.M{
			"$unset": bson.M{field: ""},
			"$set":   bson.M{"updatedAt": time.Now().UTC()},
		}
	} else {
		update = bson.M{
			"$set": bson.M{field: *planID, "updatedAt": time.Now().UTC()},
		}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": studentID, "trainerId": trainerID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AppendMeasurement pushes one sample onto the append-only sequence.
func (r *mongoStudentRepository) AppendMeasurement(ctx context.Context, studentID, trainerID primitive.ObjectID, m domain.Measurement) error {
	update := bson.M{
		"$push": bson.M{"measurements": m},
		"$set":  bson.M{"updatedAt": time.Now().UTC(), "lastActive": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": studentID, "trainerId": trainerID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AppendPhoto pushes one photo entry onto the append-only sequence.
func (r *mongoStudentRepository) AppendPhoto(ctx context.Context, studentID, trainerID primitive.ObjectID, p domain.ProgressPhoto) error {
	update := bson.M{
		"$push": bson.M{"photos": p},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": studentID, "trainerId": trainerID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
