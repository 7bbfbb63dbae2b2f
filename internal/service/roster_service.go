package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"capifit/internal/domain"
	"capifit/internal/repository"
	"capifit/internal/storage"
)

// --- Error Definitions ---
var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrStudentAlreadyExists  = errors.New("a student with this email is already on the roster")
	ErrPlanNotFound          = errors.New("plan template not found")
	ErrPlanAccessDenied      = errors.New("plan template belongs to another trainer")
	ErrMeasurementOutOfOrder = errors.New("measurement date precedes the last recorded sample")
)

// PhotoUpload is the server's answer to a photo-upload request: the
// recorded roster entry plus a presigned URL the client PUTs the image to.
type PhotoUpload struct {
	Photo     domain.ProgressPhoto
	UploadURL string
}

// RosterService manages a trainer's student roster: creation, listing,
// plan assignment, and the append-only measurement/photo sequences.
type RosterService interface {
	AddStudent(ctx context.Context, trainerID primitive.ObjectID, name, email, plan string, status domain.SubscriptionStatus) (*domain.Student, error)
	GetStudents(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Student, error)
	AssignPlan(ctx context.Context, trainerID, studentID, planID primitive.ObjectID, kind domain.PlanKind) error
	AddMeasurement(ctx context.Context, trainerID, studentID primitive.ObjectID, m domain.Measurement) error
	AddProgressPhoto(ctx context.Context, trainerID, studentID primitive.ObjectID, contentType string) (*PhotoUpload, error)
}

// rosterService implements the RosterService interface.
type rosterService struct {
	studentRepo repository.StudentRepository
	planRepo    repository.PlanRepository
	photos      storage.FileStorage
}

// NewRosterService creates a new instance of rosterService.
func NewRosterService(studentRepo repository.StudentRepository, planRepo repository.PlanRepository, photos storage.FileStorage) RosterService {
	return &rosterService{
		studentRepo: studentRepo,
		planRepo:    planRepo,
		photos:      photos,
	}
}

// AddStudent creates a roster entry. The server owns the derived fields:
// the generated avatar URL, the lastActive marker, and the empty photo and
// measurement seeds. The insert is a single document, so the student
// appears all-or-nothing.
func (s *rosterService) AddStudent(ctx context.Context, trainerID primitive.ObjectID, name, email, plan string, status domain.SubscriptionStatus) (*domain.Student, error) {
	if name == "" || email == "" {
		return nil, errors.New("student name and email cannot be empty")
	}
	if status == "" {
		status = domain.StatusActive
	}

	student := &domain.Student{
		TrainerID:  trainerID,
		Name:       name,
		Email:      email,
		AvatarURL:  avatarURL(name),
		Plan:       plan,
		Status:     status,
		LastActive: time.Now().UTC(),
	}

	id, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrStudentAlreadyExists
		}
		return nil, err
	}
	student.ID = id
	return student, nil
}

// avatarURL derives a stable placeholder avatar from the student name.
func avatarURL(name string) string {
	seed := strings.ReplaceAll(name, " ", "")
	if seed == "" {
		seed = uuid.NewString()
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/200/200", seed)
}

func (s *rosterService) GetStudents(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Student, error) {
	return s.studentRepo.GetByTrainerID(ctx, trainerID)
}

// AssignPlan links an existing plan template to a student on the trainer's
// roster. Both ends are validated first: an unknown student or plan is a
// not-found failure, and a plan owned by another trainer is rejected.
func (s *rosterService) AssignPlan(ctx context.Context, trainerID, studentID, planID primitive.ObjectID, kind domain.PlanKind) error {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if plan.TrainerID != trainerID {
		return ErrPlanAccessDenied
	}
	if plan.Kind != kind {
		return ErrPlanNotFound
	}

	err = s.studentRepo.SetPlanID(ctx, studentID, trainerID, kind, &planID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrStudentNotFound
	}
	return err
}

// AddMeasurement appends one dated sample. The sequence is chronological:
// a sample dated before the latest recorded one is rejected.
func (s *rosterService) AddMeasurement(ctx context.Context, trainerID, studentID primitive.ObjectID, m domain.Measurement) error {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	if student.TrainerID != trainerID {
		return ErrStudentNotFound
	}
	// Default the date before the ordering check so a dateless sample is
	// compared as "now", not as the zero time.
	if m.Date.IsZero() {
		m.Date = time.Now().UTC()
	}
	if n := len(student.Measurements); n > 0 && m.Date.Before(student.Measurements[n-1].Date) {
		return ErrMeasurementOutOfOrder
	}

	err = s.studentRepo.AppendMeasurement(ctx, studentID, trainerID, m)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrStudentNotFound
	}
	return err
}

// AddProgressPhoto records a photo entry and returns a presigned upload URL
// for the image itself. The download URL stored on the entry is presigned
// lazily by clients that need it; here we store the object key and a
// long-form URL.
func (s *rosterService) AddProgressPhoto(ctx context.Context, trainerID, studentID primitive.ObjectID, contentType string) (*PhotoUpload, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}

	photoID := uuid.NewString()
	objectKey := fmt.Sprintf("progress/%s/%s", studentID.Hex(), photoID)

	uploadURL, err := s.photos.GeneratePresignedUploadURL(ctx, objectKey, contentType, 0)
	if err != nil {
		return nil, err
	}
	viewURL, err := s.photos.GeneratePresignedDownloadURL(ctx, objectKey, 0)
	if err != nil {
		return nil, err
	}

	photo := domain.ProgressPhoto{
		ID:        photoID,
		Date:      time.Now().UTC(),
		URL:       viewURL,
		ObjectKey: objectKey,
	}

	err = s.studentRepo.AppendPhoto(ctx, studentID, trainerID, photo)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &PhotoUpload{Photo: photo, UploadURL: uploadURL}, nil
}
