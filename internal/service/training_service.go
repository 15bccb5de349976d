package service

import (
	"context"
	"errors"
	"time"

	"fitlog-app/internal/domain"
	"fitlog-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTrainingNotFound   = errors.New("training not found")
	ErrTrainingConflict   = errors.New("you already have a training that day")
	ErrTrainingValidation = errors.New("training validation failed")
	ErrUserNotFound       = errors.New("user not found")
)

// --- Inputs / Outputs ---

// TrainingExerciseInput is one line item supplied by the client. Supplying an
// exercises slice always replaces the training's full list.
type TrainingExerciseInput struct {
	ExerciseID primitive.ObjectID
	Weight     *float64 // Kilograms, nil for bodyweight work
	Sets       int
	Reps       int
}

// CreateTrainingInput carries the creation parameters.
// Init with no exercises starts an empty in_progress logging session;
// otherwise the training is created done by default (or with the explicitly
// requested status) together with its exercises in one insert.
type CreateTrainingInput struct {
	Date      time.Time
	Init      bool
	Status    *domain.TrainingStatus
	Exercises []TrainingExerciseInput
}

// UpdateTrainingPatch carries the PATCH semantics: nil fields are untouched,
// a non-nil Exercises pointer replaces the full list (empty slice clears it).
type UpdateTrainingPatch struct {
	Date      *time.Time
	Status    *domain.TrainingStatus
	Exercises *[]TrainingExerciseInput
}

// TrainingExerciseDetail is a line item with its catalog name resolved.
type TrainingExerciseDetail struct {
	domain.TrainingExercise
	ExerciseName string
}

// TrainingDetail is a training with name-annotated line items, the shape the
// API returns.
type TrainingDetail struct {
	Training  domain.Training
	Exercises []TrainingExerciseDetail
}

// --- Service Interface ---

// TrainingService owns the lifecycle of workout-logging sessions: creation,
// in-progress autosave, completion, and the invariant that a user has at most
// one finished training per UTC calendar day.
type TrainingService interface {
	ListTrainings(ctx context.Context, userID primitive.ObjectID) ([]TrainingDetail, error)
	GetTraining(ctx context.Context, userID, trainingID primitive.ObjectID) (*TrainingDetail, error)
	CreateTraining(ctx context.Context, userID primitive.ObjectID, input CreateTrainingInput) (*TrainingDetail, error)
	UpdateTraining(ctx context.Context, userID, trainingID primitive.ObjectID, patch UpdateTrainingPatch) (*TrainingDetail, error)
	DeleteTraining(ctx context.Context, userID, trainingID primitive.ObjectID) error
}

// --- Service Implementation ---

type trainingService struct {
	trainingRepo repository.TrainingRepository
	exerciseRepo repository.ExerciseRepository
	userRepo     repository.UserRepository
}

// NewTrainingService creates a new instance of trainingService.
func NewTrainingService(trainingRepo repository.TrainingRepository, exerciseRepo repository.ExerciseRepository, userRepo repository.UserRepository) TrainingService {
	return &trainingService{
		trainingRepo: trainingRepo,
		exerciseRepo: exerciseRepo,
		userRepo:     userRepo,
	}
}

// ListTrainings returns all trainings of the user, newest first.
func (s *trainingService) ListTrainings(ctx context.Context, userID primitive.ObjectID) ([]TrainingDetail, error) {
	trainings, err := s.trainingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	names, err := s.exerciseNames(ctx, userID)
	if err != nil {
		return nil, err
	}
	details := make([]TrainingDetail, len(trainings))
	for i := range trainings {
		details[i] = annotate(trainings[i], names)
	}
	return details, nil
}

// GetTraining returns one training of the user. A training owned by someone
// else is reported as not found, never as forbidden.
func (s *trainingService) GetTraining(ctx context.Context, userID, trainingID primitive.ObjectID) (*TrainingDetail, error) {
	training, err := s.getOwned(ctx, userID, trainingID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, training)
}

// CreateTraining creates a new training for the given calendar day.
//
// No same-day conflict check happens here; the one-finished-per-day rule is
// only enforced when a training transitions to done (UpdateTraining). An
// in_progress training can therefore be started for a day that already has a
// finished one, and the conflict surfaces at completion time.
func (s *trainingService) CreateTraining(ctx context.Context, userID primitive.ObjectID, input CreateTrainingInput) (*TrainingDetail, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	training := &domain.Training{
		UserID: userID,
		Date:   domain.TruncateToDay(input.Date),
	}

	if input.Init && len(input.Exercises) == 0 {
		// Start of a new logging session: empty, in progress.
		training.Status = domain.StatusInProgress
		training.Exercises = []domain.TrainingExercise{}
	} else {
		training.Status = domain.StatusDone
		if input.Status != nil {
			if !input.Status.Valid() {
				return nil, ErrTrainingValidation
			}
			training.Status = *input.Status
		}
		exercises, err := buildExercises(input.Exercises)
		if err != nil {
			return nil, err
		}
		training.Exercises = exercises
	}

	id, err := s.trainingRepo.Create(ctx, training)
	if err != nil {
		return nil, err
	}
	training.ID = id
	return s.detail(ctx, training)
}

// UpdateTraining applies a partial update. Date is applied first, then the
// exercise list replacement, then the status transition; the conflict check
// therefore runs against the patched date.
func (s *trainingService) UpdateTraining(ctx context.Context, userID, trainingID primitive.ObjectID, patch UpdateTrainingPatch) (*TrainingDetail, error) {
	training, err := s.getOwned(ctx, userID, trainingID)
	if err != nil {
		return nil, err
	}

	if patch.Date != nil {
		training.Date = domain.TruncateToDay(*patch.Date)
	}

	if patch.Exercises != nil {
		exercises, err := buildExercises(*patch.Exercises)
		if err != nil {
			return nil, err
		}
		training.Exercises = exercises
	}

	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, ErrTrainingValidation
		}
		switch *patch.Status {
		case domain.StatusDone:
			start, end := domain.DayRange(training.Date)
			_, err := s.trainingRepo.FindDoneInRange(ctx, userID, start, end, training.ID)
			if err == nil {
				// Another finished training already occupies this day.
				// Nothing has been persisted yet, so every field is unchanged.
				return nil, ErrTrainingConflict
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			training.Status = domain.StatusDone
		case domain.StatusInProgress:
			// A finished training never regresses; a stale autosave asking
			// for in_progress is ignored for the status field while its
			// date/exercise changes still apply.
			if domain.CanTransition(training.Status, domain.StatusInProgress) {
				training.Status = domain.StatusInProgress
			}
		}
	}

	if err := s.trainingRepo.Update(ctx, training); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}
	return s.detail(ctx, training)
}

// DeleteTraining removes a training and all of its exercise entries.
func (s *trainingService) DeleteTraining(ctx context.Context, userID, trainingID primitive.ObjectID) error {
	err := s.trainingRepo.Delete(ctx, trainingID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainingNotFound
		}
		return err
	}
	return nil
}

// --- Helpers ---

// getOwned fetches a training and folds foreign ownership into not-found so
// existence of other users' trainings never leaks.
func (s *trainingService) getOwned(ctx context.Context, userID, trainingID primitive.ObjectID) (*domain.Training, error) {
	training, err := s.trainingRepo.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}
	if training.UserID != userID {
		return nil, ErrTrainingNotFound
	}
	return training, nil
}

// buildExercises validates the supplied line items and assigns fresh IDs.
// The whole list replaces whatever the training had before.
func buildExercises(inputs []TrainingExerciseInput) ([]domain.TrainingExercise, error) {
	exercises := make([]domain.TrainingExercise, len(inputs))
	for i, in := range inputs {
		if in.ExerciseID == primitive.NilObjectID || in.Sets <= 0 || in.Reps <= 0 {
			return nil, ErrTrainingValidation
		}
		exercises[i] = domain.TrainingExercise{
			ID:         primitive.NewObjectID(),
			ExerciseID: in.ExerciseID,
			Weight:     in.Weight,
			Sets:       in.Sets,
			Reps:       in.Reps,
		}
	}
	return exercises, nil
}

// exerciseNames loads the user's catalog once and maps id -> name.
func (s *trainingService) exerciseNames(ctx context.Context, userID primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	catalog, err := s.exerciseRepo.GetByOwnerID(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(catalog))
	for _, ex := range catalog {
		names[ex.ID] = ex.Name
	}
	return names, nil
}

func (s *trainingService) detail(ctx context.Context, training *domain.Training) (*TrainingDetail, error) {
	names, err := s.exerciseNames(ctx, training.UserID)
	if err != nil {
		return nil, err
	}
	d := annotate(*training, names)
	return &d, nil
}

func annotate(training domain.Training, names map[primitive.ObjectID]string) TrainingDetail {
	items := make([]TrainingExerciseDetail, len(training.Exercises))
	for i, ex := range training.Exercises {
		items[i] = TrainingExerciseDetail{
			TrainingExercise: ex,
			ExerciseName:     names[ex.ExerciseID], // Empty if the catalog entry was deleted
		}
	}
	return TrainingDetail{Training: training, Exercises: items}
}
