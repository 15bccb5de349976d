package service

import (
	"context"
	"errors"

	"fitlog-app/internal/domain"
	"fitlog-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidationFailed = errors.New("exercise validation failed")
)

// ExerciseService manages a user's personal exercise catalog.
type ExerciseService interface {
	CreateExercise(ctx context.Context, ownerID primitive.ObjectID, name, description, muscleGroup string) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, ownerID, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	GetExercisesByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID, name, description, muscleGroup string) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID) error
}

// --- Service Implementation ---

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// CreateExercise adds a new entry to the owner's catalog.
func (s *exerciseService) CreateExercise(ctx context.Context, ownerID primitive.ObjectID, name, description, muscleGroup string) (*domain.Exercise, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required to create an exercise")
	}

	exercise := &domain.Exercise{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		MuscleGroup: muscleGroup,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

// GetExerciseByID retrieves a single catalog entry. Entries owned by other
// users are reported as not found.
func (s *exerciseService) GetExerciseByID(ctx context.Context, ownerID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.OwnerID != ownerID {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

// GetExercisesByOwner retrieves the whole catalog of a user.
func (s *exerciseService) GetExercisesByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Exercise, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID cannot be nil")
	}
	return s.exerciseRepo.GetByOwnerID(ctx, ownerID)
}

// UpdateExercise updates an existing catalog entry, ensuring ownership.
func (s *exerciseService) UpdateExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID, name, description, muscleGroup string) (*domain.Exercise, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}

	existing, err := s.GetExerciseByID(ctx, ownerID, exerciseID)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Description = description
	existing.MuscleGroup = muscleGroup

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteExercise removes a catalog entry. Trainings that referenced it keep
// their line items; only the resolved name disappears.
func (s *exerciseService) DeleteExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID) error {
	if ownerID == primitive.NilObjectID || exerciseID == primitive.NilObjectID {
		return errors.New("owner ID and exercise ID are required")
	}

	// The repository filter includes the owner, so this enforces ownership
	// at the DB level in one round trip.
	err := s.exerciseRepo.Delete(ctx, exerciseID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}
