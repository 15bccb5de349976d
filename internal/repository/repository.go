package repository

import (
	"context"
	"time"

	"fitlog-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateName(ctx context.Context, id primitive.ObjectID, name string) error
}

// ExerciseRepository defines the interface for interacting with the
// per-user exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) error // Filter includes owner so foreign rows look absent
}

// TrainingRepository defines the interface for interacting with training
// sessions. Exercise line items travel inside the Training document.
type TrainingRepository interface {
	Create(ctx context.Context, training *domain.Training) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Training, error)
	// GetByUserID returns the user's trainings sorted newest first.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Training, error)
	// FindDoneInRange looks for a training of userID with status done whose
	// date falls within [start, end] inclusive, excluding excludeID.
	// Returns ErrNotFound when there is none.
	FindDoneInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time, excludeID primitive.ObjectID) (*domain.Training, error)
	// Update persists date, status and the full exercises slice in one write.
	Update(ctx context.Context, training *domain.Training) error
	Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error
}

// UploadRepository defines the interface for interacting with upload metadata.
type UploadRepository interface {
	Create(ctx context.Context, upload *domain.Upload) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Upload, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Upload, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
