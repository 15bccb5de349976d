package service

import (
	"context"
	"sort"
	"time"

	"fitlog-app/internal/domain"
	"fitlog-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They return copies the way the driver decodes
// fresh structs, so aborted service mutations never leak into the store.

type fakeUserRepo struct {
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (r *fakeUserRepo) UpdateName(_ context.Context, id primitive.ObjectID, name string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Name = name
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return nil
}

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	r.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	ex, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := ex
	return &copied, nil
}

func (r *fakeExerciseRepo) GetByOwnerID(_ context.Context, ownerID primitive.ObjectID) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, ex := range r.exercises {
		if ex.OwnerID == ownerID {
			out = append(out, ex)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	if _, ok := r.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	exercise.UpdatedAt = time.Now().UTC()
	r.exercises[exercise.ID] = *exercise
	return nil
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id, ownerID primitive.ObjectID) error {
	ex, ok := r.exercises[id]
	if !ok || ex.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

type fakeTrainingRepo struct {
	trainings map[primitive.ObjectID]domain.Training
}

func newFakeTrainingRepo() *fakeTrainingRepo {
	return &fakeTrainingRepo{trainings: make(map[primitive.ObjectID]domain.Training)}
}

func copyTraining(t domain.Training) domain.Training {
	exercises := make([]domain.TrainingExercise, len(t.Exercises))
	copy(exercises, t.Exercises)
	t.Exercises = exercises
	return t
}

func (r *fakeTrainingRepo) Create(_ context.Context, training *domain.Training) (primitive.ObjectID, error) {
	training.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	training.CreatedAt = now
	training.UpdatedAt = now
	if training.Exercises == nil {
		training.Exercises = []domain.TrainingExercise{}
	}
	r.trainings[training.ID] = copyTraining(*training)
	return training.ID, nil
}

func (r *fakeTrainingRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Training, error) {
	t, ok := r.trainings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := copyTraining(t)
	return &copied, nil
}

func (r *fakeTrainingRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Training, error) {
	var out []domain.Training
	for _, t := range r.trainings {
		if t.UserID == userID {
			out = append(out, copyTraining(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeTrainingRepo) FindDoneInRange(_ context.Context, userID primitive.ObjectID, start, end time.Time, excludeID primitive.ObjectID) (*domain.Training, error) {
	for _, t := range r.trainings {
		if t.UserID != userID || t.Status != domain.StatusDone || t.ID == excludeID {
			continue
		}
		if !t.Date.Before(start) && !t.Date.After(end) {
			copied := copyTraining(t)
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTrainingRepo) Update(_ context.Context, training *domain.Training) error {
	stored, ok := r.trainings[training.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Date = training.Date
	stored.Status = training.Status
	stored.Exercises = training.Exercises
	stored.UpdatedAt = time.Now().UTC()
	r.trainings[training.ID] = copyTraining(stored)
	return nil
}

func (r *fakeTrainingRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	t, ok := r.trainings[id]
	if !ok || t.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.trainings, id)
	return nil
}
