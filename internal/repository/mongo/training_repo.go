package mongo

import (
	"context"
	"errors"
	"time"

	"fitlog-app/internal/domain"
	"fitlog-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainingCollectionName = "trainings"

// mongoTrainingRepository implements repository.TrainingRepository
type mongoTrainingRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingRepository creates a new Training repository.
func NewMongoTrainingRepository(db *mongo.Database) repository.TrainingRepository {
	return &mongoTrainingRepository{
		collection: db.Collection(trainingCollectionName),
	}
}

// Create inserts a new training together with its embedded exercise entries.
func (r *mongoTrainingRepository) Create(ctx context.Context, training *domain.Training) (primitive.ObjectID, error) {
	if training.UserID == primitive.NilObjectID || !training.Status.Valid() {
		return primitive.NilObjectID, errors.New("training requires userId and a valid status")
	}
	training.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	training.CreatedAt = now
	training.UpdatedAt = now
	if training.Exercises == nil {
		training.Exercises = []domain.TrainingExercise{}
	}

	result, err := r.collection.InsertOne(ctx, training)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted training ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single training by its ID.
func (r *mongoTrainingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Training, error) {
	var training domain.Training
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&training)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &training, nil
}

// GetByUserID retrieves all trainings of a user, newest first.
func (r *mongoTrainingRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Training, error) {
	var trainings []domain.Training
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &trainings); err != nil {
		return nil, err
	}
	return trainings, nil
}

// FindDoneInRange looks for another finished training of the same user whose
// date falls within [start, end] inclusive. excludeID keeps the training
// being updated out of its own conflict check.
func (r *mongoTrainingRepository) FindDoneInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time, excludeID primitive.ObjectID) (*domain.Training, error) {
	filter := bson.M{
		"userId": userID,
		"status": domain.StatusDone,
		"date":   bson.M{"$gte": start, "$lte": end},
	}
	if excludeID != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	var training domain.Training
	err := r.collection.FindOne(ctx, filter).Decode(&training)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &training, nil
}

// Update replaces date, status and the whole exercises slice in one document
// write, which is what gives the replace-all semantics its atomicity.
func (r *mongoTrainingRepository) Update(ctx context.Context, training *domain.Training) error {
	if training.ID == primitive.NilObjectID {
		return errors.New("training ID is required for update")
	}
	if training.Exercises == nil {
		training.Exercises = []domain.TrainingExercise{}
	}
	update := bson.M{
		"$set": bson.M{
			"date":      training.Date,
			"status":    training.Status,
			"exercises": training.Exercises,
			"updatedAt": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": training.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a training and, with it, all embedded exercise entries.
// The filter includes the user, so foreign trainings look absent.
func (r *mongoTrainingRepository) Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	if id == primitive.NilObjectID || userID == primitive.NilObjectID {
		return errors.New("training ID and user ID are required for deletion")
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTrainingIndexes creates necessary indexes. Call during startup.
func EnsureTrainingIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Serves both the newest-first listing and the day-range conflict query.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
