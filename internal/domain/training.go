package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingStatus type for the training session lifecycle
type TrainingStatus string

const (
	StatusInProgress TrainingStatus = "in_progress" // Session is being edited/autosaved
	StatusDone       TrainingStatus = "done"        // Session is finished and protected
)

// Valid reports whether s is one of the known statuses.
func (s TrainingStatus) Valid() bool {
	return s == StatusInProgress || s == StatusDone
}

// CanTransition centralizes the status rules: a finished training can never
// go back to in_progress (protects completed sessions from stale autosaves).
// Moving to done is allowed here; the per-day conflict check happens in the
// service because it needs a repository query.
func CanTransition(from, to TrainingStatus) bool {
	if to == StatusInProgress {
		return from != StatusDone
	}
	return to == StatusDone
}

// Training represents one logged workout session for a specific calendar day.
// Exercise line items are embedded, so replacing them and deleting the
// training with its items are single-document operations.
type Training struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"` // Owning user; deletion of the user removes their trainings
	Date      time.Time          `bson:"date" json:"date"`     // UTC timestamp truncated to day start
	Status    TrainingStatus     `bson:"status" json:"status"`
	Exercises []TrainingExercise `bson:"exercises" json:"exercises"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TrainingExercise is one exercise entry (weight/sets/reps) within a Training.
type TrainingExercise struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"` // Link to the catalog Exercise
	Weight     *float64           `bson:"weight,omitempty" json:"weight,omitempty"` // Kilograms, nullable for bodyweight work
	Sets       int                `bson:"sets" json:"sets"`
	Reps       int                `bson:"reps" json:"reps"`
}

// DayRange returns the inclusive UTC day window [00:00:00, 23:59:59.999...]
// for the calendar day t falls on. Conflict checks anchor to UTC day
// boundaries so two sessions near midnight in different zones can't
// incorrectly conflict (or fail to).
func DayRange(t time.Time) (start, end time.Time) {
	u := t.UTC()
	start = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	end = start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// TruncateToDay normalizes a client-supplied date to UTC day start, the form
// Training.Date is stored in.
func TruncateToDay(t time.Time) time.Time {
	start, _ := DayRange(t)
	return start
}
