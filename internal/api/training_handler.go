package api

import (
	"errors"
	"net/http"
	"time"

	"fitlog-app/internal/domain"
	"fitlog-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingHandler holds the training service dependency.
type TrainingHandler struct {
	trainingService service.TrainingService
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(trainingService service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

// --- DTOs ---

// TrainingExerciseRequest is one line item in a create or update request.
type TrainingExerciseRequest struct {
	ExerciseID string   `json:"exerciseId" binding:"required"`
	Weight     *float64 `json:"weight"` // Kilograms, omit for bodyweight work
	Sets       int      `json:"sets" binding:"required,gt=0"`
	Reps       int      `json:"reps" binding:"required,gt=0"`
}

// CreateTrainingRequest defines the expected JSON for creating a training.
// With init=true and no exercises an empty in_progress session is started;
// otherwise the training is created done (or with the explicit status).
type CreateTrainingRequest struct {
	Date      string                    `json:"date" binding:"required"` // "2006-01-02" or RFC3339
	Init      bool                      `json:"init"`
	Status    *string                   `json:"status" binding:"omitempty,oneof=in_progress done"`
	Exercises []TrainingExerciseRequest `json:"exercises"`
}

// UpdateTrainingRequest carries PATCH semantics: absent fields stay
// untouched; a present exercises array replaces the full list.
type UpdateTrainingRequest struct {
	Date      *string                    `json:"date"`
	Status    *string                    `json:"status" binding:"omitempty,oneof=in_progress done"`
	Exercises *[]TrainingExerciseRequest `json:"exercises"`
}

// TrainingExerciseResponse is a line item with its catalog name resolved.
type TrainingExerciseResponse struct {
	ID           string   `json:"id"`
	ExerciseID   string   `json:"exerciseId"`
	ExerciseName string   `json:"exerciseName,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	Sets         int      `json:"sets"`
	Reps         int      `json:"reps"`
}

// TrainingResponse is the DTO for returning a training with its exercises.
type TrainingResponse struct {
	ID        string                     `json:"id"`
	UserID    string                     `json:"userId"`
	Date      time.Time                  `json:"date"`
	Status    domain.TrainingStatus      `json:"status"`
	Exercises []TrainingExerciseResponse `json:"exercises"`
	CreatedAt time.Time                  `json:"createdAt"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

// MapTrainingToResponse converts a service.TrainingDetail to the API DTO.
func MapTrainingToResponse(d *service.TrainingDetail) TrainingResponse {
	exercises := make([]TrainingExerciseResponse, len(d.Exercises))
	for i, ex := range d.Exercises {
		exercises[i] = TrainingExerciseResponse{
			ID:           ex.ID.Hex(),
			ExerciseID:   ex.ExerciseID.Hex(),
			ExerciseName: ex.ExerciseName,
			Weight:       ex.Weight,
			Sets:         ex.Sets,
			Reps:         ex.Reps,
		}
	}
	return TrainingResponse{
		ID:        d.Training.ID.Hex(),
		UserID:    d.Training.UserID.Hex(),
		Date:      d.Training.Date,
		Status:    d.Training.Status,
		Exercises: exercises,
		CreatedAt: d.Training.CreatedAt,
		UpdatedAt: d.Training.UpdatedAt,
	}
}

// --- Handler Methods ---

// ListTrainings godoc
// @Summary List the user's trainings, newest first
// @Tags Trainings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TrainingResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /trainings [get]
func (h *TrainingHandler) ListTrainings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	details, err := h.trainingService.ListTrainings(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list trainings")
		return
	}

	responses := make([]TrainingResponse, len(details))
	for i := range details {
		responses[i] = MapTrainingToResponse(&details[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetTraining returns one training of the authenticated user.
func (h *TrainingHandler) GetTraining(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trainingID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	detail, err := h.trainingService.GetTraining(c.Request.Context(), userID, trainingID)
	if err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to get training")
		return
	}
	c.JSON(http.StatusOK, MapTrainingToResponse(detail))
}

// CreateTraining godoc
// @Summary Create a training for a calendar day
// @Tags Trainings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param training body CreateTrainingRequest true "Training details"
// @Success 201 {object} TrainingResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "User record missing"
// @Router /trainings [post]
func (h *TrainingHandler) CreateTraining(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	input := service.CreateTrainingInput{
		Date: date,
		Init: req.Init,
	}
	if req.Status != nil {
		status := domain.TrainingStatus(*req.Status)
		input.Status = &status
	}
	input.Exercises, err = mapExerciseInputs(req.Exercises)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.trainingService.CreateTraining(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTrainingValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create training")
		}
		return
	}
	c.JSON(http.StatusCreated, MapTrainingToResponse(detail))
}

// UpdateTraining godoc
// @Summary Patch a training (date, exercises, status)
// @Description Serves both silent autosaves of in-progress sessions and the
// explicit finish action. Finishing fails with 400 when another finished
// training already exists for the same day.
// @Tags Trainings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Training ID"
// @Param patch body UpdateTrainingRequest true "Fields to update"
// @Success 200 {object} TrainingResponse
// @Failure 400 {object} gin.H "Invalid input or same-day conflict"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Not found"
// @Router /trainings/{id} [patch]
func (h *TrainingHandler) UpdateTraining(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trainingID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req UpdateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	var patch service.UpdateTrainingPatch
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}
	if req.Status != nil {
		status := domain.TrainingStatus(*req.Status)
		patch.Status = &status
	}
	if req.Exercises != nil {
		inputs, err := mapExerciseInputs(*req.Exercises)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		patch.Exercises = &inputs
	}

	detail, err := h.trainingService.UpdateTraining(c.Request.Context(), userID, trainingID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainingNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTrainingConflict):
			// Specific message so the client can offer navigation to the
			// conflicting training.
			abortWithError(c, http.StatusBadRequest, "You already have a training that day")
		case errors.Is(err, service.ErrTrainingValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update training")
		}
		return
	}
	c.JSON(http.StatusOK, MapTrainingToResponse(detail))
}

// DeleteTraining removes a training and all of its exercise entries.
func (h *TrainingHandler) DeleteTraining(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trainingID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	err := h.trainingService.DeleteTraining(c.Request.Context(), userID, trainingID)
	if err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete training")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Training deleted"})
}

// --- Helpers ---

// parseDate accepts a plain calendar date or a full RFC3339 timestamp; the
// service truncates either to UTC day start.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func mapExerciseInputs(reqs []TrainingExerciseRequest) ([]service.TrainingExerciseInput, error) {
	inputs := make([]service.TrainingExerciseInput, len(reqs))
	for i, r := range reqs {
		exerciseID, err := primitive.ObjectIDFromHex(r.ExerciseID)
		if err != nil {
			return nil, errors.New("invalid exercise ID format")
		}
		inputs[i] = service.TrainingExerciseInput{
			ExerciseID: exerciseID,
			Weight:     r.Weight,
			Sets:       r.Sets,
			Reps:       r.Reps,
		}
	}
	return inputs, nil
}
