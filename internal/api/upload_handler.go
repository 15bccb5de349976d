package api

import (
	"errors"
	"net/http"
	"time"

	"fitlog-app/internal/domain"
	"fitlog-app/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadHandler holds the upload service dependency.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// --- DTOs ---

type RequestUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

type RequestUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type ConfirmUploadRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	Size        int64  `json:"size" binding:"required,gt=0"`
}

type UploadResponse struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

func mapUploadToResponse(u *domain.Upload) UploadResponse {
	return UploadResponse{
		ID:          u.ID.Hex(),
		FileName:    u.FileName,
		ContentType: u.ContentType,
		Size:        u.Size,
		UploadedAt:  u.UploadedAt,
	}
}

// --- Handler Methods ---

// RequestUpload returns a presigned PUT URL for the admin to upload a file
// directly to object storage.
func (h *UploadHandler) RequestUpload(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req RequestUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.uploadService.RequestUpload(c.Request.Context(), ownerID, req.FileName, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	}
	c.JSON(http.StatusOK, RequestUploadResponse{
		UploadURL: result.UploadURL,
		ObjectKey: result.ObjectKey,
	})
}

// ConfirmUpload records metadata for a finished upload.
func (h *UploadHandler) ConfirmUpload(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	upload, err := h.uploadService.ConfirmUpload(c.Request.Context(), ownerID, req.ObjectKey, req.FileName, req.ContentType, req.Size)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to confirm upload")
		return
	}
	c.JSON(http.StatusCreated, mapUploadToResponse(upload))
}

// ListUploads returns the admin's uploads, newest first.
func (h *UploadHandler) ListUploads(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	uploads, err := h.uploadService.ListUploads(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list uploads")
		return
	}

	responses := make([]UploadResponse, len(uploads))
	for i := range uploads {
		responses[i] = mapUploadToResponse(&uploads[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetDownloadURL returns a temporary download URL for an upload.
func (h *UploadHandler) GetDownloadURL(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	uploadID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	url, err := h.uploadService.GetDownloadURL(c.Request.Context(), ownerID, uploadID)
	if err != nil {
		if errors.Is(err, service.ErrUploadNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// DeleteUpload removes the stored object and its metadata.
func (h *UploadHandler) DeleteUpload(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	uploadID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	err := h.uploadService.DeleteUpload(c.Request.Context(), ownerID, uploadID)
	if err != nil {
		if errors.Is(err, service.ErrUploadNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete upload")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Upload deleted"})
}
