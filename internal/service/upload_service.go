package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"fitlog-app/internal/domain"
	"fitlog-app/internal/repository"
	"fitlog-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUploadNotFound           = errors.New("upload not found")
	ErrUploadURLGeneration      = errors.New("failed to generate upload URL")
	ErrUploadConfirmationFailed = errors.New("failed to confirm upload")
)

// UploadRequest is the result of RequestUpload: where to PUT the file and the
// object key to hand back on confirmation.
type UploadRequest struct {
	UploadURL string
	ObjectKey string
}

// UploadService manages admin file uploads: presigned upload/download URLs
// plus the metadata records behind them.
type UploadService interface {
	RequestUpload(ctx context.Context, ownerID primitive.ObjectID, fileName, contentType string) (*UploadRequest, error)
	ConfirmUpload(ctx context.Context, ownerID primitive.ObjectID, objectKey, fileName, contentType string, size int64) (*domain.Upload, error)
	ListUploads(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Upload, error)
	GetDownloadURL(ctx context.Context, ownerID, uploadID primitive.ObjectID) (string, error)
	DeleteUpload(ctx context.Context, ownerID, uploadID primitive.ObjectID) error
}

// --- Service Implementation ---

type uploadService struct {
	uploadRepo  repository.UploadRepository
	fileStorage storage.FileStorage
}

// NewUploadService creates a new instance of uploadService.
func NewUploadService(uploadRepo repository.UploadRepository, fileStorage storage.FileStorage) UploadService {
	return &uploadService{
		uploadRepo:  uploadRepo,
		fileStorage: fileStorage,
	}
}

// RequestUpload generates a unique object key and a presigned PUT URL for it.
// No metadata is stored until the client confirms the upload succeeded.
func (s *uploadService) RequestUpload(ctx context.Context, ownerID primitive.ObjectID, fileName, contentType string) (*UploadRequest, error) {
	if ownerID == primitive.NilObjectID || fileName == "" || contentType == "" {
		return nil, errors.New("owner ID, file name, and content type are required")
	}

	// Key layout: uploads/<owner>/<uuid><ext>; the uuid keeps concurrent
	// uploads of identically named files apart.
	objectKey := fmt.Sprintf("uploads/%s/%s%s", ownerID.Hex(), uuid.NewString(), filepath.Ext(fileName))

	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLGeneration
	}

	return &UploadRequest{UploadURL: url, ObjectKey: objectKey}, nil
}

// ConfirmUpload records metadata for an object the client finished uploading.
func (s *uploadService) ConfirmUpload(ctx context.Context, ownerID primitive.ObjectID, objectKey, fileName, contentType string, size int64) (*domain.Upload, error) {
	if objectKey == "" || fileName == "" || size <= 0 {
		return nil, errors.New("object key, file name, and a positive size are required")
	}

	upload := &domain.Upload{
		OwnerID:     ownerID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	}

	uploadID, err := s.uploadRepo.Create(ctx, upload)
	if err != nil {
		return nil, ErrUploadConfirmationFailed
	}
	upload.ID = uploadID
	return upload, nil
}

// ListUploads returns the owner's uploads, newest first.
func (s *uploadService) ListUploads(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Upload, error) {
	return s.uploadRepo.GetByOwnerID(ctx, ownerID)
}

// GetDownloadURL generates a temporary download URL for an owned upload.
func (s *uploadService) GetDownloadURL(ctx context.Context, ownerID, uploadID primitive.ObjectID) (string, error) {
	upload, err := s.getOwned(ctx, ownerID, uploadID)
	if err != nil {
		return "", err
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, upload.S3ObjectKey, storage.DefaultPresignedURLExpiry)
}

// DeleteUpload removes the S3 object first, then the metadata. A dangling
// metadata row with no object is worse than a stray object, hence the order.
func (s *uploadService) DeleteUpload(ctx context.Context, ownerID, uploadID primitive.ObjectID) error {
	upload, err := s.getOwned(ctx, ownerID, uploadID)
	if err != nil {
		return err
	}

	deleteCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.fileStorage.DeleteObject(deleteCtx, upload.S3ObjectKey); err != nil {
		return err
	}

	if err := s.uploadRepo.Delete(ctx, upload.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUploadNotFound
		}
		return err
	}
	return nil
}

func (s *uploadService) getOwned(ctx context.Context, ownerID, uploadID primitive.ObjectID) (*domain.Upload, error) {
	upload, err := s.uploadRepo.GetByID(ctx, uploadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	if upload.OwnerID != ownerID {
		return nil, ErrUploadNotFound
	}
	return upload, nil
}
