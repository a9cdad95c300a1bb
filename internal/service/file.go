package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/objectifs/objectifs/internal/apperr"
	"github.com/objectifs/objectifs/internal/model"
	"github.com/objectifs/objectifs/internal/repository"
	"github.com/objectifs/objectifs/internal/storage"
)

// FileService archives rendered reports in object storage. storage may be
// nil, in which case every operation fails with a validation error.
type FileService struct {
	fileRepo repository.FileRepository
	storage  storage.Storage
	exports  *ExportService
	now      func() time.Time
}

func NewFileService(fileRepo repository.FileRepository, storage storage.Storage, exports *ExportService, now func() time.Time) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
		exports:  exports,
		now:      clockOrNow(now),
	}
}

var errStorageDisabled = apperr.Validation("storage not configured")

// Archive renders a report, uploads it and records it. The returned file
// carries a presigned download URL.
func (s *FileService) Archive(ctx context.Context, userID string, req ExportRequest) (*model.File, error) {
	if s.storage == nil {
		return nil, errStorageDisabled
	}
	if req.Format == "" {
		req.Format = FormatPDF
	}
	if req.Format == FormatTemplate {
		return nil, apperr.Validation("templates cannot be archived")
	}

	rendered, err := s.exports.Export(userID, req)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	storagePath := path.Join("reports", userID, id+path.Ext(rendered.Filename))

	err = s.storage.Save(ctx, storagePath, rendered.ContentType, bytes.NewReader(rendered.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	fileType := model.FileTypePDF
	if req.Format == FormatExcel {
		fileType = model.FileTypeExcel
	}

	file := &model.File{
		ID:          id,
		UserID:      userID,
		OwnerType:   model.FileOwnerReport,
		Type:        fileType,
		Filename:    rendered.Filename,
		MimeType:    rendered.ContentType,
		Size:        int64(len(rendered.Body)),
		StoragePath: storagePath,
		CreatedAt:   s.now(),
	}

	err = s.fileRepo.Create(file)
	if err != nil {
		// Clean up storage if the record cannot be written
		if delErr := s.storage.Delete(ctx, storagePath); delErr != nil {
			slog.Error("failed to remove orphaned report", "error", delErr, "path", storagePath)
		}
		return nil, apperr.Database(fmt.Errorf("failed to create file record: %w", err))
	}

	file.URL, err = s.storage.PresignedURL(ctx, storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to presign report: %w", err)
	}

	slog.Info("report archived", "file_id", id, "user_id", userID, "size", file.Size)
	return file, nil
}

// Archives lists the user's archived reports with fresh download URLs.
func (s *FileService) Archives(ctx context.Context, userID string) ([]*model.File, error) {
	if s.storage == nil {
		return nil, errStorageDisabled
	}

	files, err := s.fileRepo.Files(userID, model.FileOwnerReport)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to list files: %w", err))
	}

	for _, f := range files {
		f.URL, err = s.storage.PresignedURL(ctx, f.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("failed to presign %s: %w", f.ID, err)
		}
	}
	return files, nil
}

// Delete removes the record first, then the object. A leftover object is
// logged rather than returned.
func (s *FileService) Delete(ctx context.Context, userID, id string) error {
	if s.storage == nil {
		return errStorageDisabled
	}

	file, err := s.fileRepo.ByID(id)
	if err != nil {
		return storeErr(err, repository.ErrFileNotFound, "file not found")
	}
	if file.UserID != userID {
		return apperr.Unauthorized("not authorized to delete this file")
	}

	err = s.fileRepo.Delete(id)
	if err != nil {
		return storeErr(err, repository.ErrFileNotFound, "file not found")
	}

	err = s.storage.Delete(ctx, file.StoragePath)
	if err != nil {
		slog.Error("failed to delete report from storage", "error", err, "path", file.StoragePath)
	}
	return nil
}
