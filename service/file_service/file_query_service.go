package file_service

import (
	"errors"
	"fmt"
	"log"

	"file-vault/database"
	"file-vault/model"
	"file-vault/model/dao"
	"file-vault/storage"
)

var (
	// ErrFileNotFound the file uuid does not resolve to a live record
	ErrFileNotFound = errors.New("file not found")

	// ErrFileNotFoundOrForbidden deliberately collapses "does not exist" and
	// "not owned by caller" so the existence of other users' files never leaks
	ErrFileNotFoundOrForbidden = errors.New("file not found or you do not have permission to access it")
)

// FileRecordStore persistence contract for file queries and deletion
type FileRecordStore interface {
	GetByUUID(uuid string) (*model.File, error)
	GetByUUIDAndOwner(uuid, ownerUuid string) (*model.File, error)
	List(ownerUuid, mimeType string, limit, offset int) ([]*model.File, int64, error)
	SoftDelete(file *model.File) error
}

// FileQueryService read-side file operations plus owner-scoped deletion
type FileQueryService struct {
	files    FileRecordStore
	storage  storage.Storage
	activity *FileActivityLogService
}

// NewFileQueryService create file query service instance
func NewFileQueryService(stor storage.Storage, activity *FileActivityLogService) *FileQueryService {
	return &FileQueryService{
		files:    dao.NewFileDAO(),
		storage:  stor,
		activity: activity,
	}
}

// FileSearchQuery list filters with offset pagination
type FileSearchQuery struct {
	OwnerUuid string
	MimeType  string
	Limit     int
	Offset    int
}

// Search return files matching the query, newest upload first
func (s *FileQueryService) Search(query *FileSearchQuery) ([]*model.File, int64, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 15
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	return s.files.List(query.OwnerUuid, query.MimeType, limit, offset)
}

// GetByUUID fetch file metadata. Metadata is visible to any authenticated
// caller; download enforces ownership.
func (s *FileQueryService) GetByUUID(uuid string) (*model.File, error) {
	file, err := s.files.GetByUUID(uuid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

// Download return the file record and its bytes, owner-only, and log the
// download
func (s *FileQueryService) Download(uuid, ownerUuid string, userID int64, clientIP, userAgent string) (*model.File, []byte, error) {
	file, err := s.files.GetByUUIDAndOwner(uuid, ownerUuid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil, ErrFileNotFoundOrForbidden
	}
	if err != nil {
		return nil, nil, err
	}

	data, err := s.storage.Get(file.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file bytes: %w", err)
	}

	if err := s.activity.LogActivity(file.UUID, model.ActionDownload, userID, ownerUuid, clientIP, userAgent); err != nil {
		log.Printf("Failed to log download activity for file %s: %v", file.UUID, err)
	}

	return file, data, nil
}

// Delete soft-delete an owned file, remove its bytes and log the deletion.
// A non-owner caller gets the same error as a missing file.
func (s *FileQueryService) Delete(uuid, ownerUuid string, userID int64, clientIP, userAgent string) error {
	file, err := s.files.GetByUUIDAndOwner(uuid, ownerUuid)
	if errors.Is(err, database.ErrNotFound) {
		return ErrFileNotFoundOrForbidden
	}
	if err != nil {
		return err
	}

	if err := s.activity.LogActivity(file.UUID, model.ActionDelete, userID, ownerUuid, clientIP, userAgent); err != nil {
		log.Printf("Failed to log delete activity for file %s: %v", file.UUID, err)
	}

	if err := s.storage.Delete(file.Path); err != nil {
		log.Printf("Failed to delete file bytes %s: %v", file.Path, err)
	}

	if err := s.files.SoftDelete(file); err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	return nil
}
