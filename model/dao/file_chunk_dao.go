package dao

import (
	"errors"
	"fmt"
	"time"

	"file-vault/database"
	"file-vault/model"

	"gorm.io/gorm"
)

// FileChunkDAO data access layer for chunked upload sessions
type FileChunkDAO struct{}

// NewFileChunkDAO creates a new DAO instance
func NewFileChunkDAO() *FileChunkDAO {
	return &FileChunkDAO{}
}

// Create inserts a new upload session record
func (dao *FileChunkDAO) Create(chunk *model.FileChunk) error {
	return database.DB.Create(chunk).Error
}

// GetByUploadID fetches a session by upload ID
func (dao *FileChunkDAO) GetByUploadID(uploadID string) (*model.FileChunk, error) {
	var chunk model.FileChunk
	err := database.DB.Where("upload_id = ?", uploadID).First(&chunk).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// GetByUploadIDAndOwner fetches a session scoped to its owner
func (dao *FileChunkDAO) GetByUploadIDAndOwner(uploadID, ownerUuid string) (*model.FileChunk, error) {
	var chunk model.FileChunk
	err := database.DB.Where("upload_id = ? AND owner_uuid = ?", uploadID, ownerUuid).First(&chunk).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// Update persists session changes
func (dao *FileChunkDAO) Update(chunk *model.FileChunk) error {
	if chunk == nil {
		return fmt.Errorf("chunk is nil")
	}
	return database.DB.Model(&model.FileChunk{}).
		Where("id = ?", chunk.ID).
		Select("*").
		Updates(chunk).Error
}

// DeleteByUploadID deletes a session record, returning the number of rows
// removed so callers can detect a concurrent delete
func (dao *FileChunkDAO) DeleteByUploadID(uploadID string) (int64, error) {
	result := database.DB.Where("upload_id = ?", uploadID).Delete(&model.FileChunk{})
	return result.RowsAffected, result.Error
}

// ListExpired returns sessions whose validity window passed before the given time
func (dao *FileChunkDAO) ListExpired(before time.Time, limit int) ([]*model.FileChunk, error) {
	var chunks []*model.FileChunk
	err := database.DB.Where("expires_at < ?", before).
		Order("expires_at ASC").
		Limit(limit).
		Find(&chunks).Error
	return chunks, err
}
