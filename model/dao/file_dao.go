package dao

import (
	"errors"

	"file-vault/database"
	"file-vault/model"

	"gorm.io/gorm"
)

// FileDAO data access layer for committed file records
type FileDAO struct{}

// NewFileDAO creates a new DAO instance
func NewFileDAO() *FileDAO {
	return &FileDAO{}
}

// Create inserts a new file record
func (dao *FileDAO) Create(file *model.File) error {
	return database.DB.Create(file).Error
}

// GetByUUID fetches a file by UUID
func (dao *FileDAO) GetByUUID(uuid string) (*model.File, error) {
	var file model.File
	err := database.DB.Where("uuid = ?", uuid).First(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// GetByUUIDAndOwner fetches a file scoped to its owner
func (dao *FileDAO) GetByUUIDAndOwner(uuid, ownerUuid string) (*model.File, error) {
	var file model.File
	err := database.DB.Where("uuid = ? AND owner_uuid = ?", uuid, ownerUuid).First(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// GetByOriginalNameAndOwner fetches a file by its client-supplied name, scoped
// to the owner. Used by the idempotent upload check.
func (dao *FileDAO) GetByOriginalNameAndOwner(originalName, ownerUuid string) (*model.File, error) {
	var file model.File
	err := database.DB.Where("original_name = ? AND owner_uuid = ?", originalName, ownerUuid).First(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// List returns files with optional owner/mime filters, newest upload first
func (dao *FileDAO) List(ownerUuid, mimeType string, limit, offset int) ([]*model.File, int64, error) {
	query := database.DB.Model(&model.File{})
	if ownerUuid != "" {
		query = query.Where("owner_uuid = ?", ownerUuid)
	}
	if mimeType != "" {
		query = query.Where("mime_type = ?", mimeType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var files []*model.File
	err := query.Order("upload_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&files).Error
	if err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

// SoftDelete marks a file deleted without removing the row
func (dao *FileDAO) SoftDelete(file *model.File) error {
	return database.DB.Delete(file).Error
}
