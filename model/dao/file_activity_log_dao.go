package dao

import (
	"file-vault/database"
	"file-vault/model"
)

// FileActivityLogDAO data access layer for the append-only activity log
type FileActivityLogDAO struct{}

// NewFileActivityLogDAO creates a new DAO instance
func NewFileActivityLogDAO() *FileActivityLogDAO {
	return &FileActivityLogDAO{}
}

// Create appends one activity entry
func (dao *FileActivityLogDAO) Create(entry *model.FileActivityLog) error {
	return database.DB.Create(entry).Error
}

// ListByFileUUID returns entries for a file, newest first
func (dao *FileActivityLogDAO) ListByFileUUID(fileUuid string, limit int) ([]*model.FileActivityLog, error) {
	var entries []*model.FileActivityLog
	err := database.DB.Where("file_uuid = ?", fileUuid).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// ListByUserID returns entries for a user, newest first
func (dao *FileActivityLogDAO) ListByUserID(userID int64, limit int) ([]*model.FileActivityLog, error) {
	var entries []*model.FileActivityLog
	err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
