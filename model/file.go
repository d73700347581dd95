package model

import (
	"time"

	"gorm.io/gorm"
)

// File represents a committed, permanent file record.
// Immutable after creation except via soft delete.
type File struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	UUID         string `gorm:"uniqueIndex;type:varchar(36);not null" json:"uuid"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`          // Generated stored name
	OriginalName string `gorm:"index;type:varchar(255);not null" json:"original_name"` // Client-supplied name
	Size         int64  `json:"size"`                                            // Actual stored size in bytes
	MimeType     string `gorm:"type:varchar(127)" json:"mime_type"`
	Extension    string `gorm:"type:varchar(32)" json:"extension"`
	Path         string `gorm:"type:varchar(500)" json:"path"` // Storage key of the file bytes
	OwnerUuid    string `gorm:"index;type:varchar(36);not null" json:"owner_uuid"`

	UploadDate time.Time      `json:"upload_date"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets custom table name
func (File) TableName() string {
	return "tb_file"
}
