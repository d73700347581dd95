package model

import "time"

// Activity log actions
const (
	ActionUpload   = "upload"
	ActionDownload = "download"
	ActionDelete   = "delete"
)

// FileActivityLog is an append-only record of a file action.
// Entries are never mutated after insert.
type FileActivityLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	FileUuid  string `gorm:"index;type:varchar(36);not null" json:"file_uuid"`
	UserID    int64  `gorm:"index" json:"user_id"`
	Action    string `gorm:"type:varchar(20);not null" json:"action"` // upload/download/delete
	IpAddress string `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent string `gorm:"type:varchar(255)" json:"user_agent"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets custom table name
func (FileActivityLog) TableName() string {
	return "tb_file_activity_log"
}
