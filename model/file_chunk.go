package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ChunkPathMap maps a 0-based chunk index to the storage key holding that
// chunk's bytes. Persisted as a JSON column.
type ChunkPathMap map[int]string

// Value implements driver.Valuer
func (m ChunkPathMap) Value() (driver.Value, error) {
	if m == nil {
		m = ChunkPathMap{}
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner
func (m *ChunkPathMap) Scan(value interface{}) error {
	if value == nil {
		*m = ChunkPathMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported chunk path column type %T", value)
	}
	return json.Unmarshal(data, m)
}

// FileChunk represents a chunked upload session keyed by upload id.
// Metadata fields are fixed at creation; only the chunk path set and the
// derived uploaded count change afterwards.
type FileChunk struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	UploadId       string       `gorm:"uniqueIndex;type:varchar(255);not null" json:"upload_id"`
	OriginalName   string       `gorm:"type:varchar(255);not null" json:"original_name"`
	TotalSize      int64        `json:"total_size"` // Client-declared, not verified
	TotalChunks    int          `gorm:"not null" json:"total_chunks"`
	UploadedChunks int          `gorm:"default:0" json:"uploaded_chunks"` // Count of distinct indices received
	ChunkPaths     ChunkPathMap `gorm:"type:json" json:"chunk_paths"`
	MimeType       string       `gorm:"type:varchar(127)" json:"mime_type"`
	OwnerUuid      string       `gorm:"index;type:varchar(36);not null" json:"owner_uuid"`

	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets custom table name
func (FileChunk) TableName() string {
	return "tb_file_chunk"
}

// IsComplete reports whether every declared chunk has been received
func (c *FileChunk) IsComplete() bool {
	return c.UploadedChunks == c.TotalChunks
}

// IsExpired reports whether the session validity window has passed
func (c *FileChunk) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
