package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account that owns files
type User struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	UUID         string `gorm:"uniqueIndex;type:varchar(36);not null" json:"uuid"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Email        string `gorm:"uniqueIndex;type:varchar(255);not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets custom table name
func (User) TableName() string {
	return "tb_user"
}
