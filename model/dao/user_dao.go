package dao

import (
	"errors"

	"file-vault/database"
	"file-vault/model"

	"gorm.io/gorm"
)

// UserDAO data access layer for user accounts
type UserDAO struct{}

// NewUserDAO creates a new DAO instance
func NewUserDAO() *UserDAO {
	return &UserDAO{}
}

// Create inserts a new user record
func (dao *UserDAO) Create(user *model.User) error {
	return database.DB.Create(user).Error
}

// GetByEmail fetches a user by email
func (dao *UserDAO) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := database.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUUID fetches a user by UUID
func (dao *UserDAO) GetByUUID(uuid string) (*model.User, error) {
	var user model.User
	err := database.DB.Where("uuid = ?", uuid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetIDByUUID resolves the numeric user id for an owner UUID
func (dao *UserDAO) GetIDByUUID(uuid string) (int64, error) {
	var user model.User
	err := database.DB.Select("id").Where("uuid = ?", uuid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, database.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// UpdatePassword replaces the stored password hash
func (dao *UserDAO) UpdatePassword(uuid, passwordHash string) error {
	return database.DB.Model(&model.User{}).
		Where("uuid = ?", uuid).
		Update("password_hash", passwordHash).Error
}
