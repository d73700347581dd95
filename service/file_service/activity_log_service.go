package file_service

import (
	"fmt"
	"log"

	"file-vault/model"
	"file-vault/model/dao"
)

// ActivityStore persistence contract for the append-only activity log
type ActivityStore interface {
	Create(entry *model.FileActivityLog) error
	ListByFileUUID(fileUuid string, limit int) ([]*model.FileActivityLog, error)
	ListByUserID(userID int64, limit int) ([]*model.FileActivityLog, error)
}

// UserResolver maps an owner UUID to the numeric user id
type UserResolver interface {
	GetIDByUUID(uuid string) (int64, error)
}

// FileActivityLogService appends and queries file activity entries
type FileActivityLogService struct {
	logs  ActivityStore
	users UserResolver
}

// NewFileActivityLogService create activity log service instance
func NewFileActivityLogService() *FileActivityLogService {
	return &FileActivityLogService{
		logs:  dao.NewFileActivityLogDAO(),
		users: dao.NewUserDAO(),
	}
}

// LogActivity append one entry. When userID is zero it is resolved from the
// owner UUID; an unresolvable owner still produces an entry with user id 0.
func (s *FileActivityLogService) LogActivity(fileUuid, action string, userID int64, ownerUuid, ipAddress, userAgent string) error {
	if userID == 0 && ownerUuid != "" {
		id, err := s.users.GetIDByUUID(ownerUuid)
		if err != nil {
			log.Printf("Failed to resolve user id for owner %s: %v", ownerUuid, err)
		} else {
			userID = id
		}
	}

	entry := &model.FileActivityLog{
		FileUuid:  fileUuid,
		UserID:    userID,
		Action:    action,
		IpAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := s.logs.Create(entry); err != nil {
		return fmt.Errorf("failed to append activity log: %w", err)
	}
	return nil
}

// GetFileActivityLogs return entries for a file, newest first, capped at limit
func (s *FileActivityLogService) GetFileActivityLogs(fileUuid string, limit int) ([]*model.FileActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.logs.ListByFileUUID(fileUuid, limit)
}

// GetUserActivityLogs return entries for a user, newest first, capped at limit
func (s *FileActivityLogService) GetUserActivityLogs(userID int64, limit int) ([]*model.FileActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.logs.ListByUserID(userID, limit)
}
