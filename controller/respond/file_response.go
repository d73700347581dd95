package respond

import (
	"time"

	"file-vault/model"
)

// FileResponse public view of a committed file record
type FileResponse struct {
	Uuid         string    `json:"uuid" example:"7d5a6c2e-1f3b-4a8d-9c0e-2b4f6a8d0e1f"`
	Name         string    `json:"name" example:"7d5a6c2e-1f3b-4a8d-9c0e-2b4f6a8d0e1f.pdf"`
	OriginalName string    `json:"original_name" example:"report.pdf"`
	Size         int64     `json:"size" example:"102400"`
	MimeType     string    `json:"mime_type" example:"application/pdf"`
	Extension    string    `json:"extension" example:"pdf"`
	OwnerUuid    string    `json:"owner_uuid"`
	UploadDate   time.Time `json:"upload_date"`
}

// ToFileResponse converts a model.File into a public response struct
func ToFileResponse(file *model.File) *FileResponse {
	if file == nil {
		return nil
	}
	return &FileResponse{
		Uuid:         file.UUID,
		Name:         file.Name,
		OriginalName: file.OriginalName,
		Size:         file.Size,
		MimeType:     file.MimeType,
		Extension:    file.Extension,
		OwnerUuid:    file.OwnerUuid,
		UploadDate:   file.UploadDate,
	}
}

// FileListResponse paginated file list
type FileListResponse struct {
	Files  []*FileResponse `json:"files"`
	Total  int64           `json:"total" example:"42"`
	Limit  int             `json:"limit" example:"15"`
	Offset int             `json:"offset" example:"0"`
}

// ToFileListResponse converts a page of file records
func ToFileListResponse(files []*model.File, total int64, limit, offset int) *FileListResponse {
	out := make([]*FileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, ToFileResponse(f))
	}
	return &FileListResponse{Files: out, Total: total, Limit: limit, Offset: offset}
}

// ExistingFileResponse idempotent upload hit: the file already existed
type ExistingFileResponse struct {
	AlreadyExists bool          `json:"already_exists" example:"true"`
	File          *FileResponse `json:"file"`
}

// ActivityLogResponse public view of one activity entry
type ActivityLogResponse struct {
	FileUuid  string    `json:"file_uuid"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action" example:"upload"`
	IpAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

// ToActivityLogListResponse converts activity entries
func ToActivityLogListResponse(entries []*model.FileActivityLog) []*ActivityLogResponse {
	out := make([]*ActivityLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &ActivityLogResponse{
			FileUuid:  e.FileUuid,
			UserID:    e.UserID,
			Action:    e.Action,
			IpAddress: e.IpAddress,
			UserAgent: e.UserAgent,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

// UserResponse public view of an account
type UserResponse struct {
	Uuid  string `json:"uuid"`
	Name  string `json:"name" example:"Jane Doe"`
	Email string `json:"email" example:"jane@example.com"`
}

// ToUserResponse converts a model.User into a public response struct
func ToUserResponse(user *model.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		Uuid:  user.UUID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// TokenResponse login result
type TokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}
