package handler

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"file-vault/controller/middleware"
	"file-vault/controller/respond"
	"file-vault/service/file_service"

	"github.com/gin-gonic/gin"
)

// FileHandler file query, download, delete and activity endpoints
type FileHandler struct {
	files    *file_service.FileQueryService
	activity *file_service.FileActivityLogService
}

// NewFileHandler create file handler instance
func NewFileHandler(files *file_service.FileQueryService, activity *file_service.FileActivityLogService) *FileHandler {
	return &FileHandler{files: files, activity: activity}
}

// List
// @Summary List files with optional owner and mime type filters
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param owner_uuid query string false "filter by owner"
// @Param mime_type query string false "filter by mime type"
// @Param limit query int false "page size, default 15"
// @Param offset query int false "page offset"
// @Success 200 {object} respond.Response{data=respond.FileListResponse}
// @Router /api/v1/files [get]
func (h *FileHandler) List(c *gin.Context) {
	query := &file_service.FileSearchQuery{
		OwnerUuid: c.Query("owner_uuid"),
		MimeType:  c.Query("mime_type"),
		Limit:     intQuery(c, "limit", 15),
		Offset:    intQuery(c, "offset", 0),
	}

	files, total, err := h.files.Search(query)
	if err != nil {
		log.Printf("File search failed: %v", err)
		respond.ServerError(c, "failed to list files")
		return
	}

	respond.Success(c, respond.ToFileListResponse(files, total, query.Limit, query.Offset))
}

// MyFiles
// @Summary List the caller's own files
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param mime_type query string false "filter by mime type"
// @Param limit query int false "page size, default 15"
// @Param offset query int false "page offset"
// @Success 200 {object} respond.Response{data=respond.FileListResponse}
// @Router /api/v1/files/my [get]
func (h *FileHandler) MyFiles(c *gin.Context) {
	query := &file_service.FileSearchQuery{
		OwnerUuid: middleware.UserUuid(c),
		MimeType:  c.Query("mime_type"),
		Limit:     intQuery(c, "limit", 15),
		Offset:    intQuery(c, "offset", 0),
	}

	files, total, err := h.files.Search(query)
	if err != nil {
		log.Printf("File search failed: %v", err)
		respond.ServerError(c, "failed to list files")
		return
	}

	respond.Success(c, respond.ToFileListResponse(files, total, query.Limit, query.Offset))
}

// Get
// @Summary File metadata by uuid
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "file uuid"
// @Success 200 {object} respond.Response{data=respond.FileResponse}
// @Failure 404 {object} respond.Response
// @Router /api/v1/files/{uuid} [get]
func (h *FileHandler) Get(c *gin.Context) {
	file, err := h.files.GetByUUID(c.Param("uuid"))
	if errors.Is(err, file_service.ErrFileNotFound) {
		respond.NotFound(c, err.Error())
		return
	}
	if err != nil {
		respond.ServerError(c, "failed to load file")
		return
	}
	respond.Success(c, respond.ToFileResponse(file))
}

// Download
// @Summary Download an owned file
// @Tags files
// @Produce octet-stream
// @Security BearerAuth
// @Param uuid path string true "file uuid"
// @Success 200 {file} binary
// @Failure 404 {object} respond.Response
// @Router /api/v1/files/{uuid}/download [get]
func (h *FileHandler) Download(c *gin.Context) {
	file, data, err := h.files.Download(
		c.Param("uuid"),
		middleware.UserUuid(c),
		middleware.UserID(c),
		c.ClientIP(),
		c.Request.UserAgent(),
	)
	if errors.Is(err, file_service.ErrFileNotFoundOrForbidden) {
		respond.NotFound(c, err.Error())
		return
	}
	if err != nil {
		log.Printf("Download failed for file %s: %v", c.Param("uuid"), err)
		respond.ServerError(c, "failed to download file")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.OriginalName))
	c.Data(200, file.MimeType, data)
}

// Delete
// @Summary Delete an owned file
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "file uuid"
// @Success 200 {object} respond.Response
// @Failure 404 {object} respond.Response
// @Router /api/v1/files/{uuid} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	err := h.files.Delete(
		c.Param("uuid"),
		middleware.UserUuid(c),
		middleware.UserID(c),
		c.ClientIP(),
		c.Request.UserAgent(),
	)
	if errors.Is(err, file_service.ErrFileNotFoundOrForbidden) {
		respond.NotFound(c, err.Error())
		return
	}
	if err != nil {
		log.Printf("Delete failed for file %s: %v", c.Param("uuid"), err)
		respond.ServerError(c, "failed to delete file")
		return
	}
	respond.SuccessWithMessage(c, "file deleted", nil)
}

// FileActivity
// @Summary Activity log entries for a file, newest first
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "file uuid"
// @Param limit query int false "max entries, default 50"
// @Success 200 {object} respond.Response{data=[]respond.ActivityLogResponse}
// @Router /api/v1/files/{uuid}/activity [get]
func (h *FileHandler) FileActivity(c *gin.Context) {
	entries, err := h.activity.GetFileActivityLogs(c.Param("uuid"), intQuery(c, "limit", 50))
	if err != nil {
		respond.ServerError(c, "failed to load activity")
		return
	}
	respond.Success(c, respond.ToActivityLogListResponse(entries))
}

// MyActivity
// @Summary Activity log entries for the caller, newest first
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Param limit query int false "max entries, default 50"
// @Success 200 {object} respond.Response{data=[]respond.ActivityLogResponse}
// @Router /api/v1/activity/my [get]
func (h *FileHandler) MyActivity(c *gin.Context) {
	entries, err := h.activity.GetUserActivityLogs(middleware.UserID(c), intQuery(c, "limit", 50))
	if err != nil {
		respond.ServerError(c, "failed to load activity")
		return
	}
	respond.Success(c, respond.ToActivityLogListResponse(entries))
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
