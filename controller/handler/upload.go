package handler

import (
	"encoding/base64"
	"errors"
	"io"
	"log"

	"file-vault/conf"
	"file-vault/controller/middleware"
	"file-vault/controller/respond"
	"file-vault/service/upload_service"

	"github.com/gin-gonic/gin"
)

// UploadHandler single-shot and chunked upload endpoints
type UploadHandler struct {
	uploads *upload_service.UploadService
}

// NewUploadHandler create upload handler instance
func NewUploadHandler(uploads *upload_service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload
// @Summary Upload a complete file in one request
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "file content"
// @Success 201 {object} respond.Response{data=respond.FileResponse}
// @Failure 400 {object} respond.Response
// @Router /api/v1/files/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.InvalidParam(c, "file is required")
		return
	}

	if maxSize := conf.Cfg.Upload.MaxFileSize; maxSize > 0 && fileHeader.Size > maxSize {
		respond.InvalidParam(c, "file exceeds the maximum allowed size")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respond.ServerError(c, "failed to read file")
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		respond.ServerError(c, "failed to read file")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if override := c.PostForm("mime_type"); override != "" {
		mimeType = override
	}

	file, err := h.uploads.UploadFile(&upload_service.FileUploadRequest{
		OriginalName: fileHeader.Filename,
		Content:      content,
		MimeType:     mimeType,
		OwnerUuid:    middleware.UserUuid(c),
		ClientIP:     c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	if errors.Is(err, upload_service.ErrTypeNotAllowed) {
		respond.InvalidParam(c, "file type is not allowed")
		return
	}
	if err != nil {
		log.Printf("Upload failed for %s: %v", fileHeader.Filename, err)
		respond.ServerError(c, "failed to upload file")
		return
	}

	respond.Created(c, respond.ToFileResponse(file))
}

type uploadChunkRequest struct {
	UploadId     string `json:"upload_id" binding:"required"`
	ChunkIndex   int    `json:"chunk_index" binding:"gte=0"`
	TotalChunks  int    `json:"total_chunks" binding:"required,min=1"`
	OriginalName string `json:"original_name" binding:"required"`
	TotalSize    int64  `json:"total_size" binding:"required,min=1"`
	ChunkData    string `json:"chunk_data" binding:"required"`
	MimeType     string `json:"mime_type"`
}

// UploadChunk
// @Summary Upload one chunk of a chunked upload
// @Tags files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body uploadChunkRequest true "chunk payload, chunk_data base64 encoded"
// @Success 200 {object} respond.Response{data=upload_service.ChunkUploadResult}
// @Failure 410 {object} respond.Response
// @Router /api/v1/files/upload-chunk [post]
func (h *UploadHandler) UploadChunk(c *gin.Context) {
	var req uploadChunkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, err.Error())
		return
	}

	if req.ChunkIndex >= req.TotalChunks {
		respond.InvalidParam(c, "chunk_index must be less than total_chunks")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.ChunkData)
	if err != nil {
		respond.InvalidParam(c, "chunk_data is not valid base64")
		return
	}
	if len(data) == 0 {
		respond.InvalidParam(c, "chunk_data is empty")
		return
	}

	result, err := h.uploads.UploadChunk(&upload_service.ChunkUploadRequest{
		UploadId:     req.UploadId,
		ChunkIndex:   req.ChunkIndex,
		TotalChunks:  req.TotalChunks,
		OriginalName: req.OriginalName,
		TotalSize:    req.TotalSize,
		ChunkData:    data,
		MimeType:     req.MimeType,
		OwnerUuid:    middleware.UserUuid(c),
	})
	if errors.Is(err, upload_service.ErrSessionExpired) {
		respond.Gone(c, "upload session has expired")
		return
	}
	if err != nil {
		log.Printf("Chunk upload failed for session %s: %v", req.UploadId, err)
		respond.ServerError(c, "failed to store chunk")
		return
	}

	respond.Success(c, result)
}

type completeUploadRequest struct {
	UploadId string `json:"upload_id" binding:"required"`
}

// CompleteUpload
// @Summary Merge uploaded chunks into the final file
// @Tags files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body completeUploadRequest true "completion payload"
// @Success 201 {object} respond.Response{data=respond.FileResponse}
// @Failure 400 {object} respond.Response
// @Failure 404 {object} respond.Response
// @Failure 410 {object} respond.Response
// @Router /api/v1/files/complete-upload [post]
func (h *UploadHandler) CompleteUpload(c *gin.Context) {
	var req completeUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, err.Error())
		return
	}

	file, err := h.uploads.CompleteChunkedUpload(req.UploadId, middleware.UserUuid(c), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		var incomplete *upload_service.IncompleteUploadError
		var missing *upload_service.MissingChunkError
		switch {
		case errors.Is(err, upload_service.ErrSessionNotFound):
			respond.NotFound(c, "upload session not found")
		case errors.Is(err, upload_service.ErrSessionExpired):
			respond.Gone(c, "upload session has expired")
		case errors.Is(err, upload_service.ErrTypeNotAllowed):
			respond.InvalidParam(c, "file type is not allowed")
		case errors.As(err, &incomplete), errors.As(err, &missing):
			respond.InvalidParam(c, err.Error())
		default:
			log.Printf("Completion failed for session %s: %v", req.UploadId, err)
			respond.ServerError(c, "failed to complete upload")
		}
		return
	}

	respond.Created(c, respond.ToFileResponse(file))
}
