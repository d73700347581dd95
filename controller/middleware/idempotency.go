package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"strings"

	"file-vault/controller/respond"
	"file-vault/service/upload_service"

	"github.com/gin-gonic/gin"
)

// UploadIdempotency short-circuits uploads of a file whose client-supplied
// name already exists for the caller. Applied to the single-shot upload and
// complete-upload routes, not to per-chunk intake. The existing file is
// returned with 200 so it is distinguishable from a fresh 201 creation.
func UploadIdempotency(uploads *upload_service.UploadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerUuid := UserUuid(c)
		if ownerUuid == "" {
			c.Next()
			return
		}

		originalName := ""
		uploadID := ""

		if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			// Single-shot upload: the multipart form is parsed here and
			// cached on the request, so the handler can still read it
			if _, header, err := c.Request.FormFile("file"); err == nil {
				originalName = header.Filename
			}
		} else {
			// Completion request: peek at the JSON body, then restore it
			// for the handler's bind
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.Next()
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

			var probe struct {
				UploadId     string `json:"upload_id"`
				OriginalName string `json:"original_name"`
			}
			if json.Unmarshal(body, &probe) == nil {
				uploadID = probe.UploadId
				originalName = probe.OriginalName
				if originalName == "" && uploadID != "" {
					if name, ok := uploads.SessionOriginalName(uploadID, ownerUuid); ok {
						originalName = name
					}
				}
			}
		}

		// No candidate name: proceed with the normal operation
		if originalName == "" {
			c.Next()
			return
		}

		existing, err := uploads.FindExistingFile(originalName, ownerUuid)
		if err != nil {
			log.Printf("Idempotency lookup failed for %s: %v", originalName, err)
			c.Next()
			return
		}
		if existing == nil {
			c.Next()
			return
		}

		// The session backing a completion request is now redundant
		if uploadID != "" {
			uploads.DiscardSession(uploadID, ownerUuid)
		}

		c.Abort()
		respond.SuccessWithMessage(c, "file already exists", &respond.ExistingFileResponse{
			AlreadyExists: true,
			File:          respond.ToFileResponse(existing),
		})
	}
}
