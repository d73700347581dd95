package upload_service

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired the 24h validity window has passed; the session has
	// been cleaned up and the client must restart with a fresh upload id
	ErrSessionExpired = errors.New("upload session has expired, please start a new upload")

	// ErrSessionNotFound no session for the upload id, or the caller is not
	// its owner; the two cases are indistinguishable to the caller
	ErrSessionNotFound = errors.New("upload session not found")

	// ErrTypeNotAllowed the declared mime type is outside the allow-list
	ErrTypeNotAllowed = errors.New("file type not allowed")
)

// IncompleteUploadError reports progress when completion is attempted before
// every chunk has arrived
type IncompleteUploadError struct {
	Uploaded int
	Total    int
}

func (e *IncompleteUploadError) Error() string {
	return fmt.Sprintf("not all chunks have been uploaded: %d/%d", e.Uploaded, e.Total)
}

// MissingChunkError the contiguity check found a gap in the chunk index set
// during merge. The session is left in place so the chunk can be resubmitted.
type MissingChunkError struct {
	Index int
}

func (e *MissingChunkError) Error() string {
	return fmt.Sprintf("missing chunk: %d", e.Index)
}
