package upload_service

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"file-vault/conf"
	"file-vault/database"
	"file-vault/model"
	"file-vault/model/dao"
	"file-vault/storage"

	"github.com/google/uuid"
)

// SessionStore persistence contract for chunked upload sessions
type SessionStore interface {
	Create(chunk *model.FileChunk) error
	GetByUploadID(uploadID string) (*model.FileChunk, error)
	GetByUploadIDAndOwner(uploadID, ownerUuid string) (*model.FileChunk, error)
	Update(chunk *model.FileChunk) error
	DeleteByUploadID(uploadID string) (int64, error)
	ListExpired(before time.Time, limit int) ([]*model.FileChunk, error)
}

// FileStore persistence contract for committed file records
type FileStore interface {
	Create(file *model.File) error
	GetByOriginalNameAndOwner(originalName, ownerUuid string) (*model.File, error)
}

// ActivityLogger appends activity log entries. A zero userID is resolved
// from the owner UUID by the implementation.
type ActivityLogger interface {
	LogActivity(fileUuid, action string, userID int64, ownerUuid, ipAddress, userAgent string) error
}

// UploadService coordinates single and chunked uploads: chunk intake,
// completion merge, session cleanup and the expiry sweep.
type UploadService struct {
	sessions SessionStore
	files    FileStore
	activity ActivityLogger
	storage  storage.Storage

	locks      *uploadLocks
	sessionTTL time.Duration
	now        func() time.Time
}

// NewUploadService create upload service instance
func NewUploadService(stor storage.Storage, activity ActivityLogger) *UploadService {
	ttl := 24 * time.Hour
	if conf.Cfg != nil && conf.Cfg.Upload.SessionTTLHours > 0 {
		ttl = time.Duration(conf.Cfg.Upload.SessionTTLHours) * time.Hour
	}
	return &UploadService{
		sessions:   dao.NewFileChunkDAO(),
		files:      dao.NewFileDAO(),
		activity:   activity,
		storage:    stor,
		locks:      newUploadLocks(),
		sessionTTL: ttl,
		now:        time.Now,
	}
}

// FileUploadRequest single-shot (non-chunked) upload request
type FileUploadRequest struct {
	OriginalName string
	Content      []byte
	MimeType     string
	OwnerUuid    string
	ClientIP     string
	UserAgent    string
}

// ChunkUploadRequest one chunk of a chunked upload
type ChunkUploadRequest struct {
	UploadId     string
	ChunkIndex   int
	TotalChunks  int
	OriginalName string
	TotalSize    int64
	ChunkData    []byte
	MimeType     string
	OwnerUuid    string
}

// ChunkUploadResult progress snapshot returned after each chunk
type ChunkUploadResult struct {
	UploadId       string `json:"upload_id"`
	UploadedChunks int    `json:"uploaded_chunks"`
	TotalChunks    int    `json:"total_chunks"`
	IsComplete     bool   `json:"is_complete"`
}

// UploadFile store a complete file in one shot. The mime type is validated
// immediately, unlike the chunked path where validation waits for completion.
func (s *UploadService) UploadFile(req *FileUploadRequest) (*model.File, error) {
	if len(req.Content) == 0 {
		return nil, fmt.Errorf("file content is empty")
	}
	if !IsMimeTypeAllowed(req.MimeType) {
		return nil, ErrTypeNotAllowed
	}

	now := s.now()
	ext := fileExtension(req.OriginalName)
	name := storedFileName(ext)
	key := finalFileKey(now, name)

	if err := s.storage.Save(key, req.Content); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	file := &model.File{
		UUID:         uuid.NewString(),
		Name:         name,
		OriginalName: req.OriginalName,
		Size:         int64(len(req.Content)),
		MimeType:     req.MimeType,
		Extension:    ext,
		Path:         key,
		OwnerUuid:    req.OwnerUuid,
		UploadDate:   now,
	}
	if err := s.files.Create(file); err != nil {
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	if err := s.activity.LogActivity(file.UUID, model.ActionUpload, 0, req.OwnerUuid, req.ClientIP, req.UserAgent); err != nil {
		log.Printf("Failed to log upload activity for file %s: %v", file.UUID, err)
	}

	return file, nil
}

// UploadChunk accept one chunk, creating the session on first contact.
// Session metadata is fixed at creation; later chunks only mutate the chunk
// path set. Re-uploading an index overwrites it without growing the count.
func (s *UploadService) UploadChunk(req *ChunkUploadRequest) (*ChunkUploadResult, error) {
	s.locks.Lock(req.UploadId)
	defer s.locks.Unlock(req.UploadId)

	now := s.now()

	session, err := s.sessions.GetByUploadID(req.UploadId)
	if errors.Is(err, database.ErrNotFound) {
		session = &model.FileChunk{
			UploadId:       req.UploadId,
			OriginalName:   req.OriginalName,
			TotalSize:      req.TotalSize,
			TotalChunks:    req.TotalChunks,
			UploadedChunks: 0,
			ChunkPaths:     model.ChunkPathMap{},
			MimeType:       req.MimeType,
			OwnerUuid:      req.OwnerUuid,
			ExpiresAt:      now.Add(s.sessionTTL),
		}
		if err := s.sessions.Create(session); err != nil {
			return nil, fmt.Errorf("failed to create upload session: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	if session.IsExpired(now) {
		s.cleanup(session)
		return nil, ErrSessionExpired
	}

	key := chunkKey(req.UploadId, req.ChunkIndex)
	if err := s.storage.Save(key, req.ChunkData); err != nil {
		return nil, fmt.Errorf("failed to store chunk %d: %w", req.ChunkIndex, err)
	}

	if session.ChunkPaths == nil {
		session.ChunkPaths = model.ChunkPathMap{}
	}
	session.ChunkPaths[req.ChunkIndex] = key
	session.UploadedChunks = len(session.ChunkPaths)

	if err := s.sessions.Update(session); err != nil {
		return nil, fmt.Errorf("failed to update upload session: %w", err)
	}

	return &ChunkUploadResult{
		UploadId:       req.UploadId,
		UploadedChunks: session.UploadedChunks,
		TotalChunks:    session.TotalChunks,
		IsComplete:     session.IsComplete(),
	}, nil
}

// CompleteChunkedUpload merge all chunks into the final file, persist its
// record, log the upload and clean up the session. At most one concurrent
// completion succeeds per upload id: the per-session lock serializes callers
// and the loser finds the session row already gone.
func (s *UploadService) CompleteChunkedUpload(uploadID, ownerUuid, clientIP, userAgent string) (*model.File, error) {
	s.locks.Lock(uploadID)
	defer s.locks.Unlock(uploadID)

	now := s.now()

	session, err := s.sessions.GetByUploadIDAndOwner(uploadID, ownerUuid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	if session.IsExpired(now) {
		s.cleanup(session)
		return nil, ErrSessionExpired
	}

	if !session.IsComplete() {
		return nil, &IncompleteUploadError{Uploaded: session.UploadedChunks, Total: session.TotalChunks}
	}

	// Deferred mime validation: the one check postponed from chunk intake
	if session.MimeType != "" && !IsMimeTypeAllowed(session.MimeType) {
		s.cleanup(session)
		return nil, ErrTypeNotAllowed
	}

	// Merge strictly in index order. The counter matching TotalChunks does
	// not prove the index set is contiguous, so every index is checked. On a
	// gap the session is left in place for diagnosis or chunk resubmission.
	var buf bytes.Buffer
	for i := 0; i < session.TotalChunks; i++ {
		key, ok := session.ChunkPaths[i]
		if !ok {
			return nil, &MissingChunkError{Index: i}
		}
		data, err := s.storage.Get(key)
		if err != nil {
			return nil, fmt.Errorf("failed to read chunk %d: %w", i, err)
		}
		buf.Write(data)
	}

	ext := fileExtension(session.OriginalName)
	name := storedFileName(ext)
	key := finalFileKey(now, name)

	if err := s.storage.Save(key, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to store merged file: %w", err)
	}

	// Size comes from the merged bytes, not the client-declared total
	file := &model.File{
		UUID:         uuid.NewString(),
		Name:         name,
		OriginalName: session.OriginalName,
		Size:         int64(buf.Len()),
		MimeType:     session.MimeType,
		Extension:    ext,
		Path:         key,
		OwnerUuid:    ownerUuid,
		UploadDate:   now,
	}
	if err := s.files.Create(file); err != nil {
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	if err := s.activity.LogActivity(file.UUID, model.ActionUpload, 0, ownerUuid, clientIP, userAgent); err != nil {
		log.Printf("Failed to log upload activity for file %s: %v", file.UUID, err)
	}

	s.cleanup(session)

	return file, nil
}

// FindExistingFile idempotency lookup: the committed file with the same
// client-supplied name for this owner, or nil when there is none
func (s *UploadService) FindExistingFile(originalName, ownerUuid string) (*model.File, error) {
	file, err := s.files.GetByOriginalNameAndOwner(originalName, ownerUuid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

// SessionOriginalName resolve the original name recorded on an owner's
// session, for idempotency checks on completion requests
func (s *UploadService) SessionOriginalName(uploadID, ownerUuid string) (string, bool) {
	session, err := s.sessions.GetByUploadIDAndOwner(uploadID, ownerUuid)
	if err != nil {
		return "", false
	}
	return session.OriginalName, true
}

// DiscardSession clean up a session made redundant by an idempotent hit
func (s *UploadService) DiscardSession(uploadID, ownerUuid string) {
	s.locks.Lock(uploadID)
	defer s.locks.Unlock(uploadID)

	session, err := s.sessions.GetByUploadIDAndOwner(uploadID, ownerUuid)
	if err != nil {
		return
	}
	s.cleanup(session)
}

// SweepExpired clean up every session whose validity window has passed,
// returning the number of sessions cleaned
func (s *UploadService) SweepExpired(batchSize int) (int, error) {
	now := s.now()

	expired, err := s.sessions.ListExpired(now, batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired sessions: %w", err)
	}

	cleaned := 0
	for _, session := range expired {
		s.locks.Lock(session.UploadId)

		// Claim the record first so a racing completion or second sweep
		// pass cannot clean the same session twice
		rows, err := s.sessions.DeleteByUploadID(session.UploadId)
		if err != nil {
			log.Printf("Failed to delete expired session %s: %v", session.UploadId, err)
			s.locks.Unlock(session.UploadId)
			continue
		}
		if rows == 0 {
			s.locks.Unlock(session.UploadId)
			continue
		}

		s.deleteChunkBytes(session)
		cleaned++

		s.locks.Unlock(session.UploadId)
	}

	return cleaned, nil
}

// cleanup delete chunk blobs, the chunk directory and the session record.
// Idempotent: missing blobs are skipped, a missing record is a no-op.
func (s *UploadService) cleanup(session *model.FileChunk) {
	s.deleteChunkBytes(session)

	if _, err := s.sessions.DeleteByUploadID(session.UploadId); err != nil {
		log.Printf("Failed to delete session record %s: %v", session.UploadId, err)
	}
}

func (s *UploadService) deleteChunkBytes(session *model.FileChunk) {
	for _, key := range session.ChunkPaths {
		if !s.storage.Exists(key) {
			continue
		}
		if err := s.storage.Delete(key); err != nil {
			log.Printf("Failed to delete chunk %s: %v", key, err)
		}
	}

	if err := s.storage.DeleteDirectory(chunkDirKey(session.UploadId)); err != nil {
		log.Printf("Failed to delete chunk directory for %s: %v", session.UploadId, err)
	}
}

func chunkKey(uploadID string, index int) string {
	return fmt.Sprintf("chunks/%s/chunk_%d", uploadID, index)
}

func chunkDirKey(uploadID string) string {
	return "chunks/" + uploadID
}

func finalFileKey(now time.Time, name string) string {
	return "files/" + now.Format("2006/01/02") + "/" + name
}

func storedFileName(ext string) string {
	if ext == "" {
		return uuid.NewString()
	}
	return uuid.NewString() + "." + ext
}

func fileExtension(originalName string) string {
	return strings.TrimPrefix(path.Ext(originalName), ".")
}
