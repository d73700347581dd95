package file_service

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"file-vault/database"
	"file-vault/model"
)

// fakeFileRecordStore in-memory FileRecordStore
type fakeFileRecordStore struct {
	files   []*model.File
	deleted []string
}

func (f *fakeFileRecordStore) GetByUUID(uuid string) (*model.File, error) {
	for _, file := range f.files {
		if file.UUID == uuid {
			return file, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeFileRecordStore) GetByUUIDAndOwner(uuid, ownerUuid string) (*model.File, error) {
	for _, file := range f.files {
		if file.UUID == uuid && file.OwnerUuid == ownerUuid {
			return file, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeFileRecordStore) List(ownerUuid, mimeType string, limit, offset int) ([]*model.File, int64, error) {
	var matched []*model.File
	for _, file := range f.files {
		if ownerUuid != "" && file.OwnerUuid != ownerUuid {
			continue
		}
		if mimeType != "" && file.MimeType != mimeType {
			continue
		}
		matched = append(matched, file)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (f *fakeFileRecordStore) SoftDelete(file *model.File) error {
	f.deleted = append(f.deleted, file.UUID)
	for i, existing := range f.files {
		if existing.UUID == file.UUID {
			f.files = append(f.files[:i], f.files[i+1:]...)
			break
		}
	}
	return nil
}

// fakeActivityStore records appended entries
type fakeActivityStore struct {
	entries []*model.FileActivityLog
}

func (f *fakeActivityStore) Create(entry *model.FileActivityLog) error {
	now := time.Now()
	entry.CreatedAt = now
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeActivityStore) ListByFileUUID(fileUuid string, limit int) ([]*model.FileActivityLog, error) {
	var out []*model.FileActivityLog
	for _, e := range f.entries {
		if e.FileUuid == fileUuid {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeActivityStore) ListByUserID(userID int64, limit int) ([]*model.FileActivityLog, error) {
	var out []*model.FileActivityLog
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// fakeUserResolver static uuid to id mapping
type fakeUserResolver struct {
	ids map[string]int64
}

func (f *fakeUserResolver) GetIDByUUID(uuid string) (int64, error) {
	id, ok := f.ids[uuid]
	if !ok {
		return 0, database.ErrNotFound
	}
	return id, nil
}

// memBlobs minimal Storage for query service tests
type memBlobs map[string][]byte

func (m memBlobs) Save(key string, data []byte) error { m[key] = data; return nil }
func (m memBlobs) Get(key string) ([]byte, error) {
	data, ok := m[key]
	if !ok {
		return nil, errors.New("blob not found")
	}
	return data, nil
}
func (m memBlobs) Delete(key string) error        { delete(m, key); return nil }
func (m memBlobs) Exists(key string) bool         { _, ok := m[key]; return ok }
func (m memBlobs) DeleteDirectory(_ string) error { return nil }

func newQueryEnv() (*FileQueryService, *fakeFileRecordStore, *fakeActivityStore, memBlobs) {
	records := &fakeFileRecordStore{}
	activityStore := &fakeActivityStore{}
	blobs := memBlobs{}
	activity := &FileActivityLogService{
		logs:  activityStore,
		users: &fakeUserResolver{ids: map[string]int64{"owner-1": 7}},
	}
	svc := &FileQueryService{files: records, storage: blobs, activity: activity}
	return svc, records, activityStore, blobs
}

func seedFile(records *fakeFileRecordStore, blobs memBlobs, uuid, owner, name string, content []byte) {
	records.files = append(records.files, &model.File{
		UUID:         uuid,
		Name:         uuid + ".pdf",
		OriginalName: name,
		Size:         int64(len(content)),
		MimeType:     "application/pdf",
		Extension:    "pdf",
		Path:         "files/2026/08/01/" + uuid + ".pdf",
		OwnerUuid:    owner,
	})
	blobs["files/2026/08/01/"+uuid+".pdf"] = content
}

func TestSearchAppliesDefaults(t *testing.T) {
	svc, records, _, blobs := newQueryEnv()
	seedFile(records, blobs, "f-1", "owner-1", "a.pdf", []byte("a"))
	seedFile(records, blobs, "f-2", "owner-2", "b.pdf", []byte("b"))

	files, total, err := svc.Search(&FileSearchQuery{OwnerUuid: "owner-1", Limit: 0, Offset: -5})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 1 || len(files) != 1 || files[0].UUID != "f-1" {
		t.Errorf("Search = %d files, total %d", len(files), total)
	}
}

func TestGetByUUID(t *testing.T) {
	svc, records, _, blobs := newQueryEnv()
	seedFile(records, blobs, "f-1", "owner-1", "a.pdf", []byte("a"))

	file, err := svc.GetByUUID("f-1")
	if err != nil || file.UUID != "f-1" {
		t.Errorf("GetByUUID = (%v, %v)", file, err)
	}

	_, err = svc.GetByUUID("missing")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("err = %v, want ErrFileNotFound", err)
	}
}

func TestDownloadOwnerOnly(t *testing.T) {
	svc, records, activityStore, blobs := newQueryEnv()
	seedFile(records, blobs, "f-1", "owner-1", "a.pdf", []byte("pdfdata"))

	file, data, err := svc.Download("f-1", "owner-1", 7, "10.0.0.1", "agent")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if file.UUID != "f-1" || !bytes.Equal(data, []byte("pdfdata")) {
		t.Errorf("Download = (%v, %q)", file, data)
	}
	if len(activityStore.entries) != 1 || activityStore.entries[0].Action != model.ActionDownload {
		t.Errorf("activity = %+v, want one download entry", activityStore.entries)
	}

	// Non-owner gets the same error as a missing file
	_, _, err = svc.Download("f-1", "owner-2", 8, "", "")
	if !errors.Is(err, ErrFileNotFoundOrForbidden) {
		t.Errorf("err = %v, want ErrFileNotFoundOrForbidden", err)
	}
	_, _, err = svc.Download("missing", "owner-1", 7, "", "")
	if !errors.Is(err, ErrFileNotFoundOrForbidden) {
		t.Errorf("err = %v, want ErrFileNotFoundOrForbidden", err)
	}
}

func TestDeleteRemovesBytesAndRecord(t *testing.T) {
	svc, records, activityStore, blobs := newQueryEnv()
	seedFile(records, blobs, "f-1", "owner-1", "a.pdf", []byte("pdfdata"))
	path := records.files[0].Path

	if err := svc.Delete("f-1", "owner-1", 7, "10.0.0.1", "agent"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if blobs.Exists(path) {
		t.Error("blob should be gone after delete")
	}
	if len(records.deleted) != 1 || records.deleted[0] != "f-1" {
		t.Errorf("soft-deleted = %v", records.deleted)
	}
	if len(activityStore.entries) != 1 || activityStore.entries[0].Action != model.ActionDelete {
		t.Errorf("activity = %+v, want one delete entry", activityStore.entries)
	}
}

func TestDeleteNonOwner(t *testing.T) {
	svc, records, _, blobs := newQueryEnv()
	seedFile(records, blobs, "f-1", "owner-1", "a.pdf", []byte("pdfdata"))

	err := svc.Delete("f-1", "owner-2", 8, "", "")
	if !errors.Is(err, ErrFileNotFoundOrForbidden) {
		t.Errorf("err = %v, want ErrFileNotFoundOrForbidden", err)
	}
	if len(records.deleted) != 0 {
		t.Error("non-owner delete must not remove the record")
	}
}

func TestLogActivityResolvesUserID(t *testing.T) {
	activityStore := &fakeActivityStore{}
	svc := &FileActivityLogService{
		logs:  activityStore,
		users: &fakeUserResolver{ids: map[string]int64{"owner-1": 7}},
	}

	if err := svc.LogActivity("f-1", model.ActionUpload, 0, "owner-1", "10.0.0.1", "agent"); err != nil {
		t.Fatalf("LogActivity failed: %v", err)
	}
	if activityStore.entries[0].UserID != 7 {
		t.Errorf("UserID = %d, want resolved 7", activityStore.entries[0].UserID)
	}

	// Unresolvable owner still produces an entry
	if err := svc.LogActivity("f-2", model.ActionUpload, 0, "unknown", "", ""); err != nil {
		t.Fatalf("LogActivity failed: %v", err)
	}
	if activityStore.entries[1].UserID != 0 {
		t.Errorf("UserID = %d, want 0 for unresolvable owner", activityStore.entries[1].UserID)
	}
}
