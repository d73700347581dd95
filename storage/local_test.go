package storage

import (
	"bytes"
	"errors"
	"testing"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}
	return s
}

func TestLocalStorageRoundTrip(t *testing.T) {
	s := newTestLocalStorage(t)

	key := "files/2026/08/01/abc.pdf"
	if err := s.Save(key, []byte("content")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !s.Exists(key) {
		t.Error("Exists = false after Save")
	}

	data, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(data, []byte("content")) {
		t.Errorf("Get = %q, want content", data)
	}

	if err := s.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if s.Exists(key) {
		t.Error("Exists = true after Delete")
	}
}

func TestLocalStorageGetMissing(t *testing.T) {
	s := newTestLocalStorage(t)

	_, err := s.Get("no/such/key")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLocalStorageDeleteMissingIsNoOp(t *testing.T) {
	s := newTestLocalStorage(t)

	if err := s.Delete("no/such/key"); err != nil {
		t.Errorf("Delete of missing key failed: %v", err)
	}
}

func TestLocalStorageSaveOverwrites(t *testing.T) {
	s := newTestLocalStorage(t)

	if err := s.Save("k", []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("k", []byte("two")); err != nil {
		t.Fatal(err)
	}
	data, err := s.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "two" {
		t.Errorf("Get = %q, want overwrite to win", data)
	}
}

func TestLocalStorageDeleteDirectory(t *testing.T) {
	s := newTestLocalStorage(t)

	if err := s.Save("chunks/up-1/chunk_0", []byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("chunks/up-1/chunk_1", []byte("b")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("chunks/up-2/chunk_0", []byte("c")); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteDirectory("chunks/up-1"); err != nil {
		t.Fatalf("DeleteDirectory failed: %v", err)
	}

	if s.Exists("chunks/up-1/chunk_0") || s.Exists("chunks/up-1/chunk_1") {
		t.Error("keys under the prefix should be gone")
	}
	if !s.Exists("chunks/up-2/chunk_0") {
		t.Error("keys outside the prefix must survive")
	}

	// Deleting an absent prefix is a no-op
	if err := s.DeleteDirectory("chunks/nope"); err != nil {
		t.Errorf("DeleteDirectory of missing prefix failed: %v", err)
	}
}
