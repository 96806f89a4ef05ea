package storage

import (
	"bytes"
	"context"
	"testing"
)

func TestWriteThenRead(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	payload := []byte{0x89, 'P', 'N', 'G'}
	key, err := store.Write(context.Background(), "original_abc.png", payload)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if key != "original_abc.png" {
		t.Fatalf("key = %q", key)
	}
	got, err := store.Read(context.Background(), key)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("read bytes mismatch")
	}
}

func TestWriteRejectsTraversalKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, key := range []string{"", "../outside.png", "a/../../outside.png"} {
		if _, err := store.Write(context.Background(), key, []byte("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestReadMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Read(context.Background(), "nope.png"); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
