package storage

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *IconStore {
	t.Helper()
	store, err := NewIconStore(IconStoreOpts{BasePath: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create icon store: %s", err)
	}
	return store
}

func TestSaveIconRoundtrip(t *testing.T) {
	store := newTestStore(t)

	data := []byte("<svg></svg>")
	filename, err := store.SaveIcon(SaveIconOpts{
		Slug:        "tor-browser",
		ContentType: "image/svg+xml",
		Data:        data,
	})
	if err != nil {
		t.Fatalf("failed to save icon: %s", err)
	}
	if !strings.HasPrefix(filename, "tor-browser-") || !strings.HasSuffix(filename, ".svg") {
		t.Errorf("expected filename like 'tor-browser-<ts>.svg', got '%s'", filename)
	}

	stored, contentType, err := store.GetIcon(filename)
	if err != nil {
		t.Fatalf("failed to get icon: %s", err)
	}
	if !bytes.Equal(stored, data) {
		t.Error("expected stored icon contents to match the upload")
	}
	if contentType != "image/svg+xml" {
		t.Errorf("expected content type 'image/svg+xml', got '%s'", contentType)
	}
}

func TestSaveIconRejectsUnknownType(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.SaveIcon(SaveIconOpts{
		Slug:        "signal",
		ContentType: "application/pdf",
		Data:        []byte("%PDF"),
	}); !errors.Is(err, ErrorIconTypeNotAllowed) {
		t.Errorf("expected ErrorIconTypeNotAllowed, got: %s", err)
	}
}

func TestSaveIconRejectsOversized(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.SaveIcon(SaveIconOpts{
		Slug:        "signal",
		ContentType: "image/png",
		Data:        make([]byte, MaxIconSizeBytes+1),
	}); !errors.Is(err, ErrorIconTooLarge) {
		t.Errorf("expected ErrorIconTooLarge, got: %s", err)
	}
}

func TestSaveIconReplacesPrevious(t *testing.T) {
	store := newTestStore(t)

	first, err := store.SaveIcon(SaveIconOpts{
		Slug:        "signal",
		ContentType: "image/png",
		Data:        []byte("png-1"),
	})
	if err != nil {
		t.Fatalf("failed to save first icon: %s", err)
	}
	if _, err := store.SaveIcon(SaveIconOpts{
		Slug:             "signal",
		ContentType:      "image/png",
		Data:             []byte("png-2"),
		PreviousFilename: first,
	}); err != nil {
		t.Fatalf("failed to save replacement icon: %s", err)
	}
	if _, _, err := store.GetIcon(first); !errors.Is(err, ErrorIconNotFound) {
		t.Errorf("expected the previous icon to be removed, got: %s", err)
	}
}

func TestDeleteIconMissing(t *testing.T) {
	store := newTestStore(t)
	if err := store.DeleteIcon("never-existed.png"); !errors.Is(err, ErrorIconNotFound) {
		t.Errorf("expected ErrorIconNotFound, got: %s", err)
	}
}
