package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStoreSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/uploads")
	if err != nil {
		t.Fatal(err)
	}

	location, err := store.Save(context.Background(), "cover.PNG", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(location, "/uploads/") || !strings.HasSuffix(location, ".png") {
		t.Fatalf("location = %q", location)
	}

	onDisk := filepath.Join(dir, strings.TrimPrefix(location, "/uploads/"))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("saved content = %q", data)
	}

	if err := store.Remove(context.Background(), location); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Errorf("file still on disk after Remove: %v", err)
	}

	if err := store.Remove(context.Background(), "/"); err == nil {
		t.Error("Remove accepted a location with no file name")
	}
}
