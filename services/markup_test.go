package services

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func TestExtractImagePaths(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"no images", "plain text", nil},
		{"single image", "before ![](uploads/a.png) after", []string{"uploads/a.png"}},
		{
			"multiple images",
			"![](a.png) text ![](dir/b.jpg)",
			[]string{"a.png", "dir/b.jpg"},
		},
		{"alt text not matched", "![logo](a.png)", nil},
		{"hyphens and dots", "![](up-loads/some-file.v2.png)", []string{"up-loads/some-file.v2.png"}},
		{"spaces break the match", "![](has space.png)", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractImagePaths(tt.text)
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractImagePaths(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCleanupRemovedImages(t *testing.T) {
	store := newFakeStore()
	if _, err := store.Store("a.png", []byte("a")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Store("b.png", []byte("b")); err != nil {
		t.Fatal(err)
	}

	oldText := "![](a.png) and ![](b.png)"
	newText := "only ![](b.png) left"
	CleanupRemovedImages(store, zerolog.Nop(), oldText, newText)

	if _, ok := store.files["a.png"]; ok {
		t.Error("a.png should have been deleted")
	}
	if _, ok := store.files["b.png"]; !ok {
		t.Error("b.png should have been kept")
	}
}

func TestCleanupRemovedImagesEmptyNewText(t *testing.T) {
	store := newFakeStore()
	store.Store("a.png", []byte("a"))
	store.Store("b.png", []byte("b"))

	CleanupRemovedImages(store, zerolog.Nop(), "![](a.png) ![](b.png)", "")

	if len(store.files) != 0 {
		t.Errorf("expected all referenced files deleted, %d left", len(store.files))
	}
}

func TestDiskStore(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	path, err := store.Store("uploads/avatar.png", []byte("png data"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if path != "uploads/avatar.png" {
		t.Errorf("unexpected path %q", path)
	}

	data, err := os.ReadFile(filepath.Join(store.root, path))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "png data" {
		t.Errorf("unexpected content %q", data)
	}

	if err := store.Delete(path); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// deleting again is a no-op
	if err := store.Delete(path); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}
