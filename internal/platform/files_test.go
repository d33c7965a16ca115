package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")

	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("Directory not created: %v", err)
	}

	// Second call on an existing directory is a no-op
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatalf("Unexpected error on existing dir: %v", err)
	}
}

func TestListFilesWithExtension(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.mp3", "a.mp3", "skip.webm", "partial.mp3.part"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.mp3"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := ListFilesWithExtension(dir, ".mp3")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []string{"a.mp3", "b.mp3"}
	if len(files) != len(expected) {
		t.Fatalf("Expected %d files, got %d: %v", len(expected), len(files), files)
	}
	for i, name := range expected {
		if files[i] != name {
			t.Errorf("File %d = %s, expected %s (sorted)", i, files[i], name)
		}
	}
}

func TestListStaleSubdirectories(t *testing.T) {
	root := t.TempDir()

	oldDir := filepath.Join(root, "old-job")
	newDir := filepath.Join(root, "new-job")
	if err := os.Mkdir(oldDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(newDir, 0755); err != nil {
		t.Fatal(err)
	}

	past := time.Now().Add(-10 * time.Minute)
	if err := os.Chtimes(oldDir, past, past); err != nil {
		t.Fatal(err)
	}

	stale, err := ListStaleSubdirectories(root, 5*time.Minute)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(stale) != 1 || stale[0] != "old-job" {
		t.Errorf("Expected [old-job], got %v", stale)
	}
}

func TestClearDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "leftover"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "leftover", "f.mp3"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	ClearDirectory(root)

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty root, found %d entries", len(entries))
	}
}

func TestSafeJoin(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"song.mp3", false},
		{"Artist - Song.mp3", false},
		{"../escape.mp3", true},
		{"../../etc/passwd", true},
		{"/etc/passwd", true},
		{"nested/song.mp3", true},
		{"..", true},
		{".", true},
		{"", true},
	}

	for _, test := range tests {
		path, err := SafeJoin(dir, test.filename)
		if test.wantErr {
			if err == nil {
				t.Errorf("SafeJoin(%q) = %q, expected error", test.filename, path)
			}
			continue
		}
		if err != nil {
			t.Errorf("SafeJoin(%q) unexpected error: %v", test.filename, err)
			continue
		}
		if path != filepath.Join(dir, test.filename) {
			t.Errorf("SafeJoin(%q) = %q", test.filename, path)
		}
	}
}
