package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func zipEntryNames(t *testing.T, path string) []string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func TestBuildOrReuse_CreatesArchive(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "one.mp3", "audio-one")
	writeTestFile(t, dir, "two.mp3", "audio-two")

	svc := NewService(nil)
	path, err := svc.BuildOrReuse(dir, []string{"one.mp3", "two.mp3"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if filepath.Base(path) != ArchiveName {
		t.Errorf("Archive name = %s, expected %s", filepath.Base(path), ArchiveName)
	}

	names := zipEntryNames(t, path)
	if len(names) != 2 {
		t.Fatalf("Expected 2 entries, got %d: %v", len(names), names)
	}
}

func TestBuildOrReuse_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "one.mp3", "audio-one")

	svc := NewService(nil)
	first, err := svc.BuildOrReuse(dir, []string{"one.mp3"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	info, err := os.Stat(first)
	if err != nil {
		t.Fatal(err)
	}
	firstModTime := info.ModTime()

	// Second call must return the same path without rebuilding, even with a
	// different file list
	writeTestFile(t, dir, "two.mp3", "audio-two")
	second, err := svc.BuildOrReuse(dir, []string{"one.mp3", "two.mp3"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if second != first {
		t.Errorf("Second call returned %s, expected %s", second, first)
	}

	info, err = os.Stat(second)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(firstModTime) {
		t.Error("Archive was rebuilt on second call")
	}

	if names := zipEntryNames(t, second); len(names) != 1 {
		t.Errorf("Expected archive to keep original single entry, got %v", names)
	}
}

func TestBuildOrReuse_SkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "exists.mp3", "audio")

	svc := NewService(nil)
	path, err := svc.BuildOrReuse(dir, []string{"exists.mp3", "vanished.mp3"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	names := zipEntryNames(t, path)
	if len(names) != 1 || names[0] != "exists.mp3" {
		t.Errorf("Expected [exists.mp3], got %v", names)
	}
}

func TestBuildOrReuse_NoUsableEntries(t *testing.T) {
	dir := t.TempDir()

	svc := NewService(nil)
	_, err := svc.BuildOrReuse(dir, []string{"gone-a.mp3", "gone-b.mp3"})
	if !errors.Is(err, ErrNoEntries) {
		t.Fatalf("Expected ErrNoEntries, got %v", err)
	}

	// A failed build must not leave a partial archive behind that a later
	// retry would mistake for a finished one
	if _, statErr := os.Stat(filepath.Join(dir, ArchiveName)); !os.IsNotExist(statErr) {
		t.Error("Partial archive left on disk after failed build")
	}
}
