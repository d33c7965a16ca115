package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// RemoveDirectory deletes dirPath and everything under it
func RemoveDirectory(dirPath string) error {
	return os.RemoveAll(dirPath)
}

// ListFilesWithExtension returns the names of regular files in dir whose name
// ends with ext, sorted alphabetically. Temporary worker files (.part, .ytdl)
// never match because their extension differs.
func ListFilesWithExtension(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ext) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// ListStaleSubdirectories returns subdirectories of root whose modification
// time is older than maxAge. Used to find leftover job directories from a
// prior run that no longer have a registry entry.
func ListStaleSubdirectories(root string, maxAge time.Duration) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
	}

	cutoff := time.Now().Add(-maxAge)
	var stale []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			stale = append(stale, entry.Name())
		}
	}
	return stale, nil
}

// ClearDirectory removes every entry under root without removing root itself.
// Errors on individual entries are ignored; a file held open by a racing
// download disappears once its handle closes.
func ClearDirectory(root string) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return
	}
	for _, entry := range entries {
		_ = os.RemoveAll(filepath.Join(root, entry.Name()))
	}
}

// SafeJoin joins dir and filename, rejecting any filename that would resolve
// outside dir (path separators, parent references, absolute paths).
func SafeJoin(dir, filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || filename == ".." || filename == "." {
		return "", fmt.Errorf("invalid filename: %q", filename)
	}
	joined := filepath.Join(dir, filename)
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	absJoined, err := filepath.Abs(joined)
	if err != nil {
		return "", err
	}
	if absJoined != absDir && !strings.HasPrefix(absJoined, absDir+string(filepath.Separator)) {
		return "", fmt.Errorf("filename escapes directory: %q", filename)
	}
	return joined, nil
}
