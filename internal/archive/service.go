package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Archive constants
const (
	// ArchiveName is the fixed archive filename inside a job directory
	ArchiveName = "TuneGrab-Collection.zip"
)

// ErrNoEntries means none of the requested files could be added; the caller
// should report a packaging failure without touching the job's own status.
var ErrNoEntries = errors.New("no files could be added to archive")

// Service bundles a job's result files into a single downloadable zip
type Service struct {
	logger *slog.Logger
}

// NewService creates a new archive service
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildOrReuse returns the path of the archive for dir, building it from the
// listed files on first call. An archive already on disk is returned unchanged,
// never rebuilt. Listed files that have gone missing are skipped rather than
// failing the whole operation.
func (s *Service) BuildOrReuse(dir string, files []string) (string, error) {
	zipPath := filepath.Join(dir, ArchiveName)

	if _, err := os.Stat(zipPath); err == nil {
		return zipPath, nil
	}

	added, err := s.build(zipPath, dir, files)
	if err != nil {
		os.Remove(zipPath)
		return "", fmt.Errorf("failed to create archive: %w", err)
	}
	if added == 0 {
		os.Remove(zipPath)
		return "", ErrNoEntries
	}

	s.logger.Info("archive created", "path", zipPath, "entries", added)
	return zipPath, nil
}

// build writes the zip and returns how many entries made it in
func (s *Service) build(zipPath, dir string, files []string) (int, error) {
	out, err := os.Create(zipPath)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	added := 0
	for _, name := range files {
		if err := s.addFile(zw, dir, name); err != nil {
			if os.IsNotExist(err) {
				s.logger.Warn("skipping missing file", "file", name)
				continue
			}
			zw.Close()
			return added, err
		}
		added++
	}

	if err := zw.Close(); err != nil {
		return added, err
	}
	return added, nil
}

func (s *Service) addFile(zw *zip.Writer, dir, name string) error {
	src, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer src.Close()

	header := &zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	}
	if info, err := src.Stat(); err == nil {
		header.Modified = info.ModTime()
	}

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}
