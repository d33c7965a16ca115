package convert

import "github.com/tunegrab/tunegrab/internal/model"

// Converter defines the interface for the conversion service.
type Converter interface {
	Create(url string, totalEstimate int) (string, error)
	Status(id string) (model.Job, error)
	Files(id string) ([]string, error)
	ArchivePath(id string) (string, error)
	FilePath(id, filename string) (string, error)
}
