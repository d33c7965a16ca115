package archive

// Packager defines the interface for the archive service.
type Packager interface {
	BuildOrReuse(dir string, files []string) (string, error)
}
