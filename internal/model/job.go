package model

import (
	"strings"
	"time"
)

// Job represents a single conversion request: one source URL turned into one or
// more MP3 files inside a job-private directory.
type Job struct {
	ID     string    `json:"id"`
	URL    string    `json:"url"`
	Status JobStatus `json:"status"`

	// Progress is the overall 0-100 completion estimate exposed to clients.
	// For multi-track jobs it is recomputed from track counts, not taken
	// verbatim from the worker.
	Progress float64 `json:"progress"`

	// Track-level progress. TotalTracks starts as the client-supplied estimate
	// and is corrected once the worker reports the authoritative count.
	TotalTracks          int     `json:"totalTracks"`
	CompletedTracks      int     `json:"completedTracks"`
	CurrentTrack         string  `json:"currentTrack"`
	CurrentTrackProgress float64 `json:"currentTrackProgress"`

	// Files lists result filenames in the order they were produced.
	Files []string `json:"files"`

	// ZipFile is the archive filename once built, empty otherwise.
	ZipFile string `json:"zipFile,omitempty"`

	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a copy of the job safe to hand to readers while the owning
// supervisor keeps mutating the original.
func (j *Job) Clone() Job {
	c := *j
	c.Files = make([]string, len(j.Files))
	copy(c.Files, j.Files)
	return c
}

// HasFile reports whether filename is already recorded in Files.
func (j *Job) HasFile(filename string) bool {
	for _, f := range j.Files {
		if f == filename {
			return true
		}
	}
	return false
}

// DisplayTitle returns the current track name, or the source URL while no
// track has been announced yet.
func (j *Job) DisplayTitle() string {
	if j.CurrentTrack != "" && !strings.HasPrefix(j.CurrentTrack, "http") {
		return j.CurrentTrack
	}
	return j.URL
}
