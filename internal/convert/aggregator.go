package convert

import (
	"math"

	"github.com/tunegrab/tunegrab/internal/model"
	"github.com/tunegrab/tunegrab/internal/platform"
)

// MaxPreTerminalProgress caps collection progress below 100 until the worker
// actually exits; only the terminal transition reports 100.
const MaxPreTerminalProgress = 99

// applyEvent folds one parsed worker event into the job record. Called inside
// the store's write path by the job's owning supervisor.
func applyEvent(j *model.Job, ev model.ProgressEvent) {
	switch ev.Kind {
	case model.EventTrackIndex:
		// The worker's count is authoritative and replaces the client estimate.
		j.TotalTracks = ev.Total
		// Tracks before the announced one are done. Never walk the counter
		// backwards on a repeated or late marker.
		if done := ev.Index - 1; done > j.CompletedTracks {
			j.CompletedTracks = done
		}
		if j.CompletedTracks > j.TotalTracks {
			j.CompletedTracks = j.TotalTracks
		}
		j.CurrentTrackProgress = 0

	case model.EventDestination:
		j.CurrentTrack = platform.StripExtension(ev.Filename)

	case model.EventPercent:
		j.CurrentTrackProgress = ev.Percent
		j.Progress = overallProgress(j.TotalTracks, j.CompletedTracks, ev.Percent)

	case model.EventTrackDone:
		if !j.HasFile(ev.Filename) {
			j.Files = append(j.Files, ev.Filename)
			j.CompletedTracks = len(j.Files)
		}
	}
}

// overallProgress normalizes per-track worker percentages into a 0-100
// estimate for the whole job. A single track passes through unchanged. In a
// collection each track owns an equal 100/total share, and the result stays
// below 100 until every track's output file is confirmed at the terminal
// transition.
func overallProgress(total, completed int, current float64) float64 {
	if total <= 1 {
		return current
	}
	completedShare := float64(completed) / float64(total) * 100
	currentShare := current / 100 * (100 / float64(total))
	return math.Min(MaxPreTerminalProgress, completedShare+currentShare)
}
