package model

// EventKind identifies which worker output marker a ProgressEvent was parsed from
type EventKind int

const (
	// EventTrackIndex reports the 1-based index of the track now starting and
	// the total collection size
	EventTrackIndex EventKind = iota

	// EventDestination reports the output filename the worker is about to write
	EventDestination

	// EventPercent reports a percentage for the current track only
	EventPercent

	// EventTrackDone reports that one track's audio file has been produced
	EventTrackDone
)

// ProgressEvent is one structured observation extracted from a single line of
// raw worker output. Only the fields relevant to Kind are populated.
type ProgressEvent struct {
	Kind EventKind

	// EventTrackIndex
	Index int
	Total int

	// EventDestination / EventTrackDone: base filename, no directory
	Filename string

	// EventPercent
	Percent float64
}
