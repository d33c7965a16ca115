package platform

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/tunegrab/tunegrab/internal/model"
)

// Markers in yt-dlp output the parser recognizes
const (
	ExtractAudioMarker = "[ExtractAudio]"
	AudioExtension     = ".mp3"
)

var (
	trackIndexRe  = regexp.MustCompile(`(?i)Downloading item (\d+) of (\d+)`)
	destinationRe = regexp.MustCompile(`\[download\] Destination: (.+)`)
	percentRe     = regexp.MustCompile(`(\d+\.?\d*)%`)
	extractDestRe = regexp.MustCompile(`Destination: (.+)`)
)

// ParseLine inspects one line of raw worker output and extracts at most one
// structured progress event. The worker emits substantial unrelated diagnostic
// text; anything unrecognized is dropped. ParseLine never fails on malformed
// or partial lines.
func ParseLine(line string) (model.ProgressEvent, bool) {
	if m := trackIndexRe.FindStringSubmatch(line); m != nil {
		index, err1 := strconv.Atoi(m[1])
		total, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil || index < 1 || total < 1 {
			return model.ProgressEvent{}, false
		}
		return model.ProgressEvent{Kind: model.EventTrackIndex, Index: index, Total: total}, true
	}

	// Transcode phase: "[ExtractAudio] Destination: <file>.mp3" marks one
	// finished track.
	if strings.Contains(line, ExtractAudioMarker) {
		if m := extractDestRe.FindStringSubmatch(line); m != nil {
			name := filepath.Base(strings.TrimSpace(m[1]))
			if strings.HasSuffix(name, AudioExtension) {
				return model.ProgressEvent{Kind: model.EventTrackDone, Filename: name}, true
			}
		}
		return model.ProgressEvent{}, false
	}

	if m := destinationRe.FindStringSubmatch(line); m != nil {
		name := filepath.Base(strings.TrimSpace(m[1]))
		return model.ProgressEvent{Kind: model.EventDestination, Filename: name}, true
	}

	if m := percentRe.FindStringSubmatch(line); m != nil {
		percent, err := strconv.ParseFloat(m[1], 64)
		if err != nil || percent < 0 || percent > 100 {
			return model.ProgressEvent{}, false
		}
		return model.ProgressEvent{Kind: model.EventPercent, Percent: percent}, true
	}

	return model.ProgressEvent{}, false
}

// StripExtension removes the trailing file extension from a filename, turning
// a destination filename into a human-readable track label.
func StripExtension(filename string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext)
}
