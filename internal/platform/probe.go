package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/tunegrab/tunegrab/internal/model"
	"github.com/ytget/ytdlp/v2"
)

// Probe constants
const (
	DefaultProbeTimeout = 60 * time.Second

	PlaylistParam  = "list="
	ParamSeparator = "&"

	DefaultPlaylistTitle = "Playlist"
	PlaylistSuffix       = " Playlist"
	MinPrefixLength      = 10

	VideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Prober resolves a URL into media metadata ahead of job creation: whether it
// is a collection, how many tracks it holds, and display titles. Playlist
// URLs are resolved through the ytdlp library; single videos are probed via
// the worker binary itself.
type Prober struct {
	workerCmd string
	timeout   time.Duration
}

// NewProber creates a prober that shells out to workerCmd for single-video metadata
func NewProber(workerCmd string) *Prober {
	if workerCmd == "" {
		workerCmd = WorkerCommand
	}
	return &Prober{
		workerCmd: workerCmd,
		timeout:   DefaultProbeTimeout,
	}
}

// SetTimeout sets the timeout for probe operations
func (p *Prober) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// Probe fetches metadata for url
func (p *Prober) Probe(ctx context.Context, url string) (*model.MediaInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if playlistID := extractPlaylistID(url); playlistID != "" {
		return p.probePlaylist(ctx, url, playlistID)
	}
	return p.probeVideo(ctx, url)
}

// probePlaylist resolves playlist items through the ytdlp library
func (p *Prober) probePlaylist(ctx context.Context, url, playlistID string) (*model.MediaInfo, error) {
	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	tracks := make([]model.MediaItem, 0, len(items))
	for _, it := range items {
		tracks = append(tracks, model.MediaItem{
			Title: it.Title,
			URL:   fmt.Sprintf(VideoURLTemplate, it.VideoID),
		})
	}

	return &model.MediaInfo{
		Type:  model.MediaTypePlaylist,
		Title: playlistTitle(tracks),
		URL:   url,
		Count: len(tracks),
		Items: tracks,
	}, nil
}

// probeVideo shells out to the worker for single-video metadata
func (p *Prober) probeVideo(ctx context.Context, url string) (*model.MediaInfo, error) {
	cmd := exec.CommandContext(ctx, p.workerCmd, BuildProbeArgs(url)...)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", url, err)
	}
	return ParseProbeOutput(url, string(output))
}

// ParseProbeOutput parses the worker's --dump-json output: one JSON object per
// line, one line for a single video, several for a flat playlist.
func ParseProbeOutput(url, output string) (*model.MediaInfo, error) {
	lines := strings.Split(strings.TrimSpace(output), "\n")

	var entries []map[string]any
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no parseable metadata for %s", url)
	}

	if len(entries) == 1 {
		entry := entries[0]
		channel := jsonString(entry, "channel")
		if channel == "" {
			channel = jsonString(entry, "uploader")
		}
		return &model.MediaInfo{
			Type:    model.MediaTypeVideo,
			Title:   jsonString(entry, "title"),
			URL:     url,
			Channel: channel,
		}, nil
	}

	title := jsonString(entries[0], "playlist_title")
	if title == "" {
		title = DefaultPlaylistTitle
	}
	items := make([]model.MediaItem, 0, len(entries))
	for _, entry := range entries {
		itemURL := jsonString(entry, "url")
		if itemURL == "" {
			itemURL = jsonString(entry, "webpage_url")
		}
		items = append(items, model.MediaItem{
			Title: jsonString(entry, "title"),
			URL:   itemURL,
		})
	}
	return &model.MediaInfo{
		Type:  model.MediaTypePlaylist,
		Title: title,
		URL:   url,
		Count: len(items),
		Items: items,
	}, nil
}

// extractPlaylistID extracts the playlist ID from various URL formats, empty
// if the URL carries no playlist parameter
func extractPlaylistID(url string) string {
	if !strings.Contains(url, PlaylistParam) {
		return ""
	}
	parts := strings.Split(url, PlaylistParam)
	if len(parts) < 2 {
		return ""
	}
	playlistPart := parts[1]
	if strings.Contains(playlistPart, ParamSeparator) {
		playlistPart = strings.Split(playlistPart, ParamSeparator)[0]
	}
	return playlistPart
}

// playlistTitle derives a display title from track titles: a shared prefix if
// the tracks have one, else the first track's title
func playlistTitle(tracks []model.MediaItem) string {
	if len(tracks) == 0 {
		return DefaultPlaylistTitle
	}
	if len(tracks) > 1 {
		prefix := commonPrefix(tracks[0].Title, tracks[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	return tracks[0].Title + PlaylistSuffix
}

// commonPrefix finds the common prefix between two strings
func commonPrefix(s1, s2 string) string {
	minLen := min(len(s1), len(s2))
	for i := 0; i < minLen; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:minLen]
}

func jsonString(entry map[string]any, key string) string {
	if v, ok := entry[key].(string); ok {
		return v
	}
	return ""
}
