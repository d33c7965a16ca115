package model

// MediaType distinguishes a single video from a playlist
type MediaType string

const (
	MediaTypeVideo    MediaType = "video"
	MediaTypePlaylist MediaType = "playlist"
)

// MediaItem is one entry of a probed playlist
type MediaItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// MediaInfo is the result of probing a URL before conversion. It tells the
// client whether the URL is a collection and roughly how many tracks to expect;
// the conversion itself does not depend on these values being accurate.
type MediaInfo struct {
	Type    MediaType   `json:"type"`
	Title   string      `json:"title"`
	URL     string      `json:"url"`
	Channel string      `json:"channel,omitempty"`
	Count   int         `json:"count,omitempty"`
	Items   []MediaItem `json:"videos,omitempty"`
}

// IsCollection reports whether the probed URL resolves to more than one track
func (mi *MediaInfo) IsCollection() bool {
	return mi.Type == MediaTypePlaylist && mi.Count > 1
}
