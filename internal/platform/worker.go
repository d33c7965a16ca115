package platform

import "path/filepath"

// Worker executable and conversion settings
const (
	// WorkerCommand is the external extraction tool invoked per job
	WorkerCommand = "yt-dlp"

	// Audio extraction settings: MP3 at the tool's best quality
	AudioFormat  = "mp3"
	AudioQuality = "0"

	// OutputTemplate names result files after the track title
	OutputTemplate = "%(title)s.%(ext)s"

	// Throughput knobs passed through to the worker
	ConcurrentFragments = "4"
	Retries             = "3"
	FragmentRetries     = "3"
	BufferSize          = "16K"
)

// BuildConvertArgs builds the worker argument list for extracting audio from
// url into outputDir. Progress output stays line-oriented (--newline) so the
// parser sees one self-contained marker per line, and playlist order is kept
// as-is (--no-playlist-reverse).
func BuildConvertArgs(outputDir, url string) []string {
	return []string{
		"-x",
		"--audio-format", AudioFormat,
		"--audio-quality", AudioQuality,
		"-o", filepath.Join(outputDir, OutputTemplate),
		"--no-playlist-reverse",
		"--newline",
		"--progress",
		"--concurrent-fragments", ConcurrentFragments,
		"--retries", Retries,
		"--fragment-retries", FragmentRetries,
		"--buffer-size", BufferSize,
		url,
	}
}

// BuildProbeArgs builds the worker argument list for fetching metadata about
// url without downloading anything.
func BuildProbeArgs(url string) []string {
	return []string{
		"--dump-json",
		"--flat-playlist",
		"--no-warnings",
		url,
	}
}
