package convert

// Package convert implements the conversion job lifecycle: the in-memory job
// registry, one supervisor goroutine per job driving the yt-dlp worker
// process, aggregation of parsed progress output into an overall completion
// percentage, result packaging on success, and age-based expiry of jobs and
// their on-disk artifacts.
