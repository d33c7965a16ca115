package platform

// Package platform contains external tooling glue around the yt-dlp worker:
// the argument contract for conversion and probing, line-oriented progress
// output parsing, URL metadata probing, and filesystem helpers for job
// directories.
