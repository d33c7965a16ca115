package archive

// Package archive packages a job's MP3 files into a single zip for download.
// Building is idempotent: once an archive exists in a job directory it is
// reused, never rebuilt.
