package convert

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/tunegrab/tunegrab/internal/model"
	"github.com/tunegrab/tunegrab/internal/platform"
)

// run supervises one worker process from spawn to terminal state. It is the
// only goroutine that mutates this job's record.
func (s *Service) run(id, url string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.registerCancel(id, cancel)
	defer s.unregisterCancel(id)

	if err := s.sem.Acquire(ctx, 1); err != nil {
		s.fail(id, "cancelled before start")
		return
	}
	defer s.sem.Release(1)

	jobDir := s.jobDir(id)
	cmd := exec.CommandContext(ctx, s.workerCmd, platform.BuildConvertArgs(jobDir, url)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		s.logger.Error("failed to create stdout pipe", "job", id, "error", err)
		s.fail(id, workerFailureMessage)
		return
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		s.logger.Error("failed to create stderr pipe", "job", id, "error", err)
		s.fail(id, workerFailureMessage)
		return
	}

	if err := cmd.Start(); err != nil {
		s.logger.Error("failed to start worker", "job", id, "error", err)
		s.fail(id, workerFailureMessage)
		return
	}

	// Converting as soon as the process exists, before any output arrives
	s.store.Update(id, func(j *model.Job) {
		j.Status = model.JobStatusConverting
	})
	s.logger.Info("worker started", "job", id, "pid", cmd.Process.Pid)

	stderrDone := make(chan struct{})
	go func() {
		defer close(stderrDone)
		s.drainStderr(id, stderr)
	}()

	s.consumeOutput(id, stdout)
	<-stderrDone

	if err := cmd.Wait(); err != nil {
		s.logger.Error("worker failed", "job", id, "error", err)
		s.fail(id, workerFailureMessage)
		return
	}
	s.complete(id, jobDir)
}

// consumeOutput streams worker stdout line by line through the parser and
// folds recognized events into the job record as they arrive.
func (s *Service) consumeOutput(id string, stdout io.Reader) {
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		ev, ok := platform.ParseLine(scanner.Text())
		if !ok {
			continue
		}
		s.store.Update(id, func(j *model.Job) {
			applyEvent(j, ev)
		})
	}
}

// drainStderr logs worker diagnostics; they are never surfaced to clients
func (s *Service) drainStderr(id string, stderr io.Reader) {
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		s.logger.Debug("worker stderr", "job", id, "line", scanner.Text())
	}
}

// complete handles the terminal success transition. The job directory listing
// is ground truth for results, overriding whatever was accumulated from
// parsed events.
func (s *Service) complete(id, jobDir string) {
	files, err := platform.ListFilesWithExtension(jobDir, platform.AudioExtension)
	if err != nil {
		s.logger.Error("failed to list results", "job", id, "error", err)
		s.fail(id, workerFailureMessage)
		return
	}

	var snapshot model.Job
	updated := s.store.Update(id, func(j *model.Job) {
		j.Files = files
		j.CompletedTracks = len(files)
		j.TotalTracks = len(files)
		j.Progress = 100
		j.CurrentTrackProgress = 100
		j.Status = model.JobStatusCompleted
		snapshot = j.Clone()
	})
	if !updated {
		// Job was evicted while the worker was finishing
		return
	}
	s.logger.Info("job completed", "job", id, "tracks", len(files))

	// Build the collection archive eagerly so it is ready before any client
	// asks for it. Failure here is a packaging problem, not a job failure.
	if len(files) > 1 {
		zipPath, err := s.packager.BuildOrReuse(jobDir, files)
		if err != nil {
			s.logger.Error("failed to pre-build archive", "job", id, "error", err)
		} else {
			s.store.Update(id, func(j *model.Job) {
				j.ZipFile = filepath.Base(zipPath)
				snapshot = j.Clone()
			})
		}
	}

	s.notifyComplete(snapshot)
}

// fail handles the terminal failure transition with a generic client-facing
// message
func (s *Service) fail(id, message string) {
	var snapshot model.Job
	updated := s.store.Update(id, func(j *model.Job) {
		j.Status = model.JobStatusFailed
		j.Error = message
		snapshot = j.Clone()
	})
	if updated {
		s.notifyComplete(snapshot)
	}
}
