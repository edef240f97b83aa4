package model

import (
	"os"
	"sync"
	"time"
)

// Track file names inside a job's temp directory
const (
	VideoTrackName = "video_track"
	AudioTrackName = "audio_track"
)

// DownloadJob is the transient state of one in-flight download. The worker
// goroutine writes paths, percentage and completion; the foreground only
// reads them until Finished reports true.
type DownloadJob struct {
	ID        string
	VideoItag Itag
	AudioItag Itag
	TempDir   string
	StartedAt time.Time

	mu         sync.RWMutex
	status     JobStatus
	videoPath  string
	audioPath  string
	percentage float64
	frozen     bool
	finished   bool
	err        error
	finishedAt time.Time

	cleanupOnce sync.Once
	cleanupErr  error
}

// NewDownloadJob creates a pending job owning tempDir
func NewDownloadJob(id string, video, audio Itag, tempDir string) *DownloadJob {
	return &DownloadJob{
		ID:        id,
		VideoItag: video,
		AudioItag: audio,
		TempDir:   tempDir,
		StartedAt: time.Now(),
		status:    JobStatusPending,
	}
}

// Status returns the current lifecycle state
func (j *DownloadJob) Status() JobStatus {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.status
}

// SetStatus moves the job to a new lifecycle state
func (j *DownloadJob) SetStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.status = status
}

// Percentage returns the current download percentage
func (j *DownloadJob) Percentage() float64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.percentage
}

// Frozen reports whether percentage updates are suppressed
func (j *DownloadJob) Frozen() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.frozen
}

// UpdateProgress applies next to the current percentage under the job lock.
// next receives the current value and frozen flag and returns the new pair.
func (j *DownloadJob) UpdateProgress(next func(current float64, frozen bool) (float64, bool)) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.percentage, j.frozen = next(j.percentage, j.frozen)
}

// ResetProgress sets the percentage back to zero and unfreezes it
func (j *DownloadJob) ResetProgress() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.percentage = 0
	j.frozen = false
}

// SetTrackPath records where a retrieved track was written
func (j *DownloadJob) SetTrackPath(kind StreamKind, path string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	switch kind {
	case StreamKindVideo:
		j.videoPath = path
	case StreamKindAudio:
		j.audioPath = path
	}
}

// Paths returns the local track paths; empty means the track was not selected
func (j *DownloadJob) Paths() (videoPath, audioPath string) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.videoPath, j.audioPath
}

// Finish marks the worker as done, err is nil on success
func (j *DownloadJob) Finish(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.finished = true
	j.err = err
	j.finishedAt = time.Now()
	if err != nil {
		j.status = JobStatusError
	} else {
		j.status = JobStatusDownloaded
	}
}

// Finished reports whether the worker has completed
func (j *DownloadJob) Finished() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.finished
}

// Err returns the worker error, if any
func (j *DownloadJob) Err() error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.err
}

// Duration returns how long the worker ran, or has been running
func (j *DownloadJob) Duration() time.Duration {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.finishedAt.IsZero() {
		return time.Since(j.StartedAt)
	}
	return j.finishedAt.Sub(j.StartedAt)
}

// Cleanup removes the temp directory. Only the first call does any work.
func (j *DownloadJob) Cleanup() error {
	j.cleanupOnce.Do(func() {
		if j.TempDir != "" {
			j.cleanupErr = os.RemoveAll(j.TempDir)
		}
	})
	return j.cleanupErr
}
