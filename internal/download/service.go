package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/tubefx/internal/model"
)

// Job constants
const (
	JobIDPrefix      = "job-"
	TempDirPrefix    = "tubefx-"
	TempDirSeparator = "-"
)

// Errors returned by Start
var (
	ErrNothingSelected = errors.New("nothing selected to download")
	ErrJobActive       = errors.New("a download is already running")
	ErrNoVideo         = errors.New("no video loaded")
	ErrUnknownStream   = errors.New("selected stream is not offered by the video")
)

// track is one selected stream of a job
type track struct {
	kind     model.StreamKind
	desc     model.StreamDescriptor
	filename string
}

// Service handles download operations. At most one job is active at a time.
type Service struct {
	source   Source
	tempRoot string
	policy   ProgressPolicy
	logger   *zap.Logger

	mu     sync.Mutex
	active *model.DownloadJob
}

// NewService creates a download service. tempRoot is the parent of the per
// job temp directories; empty means the OS default.
func NewService(source Source, tempRoot string) *Service {
	return &Service{
		source:   source,
		tempRoot: tempRoot,
		policy:   FreezeAtCompletion{},
		logger:   zap.NewNop(),
	}
}

// SetPolicy replaces the percentage policy
func (s *Service) SetPolicy(policy ProgressPolicy) {
	s.policy = policy
}

// SetLogger sets the logger
func (s *Service) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Start validates the selection, creates the job with a fresh temp directory
// and retrieves the selected tracks on a new goroutine
func (s *Service) Start(ctx context.Context, video, audio model.Itag) (*model.DownloadJob, error) {
	if !video.Valid() && !audio.Valid() {
		return nil, ErrNothingSelected
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil && s.active.Status().IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrJobActive, s.active.ID)
	}

	tracks, err := s.resolveTracks(video, audio)
	if err != nil {
		return nil, err
	}

	id := generateJobID()
	tempDir, err := os.MkdirTemp(s.tempRoot, TempDirPrefix+id+TempDirSeparator)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	job := model.NewDownloadJob(id, video, audio, tempDir)
	job.ResetProgress()
	job.SetStatus(model.JobStatusDownloading)
	s.active = job

	s.logger.Info("Download started",
		zap.String("job", job.ID),
		zap.Int("video", int(video)),
		zap.Int("audio", int(audio)),
		zap.String("dir", tempDir))

	go s.run(ctx, job, tracks)

	return job, nil
}

// Active returns the current job, nil if none
func (s *Service) Active() *model.DownloadJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Release clears the active slot once the job has been finalized
func (s *Service) Release(job *model.DownloadJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == job {
		s.active = nil
	}
}

func (s *Service) resolveTracks(video, audio model.Itag) ([]track, error) {
	handle := s.source.Handle()
	if handle == nil {
		return nil, ErrNoVideo
	}

	var tracks []track
	selections := []struct {
		itag     model.Itag
		kind     model.StreamKind
		filename string
	}{
		{video, model.StreamKindVideo, model.VideoTrackName},
		{audio, model.StreamKindAudio, model.AudioTrackName},
	}
	for _, sel := range selections {
		if !sel.itag.Valid() {
			continue
		}
		desc, ok := handle.Stream(sel.itag)
		if !ok {
			return nil, fmt.Errorf("%w: itag %d", ErrUnknownStream, sel.itag)
		}
		tracks = append(tracks, track{kind: sel.kind, desc: desc, filename: sel.filename})
	}
	return tracks, nil
}

// run is the worker goroutine. It only mutates the job.
func (s *Service) run(ctx context.Context, job *model.DownloadJob, tracks []track) {
	started := time.Now()

	var total int64
	for _, t := range tracks {
		if t.desc.Size <= 0 {
			total = 0
			break
		}
		total += t.desc.Size
	}

	var done int64
	for _, t := range tracks {
		progress := s.progressFunc(job, total, done)
		path, err := s.source.Fetch(ctx, t.desc, job.TempDir, t.filename, progress)
		if err != nil {
			s.logger.Error("Track retrieval failed",
				zap.String("job", job.ID),
				zap.Stringer("stream", t.desc),
				zap.Error(err))
			job.Finish(fmt.Errorf("failed to retrieve %s track: %w", t.kind, err))
			return
		}
		job.SetTrackPath(t.kind, path)
		done += t.desc.Size
	}

	s.logger.Info("Download finished",
		zap.String("job", job.ID),
		zap.Duration("elapsed", time.Since(started)))
	job.Finish(nil)
}

// progressFunc feeds the policy the byte counts of the current track. A job
// scoped policy gets them mapped onto the whole job instead, as long as every
// declared size is known (total > 0).
func (s *Service) progressFunc(job *model.DownloadJob, total, done int64) model.ProgressFunc {
	_, wholeJob := s.policy.(jobScoped)
	return func(desc model.StreamDescriptor, _ []byte, bytesRemaining int64) {
		jobTotal, jobRemaining := desc.Size, bytesRemaining
		if wholeJob && total > 0 {
			jobTotal, jobRemaining = total, total-done-(desc.Size-bytesRemaining)
		}
		job.UpdateProgress(func(current float64, frozen bool) (float64, bool) {
			return s.policy.Next(current, frozen, jobTotal, jobRemaining)
		})
	}
}

// generateJobID generates a unique job ID using UUID v7
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
