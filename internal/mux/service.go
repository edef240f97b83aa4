package mux

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/alessio/shellescape"
	"go.uber.org/zap"

	"github.com/ytget/tubefx/internal/model"
)

// FFmpeg constants for stream copy muxing
const (
	FFmpegCommand  = "ffmpeg"
	HideBannerFlag = "-hide_banner"
	InputFlag      = "-i"
	VideoCodecFlag = "-c:v"
	AudioCodecFlag = "-c:a"
	CopyCodec      = "copy"
	OverwriteFlag  = "-y"
	VersionFlag    = "-version"

	// Lines of ffmpeg output kept in errors
	OutputTailLines = 8
	ProbeTimeout    = 10 * time.Second
)

// Service runs ffmpeg. It never runs on the UI thread; callers use a worker
// goroutine.
type Service struct {
	logger *zap.Logger

	mu         sync.RWMutex
	ffmpegPath string
}

// NewService creates a muxing service. An empty ffmpegPath looks up
// "ffmpeg" in PATH.
func NewService(ffmpegPath string) *Service {
	s := &Service{logger: zap.NewNop()}
	s.SetFFmpegPath(ffmpegPath)
	return s
}

// SetFFmpegPath sets the executable, empty restores the PATH lookup
func (s *Service) SetFFmpegPath(path string) {
	if strings.TrimSpace(path) == "" {
		path = FFmpegCommand
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ffmpegPath = path
}

// FFmpegPath returns the configured executable
func (s *Service) FFmpegPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ffmpegPath
}

// SetLogger sets the logger
func (s *Service) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func (s *Service) BuildFFmpegArgs(req model.AssemblyRequest) []string {
	args := []string{HideBannerFlag}
	if req.HasVideo() {
		args = append(args, InputFlag, req.VideoPath)
	}
	if req.HasAudio() {
		args = append(args, InputFlag, req.AudioPath)
	}
	if req.HasVideo() {
		args = append(args, VideoCodecFlag, CopyCodec)
	}
	if req.HasAudio() {
		args = append(args, AudioCodecFlag, CopyCodec)
	}
	return append(args, OverwriteFlag, req.OutputPath)
}

// Assemble muxes the tracks of req into req.OutputPath. A non-zero exit code
// is a failure.
func (s *Service) Assemble(ctx context.Context, req model.AssemblyRequest) error {
	if err := req.Validate(); err != nil {
		s.logger.Warn("Assembly request rejected", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPrecondition, err)
	}

	bin, err := s.lookPath()
	if err != nil {
		return err
	}

	args := s.BuildFFmpegArgs(req)
	s.logger.Info("Running ffmpeg",
		zap.String("command", shellescape.QuoteCommand(append([]string{bin}, args...))))

	started := time.Now()
	cmd := exec.CommandContext(ctx, bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		// Remove partial output file
		os.Remove(req.OutputPath)

		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %w", ErrToolNotFound, err)
		}
		muxErr := &MuxError{ExitCode: -1, Output: outputTail(output), Cause: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			muxErr.ExitCode = exitErr.ExitCode()
		}
		s.logger.Error("ffmpeg failed",
			zap.Int("exit_code", muxErr.ExitCode),
			zap.String("output", muxErr.Output))
		return muxErr
	}

	s.logger.Debug("ffmpeg output", zap.String("output", outputTail(output)))
	s.logger.Info("Assembly finished",
		zap.String("output", req.OutputPath),
		zap.Duration("elapsed", time.Since(started)))
	return nil
}

// AssembleJob muxes the tracks of a finished job and removes its temp
// directory whatever the outcome
func (s *Service) AssembleJob(ctx context.Context, job *model.DownloadJob, outputPath string) error {
	defer func() {
		if err := job.Cleanup(); err != nil {
			s.logger.Warn("Failed to remove temp directory",
				zap.String("job", job.ID), zap.String("dir", job.TempDir), zap.Error(err))
		}
	}()

	videoPath, audioPath := job.Paths()
	req := model.AssemblyRequest{
		VideoPath:  videoPath,
		AudioPath:  audioPath,
		OutputPath: outputPath,
	}

	job.SetStatus(model.JobStatusAssembling)
	if err := s.Assemble(ctx, req); err != nil {
		job.SetStatus(model.JobStatusError)
		return err
	}
	job.SetStatus(model.JobStatusCompleted)
	return nil
}

// Probe checks that the executable runs and returns its version line
func (s *Service) Probe(ctx context.Context) (string, error) {
	bin, err := s.lookPath()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, bin, VersionFlag).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %s is not working: %w", ErrToolNotFound, bin, err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(line), nil
}

func (s *Service) lookPath() (string, error) {
	path := s.FFmpegPath()
	bin, err := exec.LookPath(path)
	if err != nil {
		s.logger.Error("ffmpeg executable not found", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrToolNotFound, err)
	}
	return bin, nil
}

// outputTail returns the last OutputTailLines non-empty lines of output
func outputTail(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) > OutputTailLines {
		lines = lines[len(lines)-OutputTailLines:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
