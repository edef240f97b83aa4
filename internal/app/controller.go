// Package app holds the controller that connects the View to the stream
// catalog, the download coordinator, the progress poller and the assembler.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ytget/tubefx/internal/catalog"
	"github.com/ytget/tubefx/internal/download"
	"github.com/ytget/tubefx/internal/i18n"
	"github.com/ytget/tubefx/internal/model"
	"github.com/ytget/tubefx/internal/mux"
	"github.com/ytget/tubefx/internal/platform"
	"github.com/ytget/tubefx/internal/poller"
)

// Catalog loads videos and their thumbnails
type Catalog interface {
	Query(ctx context.Context, input string) (resolutions, bitrates model.LabelMap, err error)
	FetchThumbnail(ctx context.Context) (image.Image, error)
	Handle() *model.VideoHandle
}

// Downloader starts and releases download jobs
type Downloader interface {
	Start(ctx context.Context, video, audio model.Itag) (*model.DownloadJob, error)
	Release(job *model.DownloadJob)
}

// Assembler muxes a finished job into its output file
type Assembler interface {
	AssembleJob(ctx context.Context, job *model.DownloadJob, outputPath string) error
}

// Options are the optional collaborators of a Controller
type Options struct {
	Texts  *i18n.Localization
	Logger *zap.Logger

	// RevealOnComplete is read after every successful export
	RevealOnComplete func() bool
	Reveal           func(path string) error
}

// Controller reacts to View callbacks. Its fields are only touched on the
// foreground; blocking work runs on goroutines that post results back with
// View.ScheduleAfter.
type Controller struct {
	ctx       context.Context
	view      View
	catalog   Catalog
	downloads Downloader
	assembler Assembler
	poller    *poller.Poller
	texts     *i18n.Localization
	logger    *zap.Logger

	revealOnComplete func() bool
	reveal           func(path string) error

	resolutions model.LabelMap
	bitrates    model.LabelMap
	querySeq    int
}

// New creates a controller and binds it to view
func New(ctx context.Context, view View, cat Catalog, downloads Downloader, assembler Assembler, opts Options) *Controller {
	c := &Controller{
		ctx:              ctx,
		view:             view,
		catalog:          cat,
		downloads:        downloads,
		assembler:        assembler,
		texts:            opts.Texts,
		logger:           opts.Logger,
		revealOnComplete: opts.RevealOnComplete,
		reveal:           opts.Reveal,
	}
	if c.texts == nil {
		c.texts = i18n.NewLocalization()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.reveal == nil {
		c.reveal = platform.OpenFileInManager
	}

	c.poller = poller.New(view, view.SetStatus, c.onDownloadFinished)
	c.ApplyLanguage()

	view.SetInputCallbacks(c.OnSubmit, c.OnSubmit)
	view.SetExportCallback(c.OnDownload)
	view.SetExportWidgetsEnabled(false)
	view.SetProcessButtonEnabled(true)
	view.SetStatus(c.text(i18n.KeyWaitingForInput))

	return c
}

// ApplyLanguage refreshes the poller texts after a language change
func (c *Controller) ApplyLanguage() {
	c.poller.SetMessages(poller.Messages{
		Downloading: c.text(i18n.KeyDownloading),
		Completed:   c.text(i18n.KeyDownloadCompleted),
	})
}

// OnSubmit loads the video referenced by the input field
func (c *Controller) OnSubmit() {
	input := c.view.InputText()

	c.querySeq++
	seq := c.querySeq

	c.view.SetProcessButtonEnabled(false)
	c.view.SetExportWidgetsEnabled(false)
	c.view.SetStatus(c.text(i18n.KeyLoadingVideo))

	go func() {
		resolutions, bitrates, err := c.catalog.Query(c.ctx, input)
		c.view.ScheduleAfter(0, func() {
			c.onQueried(seq, resolutions, bitrates, err)
		})
	}()
}

func (c *Controller) onQueried(seq int, resolutions, bitrates model.LabelMap, err error) {
	if seq != c.querySeq {
		return
	}
	c.view.SetProcessButtonEnabled(true)

	if err != nil {
		c.logger.Warn("Query failed", zap.Error(err))
		c.view.SetStatus(c.queryErrorStatus(err))
		c.view.SetExportWidgetsEnabled(false)
		return
	}

	c.resolutions = resolutions
	c.bitrates = bitrates

	handle := c.catalog.Handle()
	c.view.SetVideoTitle(catalog.DisplayTitle(handle.Title))
	c.view.SetResolutionList(resolutions.ResolutionOrder())
	c.view.SetBitrateList(bitrates.BitrateOrder())
	c.view.SetExportWidgetsEnabled(true)
	c.view.SetStatus(c.text(i18n.KeyVideoLoaded))

	go func() {
		img, err := c.catalog.FetchThumbnail(c.ctx)
		c.view.ScheduleAfter(0, func() {
			if seq != c.querySeq {
				return
			}
			if err != nil {
				c.logger.Warn("Thumbnail unavailable", zap.String("id", handle.ID), zap.Error(err))
				c.view.SetStatus(c.text(i18n.KeyThumbnailFailed))
				return
			}
			c.view.SetVideoThumbnail(img)
		})
	}()
}

func (c *Controller) queryErrorStatus(err error) string {
	var inputErr *catalog.InputError
	switch {
	case errors.As(err, &inputErr) && inputErr.Empty():
		return c.text(i18n.KeyNoInput)
	case errors.As(err, &inputErr):
		return fmt.Sprintf(c.text(i18n.KeyInputInvalid), inputErr.Reason)
	default:
		return c.text(i18n.KeyNetworkError)
	}
}

// OnDownload starts retrieving the selected tracks
func (c *Controller) OnDownload() {
	video, _ := c.resolutions.Lookup(c.view.SelectedResolution())
	audio, _ := c.bitrates.Lookup(c.view.SelectedBitrate())

	job, err := c.downloads.Start(c.ctx, video, audio)
	if err != nil {
		if errors.Is(err, download.ErrNothingSelected) {
			c.view.SetStatus(c.text(i18n.KeyNothingSelected))
			return
		}
		c.logger.Error("Download could not start", zap.Error(err))
		c.view.SetStatus(fmt.Sprintf(c.text(i18n.KeyDownloadNotStarted), err))
		return
	}

	c.view.SetProcessButtonEnabled(false)
	c.view.SetExportWidgetsEnabled(false)
	c.poller.Start(job)
}

// onDownloadFinished runs on the foreground once the poller sees the job done
func (c *Controller) onDownloadFinished(job *model.DownloadJob) {
	if err := job.Err(); err != nil {
		c.logger.Error("Download failed", zap.String("job", job.ID), zap.Error(err))
		c.view.SetStatus(fmt.Sprintf(c.text(i18n.KeyDownloadFailed), err))
		c.abandon(job, model.JobStatusError)
		return
	}

	videoPath, audioPath := job.Paths()
	container := model.ContainerFor(videoPath != "", audioPath != "")
	ext := "." + container

	title := ""
	if handle := c.catalog.Handle(); handle != nil {
		title = handle.Title
	}

	c.view.PromptSavePath(platform.SanitizeFileName(title)+ext, []string{ext}, func(path string) {
		if path == "" {
			c.view.SetStatus(c.text(i18n.KeyExportCancelled))
			c.abandon(job, model.JobStatusCancelled)
			return
		}
		if filepath.Ext(path) == "" {
			c.removePlaceholder(path)
			path += ext
		}

		c.view.SetStatus(c.text(i18n.KeyExporting))
		go func() {
			err := c.assembler.AssembleJob(c.ctx, job, path)
			c.view.ScheduleAfter(0, func() {
				c.onAssembled(job, path, err)
			})
		}()
	})
}

func (c *Controller) onAssembled(job *model.DownloadJob, path string, err error) {
	c.downloads.Release(job)
	c.restoreControls()

	switch {
	case err == nil:
		c.logger.Info("Export finished", zap.String("job", job.ID), zap.String("output", path))
		c.view.SetStatus(fmt.Sprintf(c.text(i18n.KeyExportFinished), path))
		if c.revealOnComplete != nil && c.revealOnComplete() {
			go func() {
				if err := c.reveal(path); err != nil {
					c.logger.Warn("Failed to reveal output", zap.String("output", path), zap.Error(err))
				}
			}()
		}
	case errors.Is(err, mux.ErrToolNotFound):
		c.view.SetStatus(c.text(i18n.KeyFFmpegNotFound))
	default:
		c.logger.Error("Export failed", zap.String("job", job.ID), zap.Error(err))
		c.view.SetStatus(fmt.Sprintf(c.text(i18n.KeyExportFailed), err))
	}
}

// abandon drops a job that will not be assembled
func (c *Controller) abandon(job *model.DownloadJob, status model.JobStatus) {
	job.SetStatus(status)
	if err := job.Cleanup(); err != nil {
		c.logger.Warn("Failed to remove temp directory", zap.String("dir", job.TempDir), zap.Error(err))
	}
	c.downloads.Release(job)
	c.restoreControls()
}

// removePlaceholder deletes the empty file the save dialog may have created
// at a path the default extension is then appended to
func (c *Controller) removePlaceholder(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() != 0 {
		return
	}
	if err := os.Remove(path); err != nil {
		c.logger.Warn("Failed to remove empty save target", zap.String("path", path), zap.Error(err))
	}
}

func (c *Controller) restoreControls() {
	c.view.SetProcessButtonEnabled(true)
	c.view.SetExportWidgetsEnabled(c.catalog.Handle() != nil)
}

func (c *Controller) text(key string) string {
	return c.texts.GetText(key)
}
