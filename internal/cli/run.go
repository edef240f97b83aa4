package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/ytget/tubefx/internal/catalog"
	"github.com/ytget/tubefx/internal/download"
	"github.com/ytget/tubefx/internal/logging"
	"github.com/ytget/tubefx/internal/model"
	"github.com/ytget/tubefx/internal/mux"
	"github.com/ytget/tubefx/internal/platform"
	"github.com/ytget/tubefx/internal/poller"
	"github.com/ytget/tubefx/internal/scheduler"
)

// ProgressBarMax maps one decimal of percentage onto the bar
const ProgressBarMax = 1000

type runner struct {
	opts   *Options
	out    io.Writer
	errOut io.Writer
	logger *zap.Logger

	catalog   *catalog.Catalog
	downloads *download.Service
	assembler *mux.Service
}

func newRunner(opts *Options, deps Deps, out, errOut io.Writer) (*runner, error) {
	logger, err := logging.New(opts.LogLevel)
	if err != nil {
		return nil, err
	}

	extractor := deps.Extractor
	if extractor == nil {
		extractor = catalog.NewYouTubeExtractor(nil)
	}
	playlists := deps.Playlists
	if playlists == nil {
		playlists = platform.NewPlaylistResolver()
	}

	cat := catalog.New(extractor)
	cat.SetPlaylistResolver(playlists)
	cat.SetLogger(logger.Named("catalog"))

	downloads := download.NewService(cat, opts.TempDir)
	if opts.JobProgress {
		downloads.SetPolicy(download.AcrossTracks{})
	}
	downloads.SetLogger(logger.Named("download"))

	assembler := mux.NewService(opts.FFmpegPath)
	assembler.SetLogger(logger.Named("mux"))

	return &runner{
		opts:      opts,
		out:       out,
		errOut:    errOut,
		logger:    logger,
		catalog:   cat,
		downloads: downloads,
		assembler: assembler,
	}, nil
}

func (r *runner) close() {
	_ = r.logger.Sync()
}

func (r *runner) checkFFmpeg(ctx context.Context) error {
	version, err := r.assembler.Probe(ctx)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(r.out, "%s\n", version)
	return nil
}

func (r *runner) run(ctx context.Context, input string) error {
	resolutions, bitrates, err := r.catalog.Query(ctx, input)
	if err != nil {
		return err
	}
	handle := r.catalog.Handle()
	color.New(color.Bold).Fprintln(r.out, handle.Title)

	if r.opts.List {
		r.printLabels(resolutions, bitrates)
		return nil
	}

	video, err := pickLabel(resolutions, resolutions.ResolutionOrder(), r.opts.Resolution, "resolution")
	if err != nil {
		return err
	}
	audio, err := pickLabel(bitrates, bitrates.BitrateOrder(), r.opts.Bitrate, "bitrate")
	if err != nil {
		return err
	}

	output, err := r.outputPath(handle.Title, model.ContainerFor(video.Valid(), audio.Valid()))
	if err != nil {
		return err
	}

	job, err := r.downloads.Start(ctx, video, audio)
	if err != nil {
		return err
	}
	defer r.downloads.Release(job)
	defer job.Cleanup()

	if err := r.await(ctx, job, output); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(r.out, "Saved %s\n", output)
	return nil
}

// await polls job on a foreground loop, then assembles it into output
func (r *runner) await(ctx context.Context, job *model.DownloadJob, output string) error {
	loop := scheduler.NewLoop()
	bar := progressbar.NewOptions(ProgressBarMax,
		progressbar.OptionSetWriter(r.errOut),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	var result error
	p := poller.New(loop, func(status string) {
		bar.Describe(status)
		_ = bar.Set(int(job.Percentage() * 10))
	}, func(job *model.DownloadJob) {
		if err := job.Err(); err != nil {
			result = err
			loop.Stop()
			return
		}
		_ = bar.Finish()
		fmt.Fprintln(r.errOut)

		go func() {
			err := r.assembler.AssembleJob(ctx, job, output)
			loop.Post(func() {
				result = err
				loop.Stop()
			})
		}()
	})

	loop.Post(func() { p.Start(job) })
	if err := loop.Run(ctx); err != nil {
		return err
	}
	return result
}

func (r *runner) outputPath(title, container string) (string, error) {
	if r.opts.Output == "" {
		dir, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return platform.DefaultOutputPath(dir, title, container), nil
	}
	if filepath.Ext(r.opts.Output) == "" {
		return r.opts.Output + "." + container, nil
	}
	return r.opts.Output, nil
}

func (r *runner) printLabels(resolutions, bitrates model.LabelMap) {
	bold := color.New(color.Bold)

	bold.Fprintln(r.out, "Resolutions:")
	for _, label := range resolutions.ResolutionOrder() {
		fmt.Fprintf(r.out, "  %s\n", label)
	}
	bold.Fprintln(r.out, "Bitrates:")
	for _, label := range bitrates.BitrateOrder() {
		fmt.Fprintf(r.out, "  %s\n", label)
	}
}

// pickLabel resolves want against m. An empty want takes the first label
// of order, which is the highest quality or "None" when nothing qualifies.
func pickLabel(m model.LabelMap, order []string, want, what string) (model.Itag, error) {
	if want == "" {
		want = order[0]
	}
	itag, ok := m.Lookup(want)
	if !ok {
		return model.NoItag, fmt.Errorf("unknown %s %q, available: %s", what, want, strings.Join(order, ", "))
	}
	return itag, nil
}
