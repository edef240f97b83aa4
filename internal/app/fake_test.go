package app

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ytget/tubefx/internal/catalog"
	"github.com/ytget/tubefx/internal/model"
	"github.com/ytget/tubefx/internal/scheduler"
)

// fakeView records what the controller shows and runs callbacks on a
// scheduler.Loop, the way the Fyne view runs them on the main thread.
type fakeView struct {
	loop *scheduler.Loop

	input       string
	statuses    []string
	resolutions []string
	bitrates    []string
	selectedRes string
	selectedBit string
	title       string
	thumbnail   image.Image

	exportEnabled  bool
	processEnabled bool

	onSubmit   func()
	onProcess  func()
	onDownload func()

	savePath  string
	suggested []string
	filters   [][]string

	// hooks run once when the matching status is shown
	hooks    map[string]func()
	stopWhen func(status string) bool
}

func newFakeView() *fakeView {
	return &fakeView{
		loop:  scheduler.NewLoop(),
		hooks: make(map[string]func()),
	}
}

func (v *fakeView) InputText() string { return v.input }

func (v *fakeView) SetStatus(message string) {
	v.statuses = append(v.statuses, message)
	if hook, ok := v.hooks[message]; ok {
		delete(v.hooks, message)
		v.loop.Post(hook)
	}
	if v.stopWhen != nil && v.stopWhen(message) {
		v.loop.Stop()
	}
}

func (v *fakeView) SetResolutionList(labels []string) {
	v.resolutions = labels
	if len(labels) > 0 {
		v.selectedRes = labels[0]
	}
}

func (v *fakeView) SetBitrateList(labels []string) {
	v.bitrates = labels
	if len(labels) > 0 {
		v.selectedBit = labels[0]
	}
}

func (v *fakeView) SelectedResolution() string { return v.selectedRes }
func (v *fakeView) SelectedBitrate() string { return v.selectedBit }
func (v *fakeView) SetVideoTitle(title string) { v.title = title }
func (v *fakeView) SetVideoThumbnail(img image.Image) { v.thumbnail = img }
func (v *fakeView) SetExportWidgetsEnabled(enabled bool) { v.exportEnabled = enabled }
func (v *fakeView) SetProcessButtonEnabled(enabled bool) { v.processEnabled = enabled }

func (v *fakeView) SetInputCallbacks(onSubmit, onProcess func()) {
	v.onSubmit = onSubmit
	v.onProcess = onProcess
}

func (v *fakeView) SetExportCallback(onDownload func()) {
	v.onDownload = onDownload
}

func (v *fakeView) ScheduleAfter(delay time.Duration, fn func()) {
	v.loop.ScheduleAfter(delay, fn)
}

func (v *fakeView) PromptSavePath(suggestedName string, filters []string, done func(path string)) {
	v.suggested = append(v.suggested, suggestedName)
	v.filters = append(v.filters, filters)
	path := v.savePath
	// the Fyne save dialog creates the chosen file before returning it
	if path != "" {
		_ = os.WriteFile(path, nil, 0644)
	}
	v.loop.Post(func() { done(path) })
}

func (v *fakeView) lastStatus() string {
	if len(v.statuses) == 0 {
		return ""
	}
	return v.statuses[len(v.statuses)-1]
}

// run posts action and processes the loop until stopWhen matches a status
func (v *fakeView) run(action func(), stopWhen func(status string) bool) error {
	v.stopWhen = stopWhen
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v.loop.Post(action)
	return v.loop.Run(ctx)
}

func statusIs(want string) func(string) bool {
	return func(status string) bool { return status == want }
}

func statusHasPrefix(prefix string) func(string) bool {
	return func(status string) bool { return strings.HasPrefix(status, prefix) }
}

// fakeCatalog serves one video and writes fixed bodies for its streams
type fakeCatalog struct {
	mu           sync.Mutex
	handle       *model.VideoHandle
	queryErr     error
	thumbnailErr error
	fetchErr     error
	bodies       map[model.Itag][]byte
	loaded       *model.VideoHandle
}

func (f *fakeCatalog) Query(ctx context.Context, input string) (model.LabelMap, model.LabelMap, error) {
	if f.queryErr != nil {
		return model.LabelMap{}, model.LabelMap{}, f.queryErr
	}
	f.mu.Lock()
	f.loaded = f.handle
	f.mu.Unlock()
	return catalog.ResolutionMap(f.handle.Streams), catalog.BitrateMap(f.handle.Streams), nil
}

func (f *fakeCatalog) FetchThumbnail(ctx context.Context) (image.Image, error) {
	if f.thumbnailErr != nil {
		return nil, f.thumbnailErr
	}
	return image.NewRGBA(image.Rect(0, 0, 16, 9)), nil
}

func (f *fakeCatalog) Handle() *model.VideoHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

func (f *fakeCatalog) Fetch(ctx context.Context, desc model.StreamDescriptor, dir, filename string, progress model.ProgressFunc) (string, error) {
	if f.fetchErr != nil {
		return "", f.fetchErr
	}
	body := f.bodies[desc.Itag]
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", err
	}
	if progress != nil {
		progress(desc, body, 0)
	}
	return path, nil
}

// fakeAssembler records the assembled job and removes its temp directory
type fakeAssembler struct {
	err       error
	videoPath string
	audioPath string
	output    string
	calls     int
}

func (a *fakeAssembler) AssembleJob(ctx context.Context, job *model.DownloadJob, outputPath string) error {
	defer job.Cleanup()
	a.calls++
	a.videoPath, a.audioPath = job.Paths()
	a.output = outputPath
	if a.err != nil {
		job.SetStatus(model.JobStatusError)
		return a.err
	}
	job.SetStatus(model.JobStatusCompleted)
	return nil
}

var errOffline = errors.New("dial tcp: network is unreachable")

func testHandle() *model.VideoHandle {
	return &model.VideoHandle{
		ID:    "dQw4w9WgXcQ",
		Title: "Test Video",
		Streams: []model.StreamDescriptor{
			{Itag: 136, Kind: model.StreamKindVideo, Codec: "avc1.4d401f", Resolution: "720p", FPS: 30, Adaptive: true, Size: 4000},
			{Itag: 137, Kind: model.StreamKindVideo, Codec: "avc1.640028", Resolution: "1080p", FPS: 30, Adaptive: true, Size: 8000},
			{Itag: 140, Kind: model.StreamKindAudio, Codec: "mp4a.40.2", Bitrate: 128, Adaptive: true, Size: 1000},
		},
	}
}

func testBodies() map[model.Itag][]byte {
	return map[model.Itag][]byte{
		136: make([]byte, 4000),
		137: make([]byte, 8000),
		140: make([]byte, 1000),
	}
}
