package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/kkdai/youtube/v2"
	"github.com/ytget/tubefx/internal/model"
)

// maxCachedVideos bounds how many resolved videos Open can still serve. A job
// keeps fetching its video while a newer one is loaded.
const maxCachedVideos = 4

var (
	videoURLPattern = regexp.MustCompile(`^(?:https?://)?(?:(?:www|m|music)\.)?` +
		`(?:youtube\.com/(?:watch\?(?:[^#]*&)?v=|shorts/|embed/|live/|v/)|youtube-nocookie\.com/embed/|youtu\.be/)` +
		`([0-9A-Za-z_-]{11})(?:[?&#/].*)?$`)
	videoIDPattern = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
)

// ParseVideoID extracts the video ID from a YouTube video URL. Anything else
// is rejected without touching the network.
func ParseVideoID(input string) (string, error) {
	m := videoURLPattern.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return "", &InputError{Input: input, Reason: ReasonUnparseable}
	}
	id, err := youtube.ExtractVideoID(m[1])
	if err != nil || !videoIDPattern.MatchString(id) {
		return "", &InputError{Input: input, Reason: ReasonUnparseable, Cause: err}
	}
	return id, nil
}

// Extractor resolves user input to a video and opens its streams
type Extractor interface {
	// Resolve loads the video referenced by input. Errors that mean the input
	// is not a video reference wrap ErrInvalidInput.
	Resolve(ctx context.Context, input string) (*model.VideoHandle, error)

	// Open returns the stream body and its length in bytes
	Open(ctx context.Context, videoID string, itag model.Itag) (io.ReadCloser, int64, error)
}

// YouTubeExtractor is the Extractor backed by github.com/kkdai/youtube/v2
type YouTubeExtractor struct {
	client *youtube.Client

	mu     sync.Mutex
	videos map[string]*youtube.Video
	order  []string
}

// NewYouTubeExtractor creates an extractor. A nil httpClient uses the
// library default.
func NewYouTubeExtractor(httpClient *http.Client) *YouTubeExtractor {
	client := &youtube.Client{}
	if httpClient != nil {
		client.HTTPClient = httpClient
	}
	return &YouTubeExtractor{
		client: client,
		videos: make(map[string]*youtube.Video),
	}
}

// Resolve implements Extractor
func (e *YouTubeExtractor) Resolve(ctx context.Context, input string) (*model.VideoHandle, error) {
	id, err := ParseVideoID(input)
	if err != nil {
		return nil, err
	}

	video, err := e.client.GetVideoContext(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load video %s: %w", id, err)
	}

	e.remember(video)

	return handleFromVideo(video), nil
}

// Open implements Extractor
func (e *YouTubeExtractor) Open(ctx context.Context, videoID string, itag model.Itag) (io.ReadCloser, int64, error) {
	e.mu.Lock()
	video, ok := e.videos[videoID]
	e.mu.Unlock()
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrNoVideo, videoID)
	}

	var format *youtube.Format
	for i := range video.Formats {
		if video.Formats[i].ItagNo == int(itag) {
			format = &video.Formats[i]
			break
		}
	}
	if format == nil {
		return nil, 0, fmt.Errorf("%w: itag %d", ErrUnknownStream, itag)
	}

	return e.client.GetStreamContext(ctx, video, format)
}

func (e *YouTubeExtractor) remember(video *youtube.Video) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.videos[video.ID]; !ok {
		e.order = append(e.order, video.ID)
	}
	e.videos[video.ID] = video
	for len(e.order) > maxCachedVideos {
		delete(e.videos, e.order[0])
		e.order = e.order[1:]
	}
}

func handleFromVideo(video *youtube.Video) *model.VideoHandle {
	handle := &model.VideoHandle{
		ID:      video.ID,
		Title:   video.Title,
		Streams: make([]model.StreamDescriptor, 0, len(video.Formats)),
	}
	// the last thumbnail is the largest
	if n := len(video.Thumbnails); n > 0 {
		handle.ThumbnailURL = video.Thumbnails[n-1].URL
	}

	for _, f := range video.Formats {
		handle.Streams = append(handle.Streams, descriptorFromFormat(f))
	}
	return handle
}

func descriptorFromFormat(f youtube.Format) model.StreamDescriptor {
	d := model.StreamDescriptor{
		Itag:     model.Itag(f.ItagNo),
		MimeType: f.MimeType,
		Codec:    model.CodecFromMimeType(f.MimeType),
		Adaptive: codecCount(f.MimeType) == 1,
		Size:     f.ContentLength,
	}

	switch {
	case strings.HasPrefix(f.MimeType, "video/"):
		d.Kind = model.StreamKindVideo
		d.Resolution = resolutionFromFormat(f)
		d.FPS = f.FPS
	case strings.HasPrefix(f.MimeType, "audio/"):
		d.Kind = model.StreamKindAudio
		bitrate := f.AverageBitrate
		if bitrate <= 0 {
			bitrate = f.Bitrate
		}
		d.Bitrate = AudioBitrateKbps(d.Itag, bitrate)
	}
	return d
}

// resolutionFromFormat turns "720p60" into "720p", falling back to the height
func resolutionFromFormat(f youtube.Format) string {
	if label, _, found := strings.Cut(f.QualityLabel, "p"); found && label != "" {
		if _, err := strconv.Atoi(label); err == nil {
			return label + "p"
		}
	}
	if f.Height > 0 {
		return strconv.Itoa(f.Height) + "p"
	}
	return ""
}

func codecCount(mimeType string) int {
	idx := strings.Index(mimeType, "codecs=")
	if idx < 0 {
		return 0
	}
	return len(strings.Split(mimeType[idx:], ","))
}
