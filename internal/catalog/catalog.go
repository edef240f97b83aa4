package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/ytget/tubefx/internal/model"
	"github.com/ytget/tubefx/internal/platform"
)

// Query constants
const (
	MinInputLength      = 28
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultChunkSize    = 64 * 1024
	ThumbnailURLPattern = "https://img.youtube.com/vi/%s/maxresdefault.jpg"
)

// PlaylistResolver expands a playlist URL into its entries
type PlaylistResolver interface {
	Resolve(ctx context.Context, rawURL string) (*model.Playlist, error)
}

// Catalog holds the currently loaded video. A successful Query replaces it;
// a failed one leaves it untouched.
type Catalog struct {
	extractor  Extractor
	playlists  PlaylistResolver
	httpClient *http.Client
	thumbURL   string
	chunkSize  int
	logger     *zap.Logger

	mu       sync.RWMutex
	handle   *model.VideoHandle
	playlist *model.Playlist
}

// New creates a catalog over extractor
func New(extractor Extractor) *Catalog {
	return &Catalog{
		extractor:  extractor,
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
		thumbURL:   ThumbnailURLPattern,
		chunkSize:  DefaultChunkSize,
		logger:     zap.NewNop(),
	}
}

// SetPlaylistResolver enables expansion of playlist URLs
func (c *Catalog) SetPlaylistResolver(r PlaylistResolver) {
	c.playlists = r
}

// SetHTTPClient sets the client used for thumbnails
func (c *Catalog) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// SetThumbnailURLPattern overrides the high resolution thumbnail pattern; it
// must contain one %s for the video ID
func (c *Catalog) SetThumbnailURLPattern(pattern string) {
	c.thumbURL = pattern
}

// SetLogger sets the logger
func (c *Catalog) SetLogger(logger *zap.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Query validates input, loads the video and returns the resolution and
// bitrate label maps. Both always contain "None".
func (c *Catalog) Query(ctx context.Context, input string) (resolutions, bitrates model.LabelMap, err error) {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return resolutions, bitrates, &InputError{Input: input, Reason: ReasonEmpty}
	case utf8.RuneCountInString(input) < MinInputLength:
		return resolutions, bitrates, &InputError{Input: input, Reason: ReasonTooShort}
	}

	var playlist *model.Playlist
	if c.playlists != nil && platform.IsPlaylistURL(input) {
		playlist, err = c.playlists.Resolve(ctx, input)
		if err != nil {
			return resolutions, bitrates, networkError("resolve playlist", err)
		}
		first, ok := playlist.First()
		if !ok {
			return resolutions, bitrates, &InputError{Input: input, Reason: ReasonEmptyPlaylist}
		}
		c.logger.Info("Playlist expanded",
			zap.String("playlist", playlist.ID),
			zap.Int("entries", playlist.Len()),
			zap.String("first", first.VideoID))
		input = first.URL
	}

	handle, err := c.extractor.Resolve(ctx, input)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return resolutions, bitrates, err
		}
		return resolutions, bitrates, networkError("resolve video", err)
	}

	resolutions = ResolutionMap(handle.Streams)
	bitrates = BitrateMap(handle.Streams)

	c.mu.Lock()
	c.handle = handle
	c.playlist = playlist
	c.mu.Unlock()

	c.logger.Info("Video loaded",
		zap.String("id", handle.ID),
		zap.String("title", handle.Title),
		zap.Int("streams", len(handle.Streams)),
		zap.Int("resolutions", resolutions.Len()-1),
		zap.Int("bitrates", bitrates.Len()-1))

	return resolutions, bitrates, nil
}

// Handle returns the loaded video, nil before the first successful Query
func (c *Catalog) Handle() *model.VideoHandle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.handle
}

// Playlist returns the playlist the current video was taken from, if any
func (c *Catalog) Playlist() *model.Playlist {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playlist
}

// Fetch streams desc into dir/filename and returns the written path. The
// stream is taken from desc.VideoID, which stays valid when a later Query
// replaces the loaded video; an unbound desc falls back to the loaded video.
// progress is called after every chunk written.
func (c *Catalog) Fetch(ctx context.Context, desc model.StreamDescriptor, dir, filename string, progress model.ProgressFunc) (string, error) {
	videoID := desc.VideoID
	if videoID == "" {
		handle := c.Handle()
		if handle == nil {
			return "", ErrNoVideo
		}
		videoID = handle.ID
	}

	body, size, err := c.extractor.Open(ctx, videoID, desc.Itag)
	if err != nil {
		if errors.Is(err, ErrNoVideo) || errors.Is(err, ErrUnknownStream) {
			return "", err
		}
		return "", networkError("open stream", err)
	}
	defer body.Close()

	if desc.Size <= 0 {
		desc.Size = size
	}
	if size <= 0 {
		size = desc.Size
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	c.logger.Debug("Fetching stream",
		zap.Stringer("stream", desc),
		zap.String("size", humanize.Bytes(uint64(max(size, 0)))),
		zap.String("path", path))

	remaining := size
	buf := make([]byte, c.chunkSize)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := f.Write(buf[:n]); err != nil {
				return "", fmt.Errorf("failed to write %s: %w", path, err)
			}
			remaining -= int64(n)
			if progress != nil {
				progress(desc, buf[:n], remaining)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", networkError("read stream", readErr)
		}
	}

	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return path, nil
}
