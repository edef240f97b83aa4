package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/ytget/tubefx/internal/model"
)

const testVideoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

type fakeExtractor struct {
	handle   *model.VideoHandle
	err      error
	bodies   map[model.Itag][]byte
	resolved []string
	opened   []string
}

func (f *fakeExtractor) Resolve(ctx context.Context, input string) (*model.VideoHandle, error) {
	f.resolved = append(f.resolved, input)
	if f.err != nil {
		return nil, f.err
	}
	return f.handle, nil
}

func (f *fakeExtractor) Open(ctx context.Context, videoID string, itag model.Itag) (io.ReadCloser, int64, error) {
	f.opened = append(f.opened, videoID)
	body, ok := f.bodies[itag]
	if !ok {
		return nil, 0, errors.New("stream missing")
	}
	return io.NopCloser(bytes.NewReader(body)), int64(len(body)), nil
}

type fakePlaylists struct {
	playlist *model.Playlist
	err      error
}

func (f *fakePlaylists) Resolve(ctx context.Context, rawURL string) (*model.Playlist, error) {
	return f.playlist, f.err
}

func testHandle() *model.VideoHandle {
	return &model.VideoHandle{
		ID:    "dQw4w9WgXcQ",
		Title: "Test Video",
		Streams: []model.StreamDescriptor{
			{Itag: 18, Kind: model.StreamKindVideo, Codec: "avc1.42001E", Resolution: "360p", FPS: 30, Adaptive: false},
			{Itag: 136, Kind: model.StreamKindVideo, Codec: "avc1.4d401f", Resolution: "720p", FPS: 30, Adaptive: true},
			{Itag: 137, Kind: model.StreamKindVideo, Codec: "avc1.640028", Resolution: "1080p", FPS: 30, Adaptive: true},
			{Itag: 248, Kind: model.StreamKindVideo, Codec: "vp9", Resolution: "1080p", FPS: 30, Adaptive: true},
			{Itag: 160, Kind: model.StreamKindVideo, Codec: "avc1.4d400c", Resolution: "", Adaptive: true},
			{Itag: 139, Kind: model.StreamKindAudio, Codec: "mp4a.40.5", Bitrate: 48, Adaptive: true},
			{Itag: 140, Kind: model.StreamKindAudio, Codec: "mp4a.40.2", Bitrate: 128, Adaptive: true},
			{Itag: 599, Kind: model.StreamKindAudio, Codec: "mp4a.40.5", Bitrate: 0, Adaptive: true},
			{Itag: 251, Kind: model.StreamKindAudio, Codec: "opus", Bitrate: 160, Adaptive: true},
			{Itag: 380, Kind: model.StreamKindAudio, Codec: "ac-3", Bitrate: 384, Adaptive: true},
		},
	}
}
