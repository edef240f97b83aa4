package model

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Itag identifies a single stream variant of a video
type Itag int

// NoItag is the null selection ("None" in the selection controls)
const NoItag Itag = 0

// Valid reports whether the itag refers to a real stream
func (i Itag) Valid() bool {
	return i > 0
}

// StreamKind tells whether a stream carries video or audio
type StreamKind string

const (
	StreamKindVideo StreamKind = "video"
	StreamKindAudio StreamKind = "audio"
)

// StreamDescriptor describes one retrievable track
type StreamDescriptor struct {
	Itag       Itag
	Kind       StreamKind
	MimeType   string // e.g. `video/mp4; codecs="avc1.64001F"`
	Codec      string // codec parsed from MimeType, e.g. "avc1.64001F"
	Resolution string // "720p", empty for audio
	FPS        int    // 0 if unknown
	Bitrate    int    // average bitrate in kbps, 0 if unknown
	Adaptive   bool   // carries only one of video or audio
	Size       int64  // declared size in bytes
	VideoID    string // owning video, set by VideoHandle.Stream
}

// HasResolution reports whether the descriptor declares a resolution
func (d StreamDescriptor) HasResolution() bool {
	return d.Resolution != ""
}

// String returns a short human readable form used in logs
func (d StreamDescriptor) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("itag=%d %s %s", d.Itag, d.Kind, d.Codec))
	if d.Resolution != "" {
		b.WriteString(fmt.Sprintf(" %s@%dfps", d.Resolution, d.FPS))
	}
	if d.Bitrate > 0 {
		b.WriteString(fmt.Sprintf(" %dkbps", d.Bitrate))
	}
	if d.Size > 0 {
		b.WriteString(" " + humanize.Bytes(uint64(d.Size)))
	}
	return b.String()
}

// VideoHandle is the loaded remote video. It is replaced wholesale on every
// successful catalog query.
type VideoHandle struct {
	ID           string
	Title        string
	ThumbnailURL string
	Streams      []StreamDescriptor
}

// Stream returns the descriptor with the given itag, bound to this video
func (v *VideoHandle) Stream(itag Itag) (StreamDescriptor, bool) {
	if v == nil {
		return StreamDescriptor{}, false
	}
	for _, s := range v.Streams {
		if s.Itag == itag {
			s.VideoID = v.ID
			return s, true
		}
	}
	return StreamDescriptor{}, false
}

// CodecFromMimeType extracts the first codec from a mime type such as
// `audio/mp4; codecs="mp4a.40.2"`
func CodecFromMimeType(mimeType string) string {
	idx := strings.Index(mimeType, "codecs=")
	if idx < 0 {
		return ""
	}
	codecs := strings.Trim(mimeType[idx+len("codecs="):], `" `)
	if comma := strings.Index(codecs, ","); comma >= 0 {
		codecs = codecs[:comma]
	}
	return strings.TrimSpace(codecs)
}

// ProgressFunc is called after every chunk written while retrieving a stream.
// bytesRemaining counts down towards zero but may overshoot past it.
type ProgressFunc func(desc StreamDescriptor, chunk []byte, bytesRemaining int64)
