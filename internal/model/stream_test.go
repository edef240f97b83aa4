package model

import (
	"strings"
	"testing"
)

func TestCodecFromMimeType(t *testing.T) {
	tests := []struct {
		mime     string
		expected string
	}{
		{`video/mp4; codecs="avc1.64001F"`, "avc1.64001F"},
		{`audio/mp4; codecs="mp4a.40.2"`, "mp4a.40.2"},
		{`video/mp4; codecs="avc1.4d401e, mp4a.40.2"`, "avc1.4d401e"},
		{`video/webm`, ""},
	}

	for _, test := range tests {
		if got := CodecFromMimeType(test.mime); got != test.expected {
			t.Errorf("CodecFromMimeType(%q) = %q, expected %q", test.mime, got, test.expected)
		}
	}
}

func TestVideoHandle_Stream(t *testing.T) {
	handle := &VideoHandle{
		ID: "dQw4w9WgXcQ",
		Streams: []StreamDescriptor{
			{Itag: 136, Kind: StreamKindVideo, Resolution: "720p", FPS: 30},
			{Itag: 140, Kind: StreamKindAudio, Bitrate: 128},
		},
	}

	s, ok := handle.Stream(140)
	if !ok || s.Kind != StreamKindAudio {
		t.Errorf("Stream(140) = %+v, %v", s, ok)
	}
	if s.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("Expected VideoID dQw4w9WgXcQ, got %q", s.VideoID)
	}

	if _, ok := handle.Stream(999); ok {
		t.Error("Expected unknown itag to be missing")
	}

	var nilHandle *VideoHandle
	if _, ok := nilHandle.Stream(140); ok {
		t.Error("Expected nil handle lookup to fail")
	}
}

func TestStreamDescriptor_String(t *testing.T) {
	s := StreamDescriptor{Itag: 136, Kind: StreamKindVideo, Codec: "avc1.4d401f", Resolution: "720p", FPS: 30, Size: 2048}
	got := s.String()
	if !strings.Contains(got, "itag=136") || !strings.Contains(got, "720p@30fps") {
		t.Errorf("String() = %q", got)
	}
}
