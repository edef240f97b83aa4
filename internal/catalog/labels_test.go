package catalog

import (
	"strings"
	"testing"

	"github.com/ytget/tubefx/internal/model"
)

func TestCandidateFilters(t *testing.T) {
	tests := []struct {
		name  string
		desc  model.StreamDescriptor
		video bool
		audio bool
	}{
		{"avc1 adaptive", model.StreamDescriptor{Kind: model.StreamKindVideo, Codec: "avc1.4d401f", Resolution: "720p", Adaptive: true}, true, false},
		{"avc1 progressive", model.StreamDescriptor{Kind: model.StreamKindVideo, Codec: "avc1.42001E", Resolution: "360p"}, false, false},
		{"vp9", model.StreamDescriptor{Kind: model.StreamKindVideo, Codec: "vp9", Resolution: "720p", Adaptive: true}, false, false},
		{"av01", model.StreamDescriptor{Kind: model.StreamKindVideo, Codec: "av01.0.05M.08", Resolution: "720p", Adaptive: true}, false, false},
		{"mp4a", model.StreamDescriptor{Kind: model.StreamKindAudio, Codec: "mp4a.40.2", Adaptive: true}, false, true},
		{"mp4a three digit major", model.StreamDescriptor{Kind: model.StreamKindAudio, Codec: "mp4a.400.2", Adaptive: true}, false, false},
		{"mp4a two digit minor", model.StreamDescriptor{Kind: model.StreamKindAudio, Codec: "mp4a.40.29", Adaptive: true}, false, false},
		{"opus", model.StreamDescriptor{Kind: model.StreamKindAudio, Codec: "opus", Adaptive: true}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsVideoCandidate(tt.desc); got != tt.video {
				t.Errorf("IsVideoCandidate() = %v, expected %v", got, tt.video)
			}
			if got := IsAudioCandidate(tt.desc); got != tt.audio {
				t.Errorf("IsAudioCandidate() = %v, expected %v", got, tt.audio)
			}
		})
	}
}

func TestMapsAlwaysContainNone(t *testing.T) {
	for _, m := range []model.LabelMap{ResolutionMap(nil), BitrateMap(nil)} {
		if m.Len() != 1 {
			t.Errorf("Expected only None, got %v", m.Labels())
		}
		if _, ok := m.Lookup(model.NoneLabel); !ok {
			t.Error("None missing")
		}
	}
}

func TestAudioBitrateKbps(t *testing.T) {
	tests := []struct {
		itag     model.Itag
		bps      int
		expected int
	}{
		{140, 129478, 128},
		{139, 0, 48},
		{599, 31000, 31},
		{600, 0, 0},
	}

	for _, tt := range tests {
		if got := AudioBitrateKbps(tt.itag, tt.bps); got != tt.expected {
			t.Errorf("AudioBitrateKbps(%d, %d) = %d, expected %d", tt.itag, tt.bps, got, tt.expected)
		}
	}
}

func TestDisplayTitle(t *testing.T) {
	short := "A short title"
	if got := DisplayTitle(short); got != short {
		t.Errorf("DisplayTitle(%q) = %q", short, got)
	}

	exact := strings.Repeat("x", MaxTitleLength)
	if got := DisplayTitle(exact); got != exact {
		t.Errorf("Title of exactly %d chars should not be truncated", MaxTitleLength)
	}

	long := strings.Repeat("y", MaxTitleLength+10)
	want := strings.Repeat("y", MaxTitleLength) + TitleEllipsis
	if got := DisplayTitle(long); got != want {
		t.Errorf("DisplayTitle(long) = %q, expected %q", got, want)
	}
}
