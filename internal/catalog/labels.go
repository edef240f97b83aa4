package catalog

import (
	"math"
	"regexp"

	"github.com/ytget/tubefx/internal/model"
)

// Title display limits
const (
	MaxTitleLength = 54
	TitleEllipsis  = "..."
)

var (
	videoCodecPattern = regexp.MustCompile(`^avc1`)
	audioCodecPattern = regexp.MustCompile(`^mp4a\.\d{2}\.\d$`)
)

// knownAudioBitrates holds the nominal bitrate in kbps of the common mp4a
// itags. The average bitrate reported by the player differs per video.
var knownAudioBitrates = map[model.Itag]int{
	139: 48,
	140: 128,
	141: 256,
	256: 192,
	258: 384,
	325: 384,
	328: 384,
}

// IsVideoCandidate reports whether d is an adaptive avc1 video-only stream
// with a resolution
func IsVideoCandidate(d model.StreamDescriptor) bool {
	return d.Kind == model.StreamKindVideo &&
		d.Adaptive &&
		d.HasResolution() &&
		videoCodecPattern.MatchString(d.Codec)
}

// IsAudioCandidate reports whether d is an adaptive audio-only mp4a.NN.N
// stream
func IsAudioCandidate(d model.StreamDescriptor) bool {
	return d.Kind == model.StreamKindAudio &&
		d.Adaptive &&
		audioCodecPattern.MatchString(d.Codec)
}

// ResolutionMap builds the "{resolution} @ {fps}fps" label map
func ResolutionMap(streams []model.StreamDescriptor) model.LabelMap {
	m := model.NewLabelMap()
	for _, d := range streams {
		if IsVideoCandidate(d) {
			m.Set(model.ResolutionLabel(d.Resolution, d.FPS), d.Itag)
		}
	}
	return m
}

// BitrateMap builds the "{kbps}kbps" label map
func BitrateMap(streams []model.StreamDescriptor) model.LabelMap {
	m := model.NewLabelMap()
	for _, d := range streams {
		if IsAudioCandidate(d) {
			m.Set(model.BitrateLabel(d.Bitrate), d.Itag)
		}
	}
	return m
}

// AudioBitrateKbps returns the nominal kbps of an itag, falling back to the
// reported bits per second. Zero means unknown.
func AudioBitrateKbps(itag model.Itag, bitsPerSecond int) int {
	if kbps, ok := knownAudioBitrates[itag]; ok {
		return kbps
	}
	if bitsPerSecond <= 0 {
		return 0
	}
	return int(math.Round(float64(bitsPerSecond) / 1000))
}

// DisplayTitle truncates title to MaxTitleLength runes plus an ellipsis
func DisplayTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= MaxTitleLength {
		return title
	}
	return string(runes[:MaxTitleLength]) + TitleEllipsis
}
