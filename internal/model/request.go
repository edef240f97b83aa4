package model

import (
	"errors"
	"fmt"
	"os"
)

// Output containers offered in the save dialog
const (
	ContainerMP4 = "mp4" // video only, or video and audio
	ContainerM4A = "m4a" // audio only
)

// AssemblyRequest describes one mux of up to two local tracks
type AssemblyRequest struct {
	VideoPath  string
	AudioPath  string
	OutputPath string
}

// HasVideo reports whether a video track is present
func (r AssemblyRequest) HasVideo() bool {
	return r.VideoPath != ""
}

// HasAudio reports whether an audio track is present
func (r AssemblyRequest) HasAudio() bool {
	return r.AudioPath != ""
}

// Container returns the default output container for the present tracks
func (r AssemblyRequest) Container() string {
	return ContainerFor(r.HasVideo(), r.HasAudio())
}

// ContainerFor picks mp4 when a video track is present and m4a otherwise
func ContainerFor(hasVideo, hasAudio bool) string {
	if !hasVideo && hasAudio {
		return ContainerM4A
	}
	return ContainerMP4
}

// Validate checks the request against the filesystem
func (r AssemblyRequest) Validate() error {
	if r.OutputPath == "" {
		return errors.New("output path is empty")
	}
	if !r.HasVideo() && !r.HasAudio() {
		return errors.New("no track to assemble")
	}
	for _, p := range []string{r.VideoPath, r.AudioPath} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("track does not exist: %s", p)
		}
	}
	return nil
}
