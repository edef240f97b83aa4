// Package download runs the retrieval of the selected video and audio tracks
// of the loaded video on a background goroutine. The foreground observes the
// job by polling it; the worker never touches UI state.
package download
