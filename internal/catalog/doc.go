// Package catalog loads a YouTube video through an extraction collaborator
// and organizes its adaptive streams into resolution and bitrate label maps.
// It also fetches the video thumbnail and streams selected tracks to disk.
package catalog
