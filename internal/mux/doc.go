// Package mux combines separately retrieved video and audio tracks into one
// container with ffmpeg, copying the bitstreams without re-encoding.
package mux
