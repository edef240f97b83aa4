package model

import (
	"time"
)

// PlaylistEntry is a single video listed in a playlist
type PlaylistEntry struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
}

// Playlist represents a YouTube playlist resolved from a list= URL
type Playlist struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	URL       string          `json:"url"`
	Entries   []PlaylistEntry `json:"entries"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewPlaylist creates an empty playlist for url
func NewPlaylist(id, url string) *Playlist {
	return &Playlist{
		ID:        id,
		URL:       url,
		Entries:   make([]PlaylistEntry, 0),
		CreatedAt: time.Now(),
	}
}

// AddEntry appends an entry to the playlist
func (p *Playlist) AddEntry(entry PlaylistEntry) {
	p.Entries = append(p.Entries, entry)
}

// First returns the first entry of the playlist
func (p *Playlist) First() (PlaylistEntry, bool) {
	if p == nil || len(p.Entries) == 0 {
		return PlaylistEntry{}, false
	}
	return p.Entries[0], true
}

// Len returns the number of entries
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Entries)
}
