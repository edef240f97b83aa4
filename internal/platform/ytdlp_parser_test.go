package platform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ytget/tubefx/internal/model"
)

func TestNewPlaylistResolver(t *testing.T) {
	r := NewPlaylistResolver()

	if r == nil {
		t.Fatal("resolver should not be nil")
	}
	if r.timeout != DefaultParseTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultParseTimeout, r.timeout)
	}

	r.SetTimeout(5 * time.Second)
	if r.timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", r.timeout)
	}
}

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/playlist?list=PL1234567890", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL1234567890", false},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", false},
		{"https://youtu.be/dQw4w9WgXcQ", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := IsPlaylistURL(tt.url); got != tt.expected {
				t.Errorf("IsPlaylistURL(%q) = %v, expected %v", tt.url, got, tt.expected)
			}
		})
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.youtube.com/playlist?list=PLabc", "PLabc"},
		{"https://www.youtube.com/playlist?list=PLabc&index=2", "PLabc"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", ""},
	}

	for _, tt := range tests {
		if got := ExtractPlaylistID(tt.url); got != tt.expected {
			t.Errorf("ExtractPlaylistID(%q) = %q, expected %q", tt.url, got, tt.expected)
		}
	}
}

func TestResolve(t *testing.T) {
	var gotID string
	r := &PlaylistResolver{
		timeout: time.Second,
		fetch: func(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error) {
			gotID = playlistID
			return []model.PlaylistEntry{
				{VideoID: "aaaaaaaaaaa", Title: "Concert Recording Part 1", URL: VideoURL("aaaaaaaaaaa")},
				{VideoID: "bbbbbbbbbbb", Title: "Concert Recording Part 2", URL: VideoURL("bbbbbbbbbbb")},
			}, nil
		},
	}

	playlist, err := r.Resolve(context.Background(), "https://www.youtube.com/playlist?list=PLxyz")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if gotID != "PLxyz" {
		t.Errorf("expected playlist ID PLxyz, got %q", gotID)
	}
	if playlist.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", playlist.Len())
	}
	if playlist.Title != "Concert Recording Part Playlist" {
		t.Errorf("unexpected title %q", playlist.Title)
	}

	first, ok := playlist.First()
	if !ok || first.URL != "https://www.youtube.com/watch?v=aaaaaaaaaaa" {
		t.Errorf("First() = %+v, %v", first, ok)
	}
}

func TestResolve_Errors(t *testing.T) {
	boom := errors.New("boom")
	r := &PlaylistResolver{
		fetch: func(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error) {
			return nil, boom
		},
	}

	if _, err := r.Resolve(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ"); err == nil {
		t.Error("expected error for URL without list parameter")
	}

	_, err := r.Resolve(context.Background(), "https://www.youtube.com/playlist?list=PLxyz")
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped fetch error, got %v", err)
	}
}

func TestPlaylistTitle(t *testing.T) {
	tests := []struct {
		name     string
		entries  []model.PlaylistEntry
		expected string
	}{
		{"empty", nil, DefaultPlaylistName},
		{"single", []model.PlaylistEntry{{Title: "Solo"}}, "Solo Playlist"},
		{"short prefix", []model.PlaylistEntry{{Title: "Song A"}, {Title: "Song B"}}, "Song A Playlist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := playlistTitle(tt.entries); got != tt.expected {
				t.Errorf("playlistTitle() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
