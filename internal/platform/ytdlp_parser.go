package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/tubefx/internal/model"
	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultParseTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	VideoParam     = "v="
	ParamSeparator = "&"
)

// Default values
const (
	DefaultPlaylistName = "Unknown Playlist"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Playlist title constants
const (
	MinPrefixLength = 10
	PlaylistSuffix  = " Playlist"
)

// fetchFunc lists the entries of a playlist by ID
type fetchFunc func(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error)

// PlaylistResolver expands playlist URLs into their videos using the ytdlp
// library
type PlaylistResolver struct {
	timeout time.Duration
	fetch   fetchFunc
}

// NewPlaylistResolver creates a resolver backed by ytdlp
func NewPlaylistResolver() *PlaylistResolver {
	return &PlaylistResolver{
		timeout: DefaultParseTimeout,
		fetch:   fetchWithYTDLP,
	}
}

// SetTimeout sets the timeout for resolve operations
func (r *PlaylistResolver) SetTimeout(timeout time.Duration) {
	r.timeout = timeout
}

// IsPlaylistURL reports whether rawURL references a playlist but no single
// video
func IsPlaylistURL(rawURL string) bool {
	if !strings.Contains(rawURL, PlaylistParam) {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return !strings.Contains(rawURL, "?"+VideoParam) && !strings.Contains(rawURL, ParamSeparator+VideoParam)
	}
	return u.Query().Get("v") == ""
}

// Resolve lists the videos of the playlist referenced by rawURL
func (r *PlaylistResolver) Resolve(ctx context.Context, rawURL string) (*model.Playlist, error) {
	playlistID := ExtractPlaylistID(rawURL)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", rawURL)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	entries, err := r.fetch(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	playlist := model.NewPlaylist(playlistID, rawURL)
	for _, entry := range entries {
		playlist.AddEntry(entry)
	}
	playlist.Title = playlistTitle(playlist.Entries)

	return playlist, nil
}

// ExtractPlaylistID extracts the list= parameter from a URL
func ExtractPlaylistID(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if id := u.Query().Get("list"); id != "" {
			return id
		}
	}
	parts := strings.SplitN(rawURL, PlaylistParam, 2)
	if len(parts) < 2 {
		return ""
	}
	id, _, _ := strings.Cut(parts[1], ParamSeparator)
	return id
}

// VideoURL returns the watch URL of a video ID
func VideoURL(videoID string) string {
	return fmt.Sprintf(YouTubeVideoURLTemplate, videoID)
}

func fetchWithYTDLP(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]model.PlaylistEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, model.PlaylistEntry{
			VideoID: it.VideoID,
			Title:   it.Title,
			URL:     VideoURL(it.VideoID),
		})
	}
	return entries, nil
}

// playlistTitle derives a title from the common prefix of the first two
// entries
func playlistTitle(entries []model.PlaylistEntry) string {
	if len(entries) == 0 {
		return DefaultPlaylistName
	}
	if len(entries) > 1 {
		prefix := commonPrefix(entries[0].Title, entries[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	return entries[0].Title + PlaylistSuffix
}

func commonPrefix(s1, s2 string) string {
	n := min(len(s1), len(s2))
	for i := 0; i < n; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:n]
}
