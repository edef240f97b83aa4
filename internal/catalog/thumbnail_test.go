package catalog

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func loadedCatalog(t *testing.T, thumbnailURL string) *Catalog {
	t.Helper()
	handle := testHandle()
	handle.ThumbnailURL = thumbnailURL
	c := New(&fakeExtractor{handle: handle})
	if _, _, err := c.Query(context.Background(), testVideoURL); err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	return c
}

func TestFetchThumbnail(t *testing.T) {
	maxres := pngBytes(t, 320, 180)
	fallback := pngBytes(t, 120, 90)

	tests := []struct {
		name        string
		maxresFound bool
		fallbackOK  bool
		wantErr     bool
		wantPaths   []string
	}{
		{"high resolution", true, true, false, []string{"/vi/dQw4w9WgXcQ/maxresdefault.jpg"}},
		{"fallback", false, true, false, []string{"/vi/dQw4w9WgXcQ/maxresdefault.jpg", "/fallback.png"}},
		{"not found", false, false, true, []string{"/vi/dQw4w9WgXcQ/maxresdefault.jpg", "/fallback.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var paths []string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				paths = append(paths, r.URL.Path)
				switch {
				case r.URL.Path == "/fallback.png" && tt.fallbackOK:
					w.Write(fallback)
				case r.URL.Path == "/vi/dQw4w9WgXcQ/maxresdefault.jpg" && tt.maxresFound:
					w.Write(maxres)
				default:
					http.NotFound(w, r)
				}
			}))
			defer server.Close()

			c := loadedCatalog(t, server.URL+"/fallback.png")
			c.SetThumbnailURLPattern(server.URL + "/vi/%s/maxresdefault.jpg")

			img, err := c.FetchThumbnail(context.Background())
			if tt.wantErr {
				if !errors.Is(err, ErrThumbnailNotFound) {
					t.Fatalf("Expected ErrThumbnailNotFound, got %v", err)
				}
				var thumbErr *ThumbnailError
				if !errors.As(err, &thumbErr) || thumbErr.VideoID != "dQw4w9WgXcQ" {
					t.Errorf("Expected ThumbnailError for the video, got %v", err)
				}
			} else {
				if err != nil {
					t.Fatalf("FetchThumbnail() error: %v", err)
				}
				b := img.Bounds()
				if b.Dx() != ThumbnailWidth || b.Dy() != ThumbnailHeight {
					t.Errorf("Thumbnail size = %dx%d", b.Dx(), b.Dy())
				}
			}

			if len(paths) != len(tt.wantPaths) {
				t.Fatalf("Requested %v, expected %v", paths, tt.wantPaths)
			}
			for i := range paths {
				if paths[i] != tt.wantPaths[i] {
					t.Errorf("Request %d = %s, expected %s", i, paths[i], tt.wantPaths[i])
				}
			}
		})
	}
}

func TestFetchThumbnail_NoVideo(t *testing.T) {
	c := New(&fakeExtractor{})
	if _, err := c.FetchThumbnail(context.Background()); !errors.Is(err, ErrThumbnailNotFound) {
		t.Errorf("Expected ErrThumbnailNotFound, got %v", err)
	}
}

func TestCropToAspect(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
		wantMinX     int
		wantMinY     int
	}{
		{"4:3 source", 120, 90, 120, 67, 0, 11},
		{"tall source", 90, 160, 90, 50, 0, 55},
		{"wide source", 400, 100, 177, 100, 111, 0},
		{"already 16:9", 160, 90, 160, 90, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			b := CropToAspect(img, 16, 9).Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("Crop size = %dx%d, expected %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			if b.Min.X != tt.wantMinX || b.Min.Y != tt.wantMinY {
				t.Errorf("Crop origin = %v, expected (%d,%d)", b.Min, tt.wantMinX, tt.wantMinY)
			}
		})
	}
}
