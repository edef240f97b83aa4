package catalog

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/nfnt/resize"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

// Thumbnail display size, 16:9
const (
	ThumbnailWidth  = 16 * 11
	ThumbnailHeight = 9 * 11
)

// FetchThumbnail loads the thumbnail of the current video scaled to
// ThumbnailWidth x ThumbnailHeight. The fixed high resolution URL is tried
// first, then the handle's own thumbnail center-cropped to 16:9.
func (c *Catalog) FetchThumbnail(ctx context.Context) (image.Image, error) {
	handle := c.Handle()
	if handle == nil {
		return nil, &ThumbnailError{Cause: ErrNoVideo}
	}

	img, err := c.fetchImage(ctx, fmt.Sprintf(c.thumbURL, handle.ID))
	if err != nil {
		c.logger.Debug("High resolution thumbnail unavailable",
			zap.String("id", handle.ID), zap.Error(err))

		if handle.ThumbnailURL == "" {
			return nil, &ThumbnailError{VideoID: handle.ID, Cause: err}
		}
		img, err = c.fetchImage(ctx, handle.ThumbnailURL)
		if err != nil {
			return nil, &ThumbnailError{VideoID: handle.ID, Cause: err}
		}
		img = CropToAspect(img, 16, 9)
	}

	return resize.Resize(ThumbnailWidth, ThumbnailHeight, img, resize.Lanczos3), nil
}

func (c *Catalog) fetchImage(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError("get thumbnail", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode thumbnail: %w", err)
	}
	return img, nil
}

// CropToAspect returns the largest centered region of img with aspect w:h
func CropToAspect(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return img
	}

	cropW, cropH := width, width*h/w
	if cropH > height {
		cropW, cropH = height*w/h, height
	}
	x0 := b.Min.X + (width-cropW)/2
	y0 := b.Min.Y + (height-cropH)/2
	rect := image.Rect(x0, y0, x0+cropW, y0+cropH)

	if sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(rect)
	}

	dst := image.NewRGBA(image.Rect(0, 0, cropW, cropH))
	draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
	return dst
}
