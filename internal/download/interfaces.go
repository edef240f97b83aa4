package download

import (
	"context"

	"github.com/ytget/tubefx/internal/model"
)

// Source provides the loaded video and retrieves its streams
type Source interface {
	Handle() *model.VideoHandle
	Fetch(ctx context.Context, desc model.StreamDescriptor, dir, filename string, progress model.ProgressFunc) (string, error)
}

// Downloader defines the interface for the download service.
type Downloader interface {
	Start(ctx context.Context, video, audio model.Itag) (*model.DownloadJob, error)
	Active() *model.DownloadJob
	Release(job *model.DownloadJob)
}
