package ui

import (
	"time"

	"github.com/ytget/tubefx/internal/catalog"
)

// Icons
const (
	IconSettings = "⚙"
	IconAbout    = "ℹ"
	IconFolder   = "📁"
)

// Layout sizing
const (
	ThumbnailWidth  float32 = catalog.ThumbnailWidth
	ThumbnailHeight float32 = catalog.ThumbnailHeight

	LogoSize float32 = 32

	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 360
)

// Save dialog
const (
	// FileSaveFallbackName is used when the suggested name is empty
	FileSaveFallbackName = "output.mp4"
)

// FFmpegCheckTimeout bounds the settings dialog probe
const FFmpegCheckTimeout = 10 * time.Second
