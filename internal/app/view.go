package app

import (
	"image"
	"time"
)

// View is the presentation side of the controller. Every method is called
// on the foreground; implementations schedule ScheduleAfter callbacks there
// too.
type View interface {
	InputText() string
	SetStatus(message string)

	SetResolutionList(labels []string)
	SetBitrateList(labels []string)
	SelectedResolution() string
	SelectedBitrate() string

	SetVideoTitle(title string)
	SetVideoThumbnail(img image.Image)

	SetExportWidgetsEnabled(enabled bool)
	SetProcessButtonEnabled(enabled bool)

	SetInputCallbacks(onSubmit, onProcess func())
	SetExportCallback(onDownload func())

	ScheduleAfter(delay time.Duration, fn func())

	// PromptSavePath asks for the output file. suggestedName carries the
	// default extension, filters lists the allowed extensions. done receives
	// an empty path when the user cancels.
	PromptSavePath(suggestedName string, filters []string, done func(path string))
}
