package model

// JobStatus represents the lifecycle state of a download job
type JobStatus string

const (
	// JobStatusPending means the job is created but the worker has not started
	JobStatusPending JobStatus = "Pending"

	// JobStatusDownloading means the worker is retrieving tracks
	JobStatusDownloading JobStatus = "Downloading"

	// JobStatusDownloaded means every selected track is on disk
	JobStatusDownloaded JobStatus = "Downloaded"

	// JobStatusAssembling means ffmpeg is muxing the tracks
	JobStatusAssembling JobStatus = "Assembling"

	// JobStatusCompleted means the output file was written
	JobStatusCompleted JobStatus = "Completed"

	// JobStatusCancelled means the user dismissed the save dialog
	JobStatusCancelled JobStatus = "Cancelled"

	// JobStatusError means the download or the assembly failed
	JobStatusError JobStatus = "Error"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsActive returns true while the job still owns its temp directory
func (js JobStatus) IsActive() bool {
	return js == JobStatusPending || js == JobStatusDownloading ||
		js == JobStatusDownloaded || js == JobStatusAssembling
}

// IsFinished returns true if the job is in a terminal state
func (js JobStatus) IsFinished() bool {
	return js == JobStatusCompleted || js == JobStatusCancelled || js == JobStatusError
}
