package model

// Package model defines domain data structures shared across the app: stream
// descriptors, the label maps that back the selection controls, the download
// job and the assembly request. Structures carry explicit state transitions
// so the UI can poll them without knowing how they are produced.
