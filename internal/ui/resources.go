package ui

import (
	"fyne.io/fyne/v2"
)

const (
	AppIcon = "tubefx.png"
)

// LoadLogoResource loads the logo next to the executable's working
// directory. The window falls back to a text-only header when it is missing.
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}
