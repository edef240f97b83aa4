// Package ui contains the Fyne desktop view. RootUI implements app.View:
// it renders the status line, the URL input and the export area, and runs
// controller callbacks on the Fyne main thread. All strings come from the
// i18n package.
package ui
