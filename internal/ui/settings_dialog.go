package ui

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/tubefx/internal/config"
	"github.com/ytget/tubefx/internal/i18n"
	"github.com/ytget/tubefx/internal/mux"
)

// SettingsDialog edits the persisted preferences
type SettingsDialog struct {
	settings     *config.Settings
	localization *i18n.Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	outputDirEntry *widget.Entry
	ffmpegEntry    *widget.Entry
	ffmpegResult   *widget.Label
	revealCheck    *widget.Check
	checkFFmpegBtn *widget.Button
}

// ShowSettingsDialog opens the settings dialog; onSaved runs after a save
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *i18n.Localization, onSaved func()) {
	NewSettingsDialog(window, settings, localization, onSaved).Show()
}

// NewSettingsDialog creates a settings dialog
func NewSettingsDialog(window fyne.Window, settings *config.Settings, localization *i18n.Localization, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}
	sd.createUI()
	return sd
}

// Show loads the current values and displays the dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.outputDirEntry = widget.NewEntry()
	browseBtn := widget.NewButton(IconFolder+" "+t(i18n.KeyBrowse), sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseBtn, sd.outputDirEntry)

	sd.ffmpegEntry = widget.NewEntry()
	sd.ffmpegEntry.SetPlaceHolder(mux.FFmpegCommand)
	sd.checkFFmpegBtn = widget.NewButton(t(i18n.KeyCheckFFmpeg), sd.onCheckFFmpeg)
	ffmpegRow := container.NewBorder(nil, nil, nil, sd.checkFFmpegBtn, sd.ffmpegEntry)
	sd.ffmpegResult = widget.NewLabel("")
	sd.ffmpegResult.Wrapping = fyne.TextWrapWord

	sd.revealCheck = widget.NewCheck(t(i18n.KeyRevealOnComplete), nil)

	form := container.NewVBox(
		widget.NewLabel(t(i18n.KeyOutputDirectory)),
		outputDirRow,
		widget.NewSeparator(),
		widget.NewLabel(t(i18n.KeyFFmpegPath)),
		ffmpegRow,
		sd.ffmpegResult,
		widget.NewSeparator(),
		sd.revealCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(i18n.KeySettings),
		t(i18n.KeySave),
		t(i18n.KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputDirEntry.SetText(sd.settings.GetOutputDirectory())
	sd.ffmpegEntry.SetText(sd.settings.GetFFmpegPath())
	sd.revealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
	sd.ffmpegResult.SetText("")
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onCheckFFmpeg runs "ffmpeg -version" for the path currently typed in
func (sd *SettingsDialog) onCheckFFmpeg() {
	path := strings.TrimSpace(sd.ffmpegEntry.Text)
	sd.checkFFmpegBtn.Disable()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), FFmpegCheckTimeout)
		defer cancel()
		version, err := mux.NewService(path).Probe(ctx)

		fyne.Do(func() {
			sd.checkFFmpegBtn.Enable()
			if err != nil {
				sd.ffmpegResult.SetText(sd.localization.GetText(i18n.KeyFFmpegNotFound))
				return
			}
			sd.ffmpegResult.SetText(fmt.Sprintf(sd.localization.GetText(i18n.KeyFFmpegFound), version))
		})
	}()
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()
	dialog.ShowInformation(
		sd.localization.GetText(i18n.KeySettings),
		sd.localization.GetText(i18n.KeySettingsSaved),
		sd.window,
	)
}

// save persists the form. An empty ffmpeg path is stored as is and means
// PATH lookup.
func (sd *SettingsDialog) save() {
	if dir := strings.TrimSpace(sd.outputDirEntry.Text); dir != "" {
		sd.settings.SetOutputDirectory(dir)
	}
	sd.settings.SetFFmpegPath(strings.TrimSpace(sd.ffmpegEntry.Text))
	sd.settings.SetAutoRevealOnComplete(sd.revealCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
