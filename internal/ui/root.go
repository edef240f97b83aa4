package ui

import (
	"image"
	"sort"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/tubefx/internal/config"
	"github.com/ytget/tubefx/internal/i18n"
)

// RootUI is the main window. Its methods must run on the Fyne main thread,
// ScheduleAfter is the way back there from worker goroutines.
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *i18n.Localization
	logger       *zap.Logger

	onLanguageChange func()
	onSettingsSaved  func()

	statusTitle *widget.Label
	statusLabel *widget.Label
	urlEntry    *widget.Entry
	processBtn  *widget.Button

	titleLabel      *widget.Label
	thumbnail       *canvas.Image
	resolutionLabel *widget.Label
	bitrateLabel    *widget.Label
	resolutionSel   *widget.Select
	bitrateSel      *widget.Select
	downloadBtn     *widget.Button
}

// NewRootUI builds the window content and menu
func NewRootUI(window fyne.Window, settings *config.Settings, localization *i18n.Localization, logger *zap.Logger) *RootUI {
	if logger == nil {
		logger = zap.NewNop()
	}
	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		logger:       logger,
	}

	window.SetTitle(localization.GetText(i18n.KeyAppTitle))
	ui.setupUI()
	return ui
}

// SetLanguageCallback is called after the user switches language
func (ui *RootUI) SetLanguageCallback(fn func()) {
	ui.onLanguageChange = fn
}

// SetSettingsCallback is called after the settings dialog saved
func (ui *RootUI) SetSettingsCallback(fn func()) {
	ui.onSettingsSaved = fn
}

func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.statusTitle = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Wrapping = fyne.TextWrapWord
	statusRow := container.NewBorder(nil, nil, ui.statusTitle, nil, ui.statusLabel)

	ui.urlEntry = widget.NewEntry()
	ui.processBtn = widget.NewButton("", nil)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	aboutBtn := widget.NewButton(IconAbout, ui.onShowAbout)
	aboutBtn.Importance = widget.LowImportance

	left := container.NewHBox(settingsBtn, aboutBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		left = container.NewHBox(logoImage, settingsBtn, aboutBtn)
	}
	inputRow := container.NewBorder(nil, nil, left, ui.processBtn, ui.urlEntry)

	ui.titleLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.titleLabel.Truncation = fyne.TextTruncateEllipsis

	ui.thumbnail = canvas.NewImageFromImage(nil)
	ui.thumbnail.FillMode = canvas.ImageFillContain
	ui.thumbnail.SetMinSize(fyne.NewSize(ThumbnailWidth, ThumbnailHeight))

	ui.resolutionLabel = widget.NewLabel("")
	ui.bitrateLabel = widget.NewLabel("")
	ui.resolutionSel = widget.NewSelect(nil, nil)
	ui.bitrateSel = widget.NewSelect(nil, nil)
	ui.downloadBtn = widget.NewButton("", nil)
	ui.downloadBtn.Importance = widget.HighImportance

	selects := container.NewGridWithColumns(2,
		ui.resolutionLabel, ui.resolutionSel,
		ui.bitrateLabel, ui.bitrateSel,
	)
	exportArea := container.NewBorder(
		ui.titleLabel,
		nil,
		ui.thumbnail,
		nil,
		container.NewVBox(selects, ui.downloadBtn),
	)

	ui.refreshUITexts()
	ui.SetExportWidgetsEnabled(false)

	content := container.NewVBox(
		statusRow,
		inputRow,
		widget.NewSeparator(),
		exportArea,
	)
	ui.window.SetContent(container.NewPadded(content))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(i18n.KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(i18n.KeyLanguage))
	available := ui.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(available))
	for code := range available {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		langItem := fyne.NewMenuItem(available[code], func() {
			ui.changeLanguage(code)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	aboutItem := fyne.NewMenuItem(ui.localization.GetText(i18n.KeyAbout), ui.onShowAbout)

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(i18n.KeyFile), settingsItem),
		languageMenu,
		fyne.NewMenu(ui.localization.GetText(i18n.KeyAbout), aboutItem),
	))
}

// changeLanguage switches, persists and re-renders the language
func (ui *RootUI) changeLanguage(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()
	ui.createMenu()

	if ui.onLanguageChange != nil {
		ui.onLanguageChange()
	}
}

// refreshUITexts updates all static texts with the current language
func (ui *RootUI) refreshUITexts() {
	t := ui.localization.GetText
	ui.window.SetTitle(t(i18n.KeyAppTitle))
	ui.statusTitle.SetText(t(i18n.KeyStatus))
	ui.urlEntry.SetPlaceHolder(t(i18n.KeyEnterURL))
	ui.processBtn.SetText(t(i18n.KeyProcess))
	ui.resolutionLabel.SetText(t(i18n.KeyResolution))
	ui.bitrateLabel.SetText(t(i18n.KeyBitrate))
	ui.downloadBtn.SetText(t(i18n.KeyDownload))
}

func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		if ui.onSettingsSaved != nil {
			ui.onSettingsSaved()
		}
	})
}

func (ui *RootUI) onShowAbout() {
	dialog.ShowInformation(
		ui.localization.GetText(i18n.KeyAbout),
		ui.localization.GetText(i18n.KeyAboutText),
		ui.window,
	)
}

// InputText returns the URL entry content
func (ui *RootUI) InputText() string {
	return ui.urlEntry.Text
}

// SetStatus replaces the status line
func (ui *RootUI) SetStatus(message string) {
	ui.statusLabel.SetText(message)
}

// SetResolutionList fills the resolution select and picks the first label
func (ui *RootUI) SetResolutionList(labels []string) {
	setOptions(ui.resolutionSel, labels)
}

// SetBitrateList fills the bitrate select and picks the first label
func (ui *RootUI) SetBitrateList(labels []string) {
	setOptions(ui.bitrateSel, labels)
}

func setOptions(sel *widget.Select, labels []string) {
	sel.Options = labels
	if len(labels) > 0 {
		sel.SetSelectedIndex(0)
	} else {
		sel.ClearSelected()
	}
	sel.Refresh()
}

// SelectedResolution returns the selected resolution label
func (ui *RootUI) SelectedResolution() string {
	return ui.resolutionSel.Selected
}

// SelectedBitrate returns the selected bitrate label
func (ui *RootUI) SelectedBitrate() string {
	return ui.bitrateSel.Selected
}

// SetVideoTitle shows the (already shortened) title
func (ui *RootUI) SetVideoTitle(title string) {
	ui.titleLabel.SetText(title)
}

// SetVideoThumbnail shows img, nil clears it
func (ui *RootUI) SetVideoThumbnail(img image.Image) {
	ui.thumbnail.Image = img
	ui.thumbnail.Refresh()
}

// SetExportWidgetsEnabled toggles the selects and the download button
func (ui *RootUI) SetExportWidgetsEnabled(enabled bool) {
	for _, w := range []fyne.Disableable{ui.resolutionSel, ui.bitrateSel, ui.downloadBtn} {
		if enabled {
			w.Enable()
		} else {
			w.Disable()
		}
	}
}

// SetProcessButtonEnabled toggles the process button
func (ui *RootUI) SetProcessButtonEnabled(enabled bool) {
	if enabled {
		ui.processBtn.Enable()
	} else {
		ui.processBtn.Disable()
	}
}

// SetInputCallbacks binds Enter in the URL entry and the process button
func (ui *RootUI) SetInputCallbacks(onSubmit, onProcess func()) {
	ui.urlEntry.OnSubmitted = func(string) {
		if onSubmit != nil && !ui.processBtn.Disabled() {
			onSubmit()
		}
	}
	ui.processBtn.OnTapped = onProcess
}

// SetExportCallback binds the download button
func (ui *RootUI) SetExportCallback(onDownload func()) {
	ui.downloadBtn.OnTapped = onDownload
}

// ScheduleAfter runs fn on the main thread once delay has elapsed
func (ui *RootUI) ScheduleAfter(delay time.Duration, fn func()) {
	time.AfterFunc(delay, func() {
		fyne.Do(fn)
	})
}

// PromptSavePath opens the save dialog in the configured output directory
func (ui *RootUI) PromptSavePath(suggestedName string, filters []string, done func(path string)) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			ui.logger.Warn("Save dialog failed", zap.Error(err))
			done("")
			return
		}
		if writer == nil {
			done("")
			return
		}
		path := writer.URI().Path()
		if err := writer.Close(); err != nil {
			ui.logger.Warn("Failed to close save target", zap.String("path", path), zap.Error(err))
		}
		done(path)
	}, ui.window)

	if suggestedName == "" {
		suggestedName = FileSaveFallbackName
	}
	save.SetFileName(suggestedName)
	if len(filters) > 0 {
		save.SetFilter(storage.NewExtensionFileFilter(filters))
	}
	if dir := ui.settings.GetOutputDirectory(); dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			save.SetLocation(lister)
		}
	}
	save.Show()
}
