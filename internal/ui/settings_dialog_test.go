package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/tubefx/internal/config"
	"github.com/ytget/tubefx/internal/i18n"
)

func TestSettingsDialog_LoadAndSave(t *testing.T) {
	a := test.NewTempApp(t)
	settings := config.NewSettings(a)
	settings.SetOutputDirectory("/videos")
	settings.SetFFmpegPath("/usr/bin/ffmpeg")
	window := a.NewWindow("test")
	defer window.Close()

	saved := 0
	sd := NewSettingsDialog(window, settings, i18n.NewLocalization(), func() { saved++ })
	sd.loadCurrentSettings()

	if sd.outputDirEntry.Text != "/videos" {
		t.Errorf("Expected output dir '/videos', got %q", sd.outputDirEntry.Text)
	}
	if sd.ffmpegEntry.Text != "/usr/bin/ffmpeg" {
		t.Errorf("Expected ffmpeg path '/usr/bin/ffmpeg', got %q", sd.ffmpegEntry.Text)
	}
	if sd.revealCheck.Checked {
		t.Error("Expected reveal to be off by default")
	}

	sd.outputDirEntry.SetText("  /exports ")
	sd.ffmpegEntry.SetText("")
	sd.revealCheck.SetChecked(true)
	sd.save()

	if got := settings.GetOutputDirectory(); got != "/exports" {
		t.Errorf("Expected output dir '/exports', got %q", got)
	}
	if got := settings.GetFFmpegPath(); got != "" {
		t.Errorf("Expected empty ffmpeg path, got %q", got)
	}
	if !settings.GetAutoRevealOnComplete() {
		t.Error("Expected reveal to be saved")
	}
	if saved != 1 {
		t.Errorf("Expected saved callback once, got %d", saved)
	}
}

func TestSettingsDialog_CancelKeepsSettings(t *testing.T) {
	a := test.NewTempApp(t)
	settings := config.NewSettings(a)
	settings.SetOutputDirectory("/videos")
	window := a.NewWindow("test")
	defer window.Close()

	sd := NewSettingsDialog(window, settings, i18n.NewLocalization(), nil)
	sd.loadCurrentSettings()
	sd.outputDirEntry.SetText("/elsewhere")
	sd.onSave(false)

	if got := settings.GetOutputDirectory(); got != "/videos" {
		t.Errorf("Expected output dir unchanged, got %q", got)
	}
}
