package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/tubefx/internal/app"
	"github.com/ytget/tubefx/internal/catalog"
	"github.com/ytget/tubefx/internal/config"
	"github.com/ytget/tubefx/internal/download"
	"github.com/ytget/tubefx/internal/i18n"
	"github.com/ytget/tubefx/internal/logging"
	"github.com/ytget/tubefx/internal/mux"
	"github.com/ytget/tubefx/internal/platform"
	"github.com/ytget/tubefx/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.tubefx"
	AppName = "tubefx"

	WindowWidth  = 640
	WindowHeight = 420
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load environment: %v\n", err)
	}
	env := config.FromEnv()
	if err := env.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ignoring environment: %v\n", err)
		env = config.Env{LogLevel: config.DefaultLogLevel}
	}

	logger, err := logging.New(env.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("tubefx starting", zap.String("version", version))

	myApp := fyneapp.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	window := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	if err := platform.CreateDirectoryIfNotExists(settings.GetOutputDirectory()); err != nil {
		logger.Warn("Failed to ensure output directory", zap.Error(err))
	}

	localization := i18n.NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	cat := catalog.New(catalog.NewYouTubeExtractor(nil))
	cat.SetPlaylistResolver(platform.NewPlaylistResolver())
	cat.SetLogger(logger.Named("catalog"))

	downloads := download.NewService(cat, env.TempDir)
	downloads.SetLogger(logger.Named("download"))

	assembler := mux.NewService(settings.EffectiveFFmpegPath(env))
	assembler.SetLogger(logger.Named("mux"))

	root := ui.NewRootUI(window, settings, localization, logger.Named("ui"))
	controller := app.New(context.Background(), root, cat, downloads, assembler, app.Options{
		Texts:            localization,
		Logger:           logger.Named("app"),
		RevealOnComplete: settings.GetAutoRevealOnComplete,
		Reveal:           platform.OpenFileInManager,
	})
	root.SetLanguageCallback(controller.ApplyLanguage)
	root.SetSettingsCallback(func() {
		assembler.SetFFmpegPath(settings.EffectiveFFmpegPath(env))
	})

	window.ShowAndRun()
}
