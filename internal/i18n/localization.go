// Package i18n holds the translated UI and status texts.
package i18n

import (
	"os"
	"strings"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Language codes
const (
	LanguageSystem     = "system"
	LanguageEnglish    = "en"
	LanguageRussian    = "ru"
	LanguagePortuguese = "pt"
)

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyStatus             = "status"
	KeyEnterURL           = "enter_url"
	KeyProcess            = "process"
	KeyDownload           = "download"
	KeyResolution         = "resolution"
	KeyBitrate            = "bitrate"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyAbout              = "about"
	KeyAboutText          = "about_text"
	KeyOutputDirectory    = "output_directory"
	KeyFFmpegPath         = "ffmpeg_path"
	KeyRevealOnComplete   = "reveal_on_complete"
	KeyCheckFFmpeg        = "check_ffmpeg"
	KeyFFmpegFound        = "ffmpeg_found"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeySettingsSaved      = "settings_saved"
	KeyWaitingForInput    = "waiting_for_input"
	KeyNoInput            = "no_input"
	KeyLoadingVideo       = "loading_video"
	KeyInputInvalid       = "input_invalid"
	KeyNetworkError       = "network_error"
	KeyThumbnailFailed    = "thumbnail_failed"
	KeyVideoLoaded        = "video_loaded"
	KeyNothingSelected    = "nothing_selected"
	KeyDownloadNotStarted = "download_not_started"
	KeyDownloading        = "downloading"
	KeyDownloadCompleted  = "download_completed"
	KeyDownloadFailed     = "download_failed"
	KeyExportCancelled    = "export_cancelled"
	KeyExporting          = "exporting"
	KeyFFmpegNotFound     = "ffmpeg_not_found"
	KeyExportFailed       = "export_failed"
	KeyExportFinished     = "export_finished"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LanguageEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the language of the
// LC_ALL or LANG environment variable when it is available.
func (l *Localization) SetLanguage(lang string) {
	if lang == LanguageSystem {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[LanguageEnglish]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LanguageEnglish:    "English",
		LanguageRussian:    "Русский",
		LanguagePortuguese: "Português",
	}
}

func systemLanguage() string {
	for _, key := range []string{"LC_ALL", "LANG"} {
		value := os.Getenv(key)
		if len(value) >= 2 {
			return strings.ToLower(value[:2])
		}
	}
	return LanguageEnglish
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts[LanguageEnglish] = map[string]string{
		KeyAppTitle:           "tubefx",
		KeyStatus:             "Status:",
		KeyEnterURL:           "Enter YouTube URL (https://www.youtube.com/watch?v=...)",
		KeyProcess:            "Process",
		KeyDownload:           "Download",
		KeyResolution:         "Resolution",
		KeyBitrate:            "Bitrate",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyAbout:              "About",
		KeyAboutText:          "tubefx downloads the video and audio streams of a YouTube video and joins them with ffmpeg without re-encoding.",
		KeyOutputDirectory:    "Output Directory",
		KeyFFmpegPath:         "ffmpeg Path",
		KeyRevealOnComplete:   "Reveal file after export",
		KeyCheckFFmpeg:        "Check",
		KeyFFmpegFound:        "Found: %s",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyWaitingForInput:    "Waiting for input...",
		KeyNoInput:            "No input provided.",
		KeyLoadingVideo:       "Loading video...",
		KeyInputInvalid:       "Input is invalid: %s",
		KeyNetworkError:       "Could not load the video, check your connection.",
		KeyThumbnailFailed:    "Thumbnail could not be loaded, but video should be ok.",
		KeyVideoLoaded:        "Video loaded. Choose a resolution and a bitrate.",
		KeyNothingSelected:    "Nothing selected to download.",
		KeyDownloadNotStarted: "Download could not start: %s",
		KeyDownloading:        "Downloading %.1f%% [%s]",
		KeyDownloadCompleted:  "Download completed.",
		KeyDownloadFailed:     "Download failed: %s",
		KeyExportCancelled:    "Export cancelled.",
		KeyExporting:          "Exporting...",
		KeyFFmpegNotFound:     "ffmpeg was not found. Install it or set its path in Settings.",
		KeyExportFailed:       "Export failed: %s",
		KeyExportFinished:     "Export finished: %s",
	}

	// Russian texts
	l.texts[LanguageRussian] = map[string]string{
		KeyAppTitle:           "tubefx",
		KeyStatus:             "Статус:",
		KeyEnterURL:           "Введите ссылку YouTube (https://www.youtube.com/watch?v=...)",
		KeyProcess:            "Загрузить",
		KeyDownload:           "Скачать",
		KeyResolution:         "Разрешение",
		KeyBitrate:            "Битрейт",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyAbout:              "О программе",
		KeyAboutText:          "tubefx скачивает видео- и аудиопотоки YouTube и объединяет их с помощью ffmpeg без перекодирования.",
		KeyOutputDirectory:    "Папка сохранения",
		KeyFFmpegPath:         "Путь к ffmpeg",
		KeyRevealOnComplete:   "Показать файл после экспорта",
		KeyCheckFFmpeg:        "Проверить",
		KeyFFmpegFound:        "Найден: %s",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyBrowse:             "Обзор",
		KeySettingsSaved:      "Настройки сохранены!",
		KeyWaitingForInput:    "Ожидание ввода...",
		KeyNoInput:            "Ссылка не указана.",
		KeyLoadingVideo:       "Загрузка видео...",
		KeyInputInvalid:       "Неверный ввод: %s",
		KeyNetworkError:       "Не удалось загрузить видео, проверьте подключение.",
		KeyThumbnailFailed:    "Не удалось загрузить превью, но видео должно быть в порядке.",
		KeyVideoLoaded:        "Видео загружено. Выберите разрешение и битрейт.",
		KeyNothingSelected:    "Ничего не выбрано для скачивания.",
		KeyDownloadNotStarted: "Не удалось начать скачивание: %s",
		KeyDownloading:        "Скачивание %.1f%% [%s]",
		KeyDownloadCompleted:  "Скачивание завершено.",
		KeyDownloadFailed:     "Ошибка скачивания: %s",
		KeyExportCancelled:    "Экспорт отменён.",
		KeyExporting:          "Экспорт...",
		KeyFFmpegNotFound:     "ffmpeg не найден. Установите его или укажите путь в настройках.",
		KeyExportFailed:       "Ошибка экспорта: %s",
		KeyExportFinished:     "Экспорт завершён: %s",
	}

	// Portuguese texts
	l.texts[LanguagePortuguese] = map[string]string{
		KeyAppTitle:           "tubefx",
		KeyStatus:             "Estado:",
		KeyEnterURL:           "Digite a URL do YouTube (https://www.youtube.com/watch?v=...)",
		KeyProcess:            "Processar",
		KeyDownload:           "Baixar",
		KeyResolution:         "Resolução",
		KeyBitrate:            "Taxa de bits",
		KeySettings:           "Configurações",
		KeyFile:               "Arquivo",
		KeyLanguage:           "Idioma",
		KeyAbout:              "Sobre",
		KeyAboutText:          "O tubefx baixa as faixas de vídeo e áudio de um vídeo do YouTube e as junta com o ffmpeg sem recodificar.",
		KeyOutputDirectory:    "Pasta de Saída",
		KeyFFmpegPath:         "Caminho do ffmpeg",
		KeyRevealOnComplete:   "Mostrar arquivo após exportar",
		KeyCheckFFmpeg:        "Verificar",
		KeyFFmpegFound:        "Encontrado: %s",
		KeySave:               "Salvar",
		KeyCancel:             "Cancelar",
		KeyBrowse:             "Procurar",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeyWaitingForInput:    "Aguardando entrada...",
		KeyNoInput:            "Nenhuma entrada fornecida.",
		KeyLoadingVideo:       "Carregando vídeo...",
		KeyInputInvalid:       "Entrada inválida: %s",
		KeyNetworkError:       "Não foi possível carregar o vídeo, verifique sua conexão.",
		KeyThumbnailFailed:    "A miniatura não pôde ser carregada, mas o vídeo deve estar ok.",
		KeyVideoLoaded:        "Vídeo carregado. Escolha uma resolução e uma taxa de bits.",
		KeyNothingSelected:    "Nada selecionado para baixar.",
		KeyDownloadNotStarted: "Não foi possível iniciar o download: %s",
		KeyDownloading:        "Baixando %.1f%% [%s]",
		KeyDownloadCompleted:  "Download concluído.",
		KeyDownloadFailed:     "Falha no download: %s",
		KeyExportCancelled:    "Exportação cancelada.",
		KeyExporting:          "Exportando...",
		KeyFFmpegNotFound:     "ffmpeg não foi encontrado. Instale-o ou defina o caminho nas Configurações.",
		KeyExportFailed:       "Falha na exportação: %s",
		KeyExportFinished:     "Exportação concluída: %s",
	}
}
