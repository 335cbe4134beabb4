package locale

import (
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

const (
	DefaultLang       = "en"
	DefaultLocalePath = "locales/"
)

var localeFileRegex = regexp.MustCompile(`^active\.(?P<lang>.*)\.toml$`)

// Localizer resolves report strings in one configured language, falling back to the
// compiled-in English defaults.
type Localizer struct {
	bundle    *i18n.Bundle
	lang      string
	languages map[string]string
	logger    *log.Logger
}

// English returns a Localizer that only knows the compiled defaults.
func English() *Localizer {
	return &Localizer{
		bundle:    i18n.NewBundle(language.English),
		lang:      DefaultLang,
		languages: map[string]string{DefaultLang: language.English.String()},
		logger:    log.New(os.Stderr),
	}
}

func LoadTranslations(logger *log.Logger, localePath, lang string) *Localizer {
	if localePath == "" {
		localePath = DefaultLocalePath
	}
	if lang == "" {
		lang = DefaultLang
	}
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	languages := make(map[string]string)
	languages[lang] = language.Make(lang).String()

	files, err := os.ReadDir(localePath)
	if err == nil {
		for _, file := range files {
			match := localeFileRegex.FindStringSubmatch(file.Name())
			if match == nil {
				continue
			}
			fileLang := match[localeFileRegex.SubexpIndex("lang")]

			if _, err := bundle.LoadMessageFile(path.Join(localePath, file.Name())); err != nil {
				logger.Warn("could not load locale file", "file", file.Name(), "err", err)
				continue
			}
			langName, _ := i18n.NewLocalizer(bundle, fileLang).Localize(&i18n.LocalizeConfig{
				DefaultMessage: &i18n.Message{
					ID:    "locale.language.name",
					Other: "English",
				},
			})
			languages[fileLang] = langName
			logger.Info("loaded language", "lang", fileLang, "name", langName)
		}
	}

	return &Localizer{
		bundle:    bundle,
		lang:      lang,
		languages: languages,
		logger:    logger,
	}
}

func (l *Localizer) Languages() map[string]string {
	return l.languages
}

func (l *Localizer) Lang() string {
	return l.lang
}

// Localize renders message in the configured language. Missing translations fall back
// to message.Other without failing.
func (l *Localizer) Localize(message *i18n.Message, templateData map[string]interface{}) string {
	msg, err := i18n.NewLocalizer(l.bundle, l.lang).Localize(&i18n.LocalizeConfig{
		DefaultMessage: message,
		TemplateData:   templateData,
	})
	if err != nil {
		l.logger.Debug("localize", "id", message.ID, "lang", l.lang, "err", err)
	}
	// go-i18n extract escapes newlines
	return strings.ReplaceAll(msg, "\\n", "\n")
}
