package bot

import (
	"embed"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-contactbook/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// Translator renders localized replies from the embedded message catalog.
type Translator struct {
	localizer *i18n.Localizer
	languages []string
	lang      string
}

// NewTranslator loads every embedded locale and selects lang. Unknown or
// malformed tags fall back to config.DefaultLanguage.
func NewTranslator(lang string) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	langs := loadLocales(bundle)

	tag, err := language.Parse(lang)
	if err != nil || !slices.Contains(langs, tag.String()) {
		slog.Warn(config.ErrLangUnknown,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
		)
		tag = language.Make(config.DefaultLanguage)
	}

	return &Translator{
		localizer: i18n.NewLocalizer(bundle, tag.String()),
		languages: langs,
		lang:      tag.String(),
	}
}

func loadLocales(bundle *i18n.Bundle) []string {
	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return nil
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		code := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		if code == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		detected = append(detected, code)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, code,
		)
	}
	return detected
}

// Language returns the selected language tag.
func (t *Translator) Language() string {
	return t.lang
}

// Languages lists the locales found in the catalog.
func (t *Translator) Languages() []string {
	return slices.Clone(t.languages)
}

// Msg translates key. A missing key is returned as is.
func (t *Translator) Msg(key string, data map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// Count translates a message with plural forms selected by n.
// n is exposed to the template as Count.
func (t *Translator) Count(key string, n int, data map[string]any) string {
	if data == nil {
		data = map[string]any{}
	}
	data["Count"] = n
	return t.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data, PluralCount: n})
}

func (t *Translator) localize(lc *i18n.LocalizeConfig) string {
	if t == nil || t.localizer == nil {
		return lc.MessageID
	}
	msg, err := t.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}

// SummaryFormatter returns localized calendar event titles. age 0 is the
// year of birth.
func (t *Translator) SummaryFormatter() func(name string, age int) string {
	return func(name string, age int) string {
		if age == 0 {
			return t.Msg(config.TKeyEvtSummaryBirth, map[string]any{"Name": name})
		}
		return t.Msg(config.TKeyEvtSummaryAge, map[string]any{"Name": name, "Age": age})
	}
}
