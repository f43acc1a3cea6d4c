// Package i18n renders user facing status messages in the configured language.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	defaultLang = language.English
	langTags    = []language.Tag{
		language.English,
		language.AmericanEnglish,
		language.SimplifiedChinese,
		language.Chinese,
	}
	supported = language.NewMatcher(langTags)
	printers  map[language.Tag]*message.Printer
)

func init() {
	printers = make(map[language.Tag]*message.Printer, len(langTags))
	for _, tag := range langTags {
		switch tag {
		case language.SimplifiedChinese, language.Chinese:
			for key, text := range zhHans {
				_ = message.SetString(tag, key, text)
			}
		default:
			for key := range zhHans {
				_ = message.SetString(tag, key, key)
			}
		}
		printers[tag] = message.NewPrinter(tag)
	}
}

// Printer returns the printer matching lang ("en", "zh", "zh-CN", an Accept-Language value, ...).
// Unknown or empty languages fall back to English.
func Printer(lang string) *message.Printer {
	if lang == "" {
		return printers[defaultLang]
	}
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return printers[defaultLang]
	}
	_, idx, conf := supported.Match(tags...)
	if conf == language.No {
		return printers[defaultLang]
	}
	return printers[langTags[idx]]
}

// Sprintf formats key in lang.
func Sprintf(lang string, key string, a ...interface{}) string {
	return Printer(lang).Sprintf(key, a...)
}
