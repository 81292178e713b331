// Package i18n holds the interface labels in English and Serbian and picks
// one for a request.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var (
	English = language.English
	Serbian = language.Serbian

	supported = []language.Tag{English, Serbian}
	matcher   = language.NewMatcher(supported)
	labels    = buildCatalog()
)

// Supported lists the accepted language codes.
func Supported() []string {
	codes := make([]string, len(supported))
	for i, t := range supported {
		codes[i] = t.String()
	}
	return codes
}

func IsSupported(code string) bool {
	for _, c := range Supported() {
		if c == code {
			return true
		}
	}
	return false
}

// Match picks the best supported language from candidates, in priority
// order. Each candidate may be a bare code ("sr") or a full Accept-Language
// header. fallback is used when nothing matches.
func Match(fallback language.Tag, candidates ...string) language.Tag {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(c)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := matcher.Match(tags...)
		if conf != language.No {
			return supported[idx]
		}
	}
	return fallback
}

// Parse returns the supported tag for code or English.
func Parse(code string) language.Tag {
	return Match(English, code)
}

// Translator renders label keys in one language. Unknown keys come back
// unchanged.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

func New(tag language.Tag) Translator {
	return Translator{tag: tag, printer: message.NewPrinter(tag, message.Catalog(labels))}
}

func (t Translator) T(key string) string { return t.printer.Sprintf(key) }

// Lang is the short code used in links and cookies.
func (t Translator) Lang() string { return t.tag.String() }

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(English))
	for key, pair := range messages {
		_ = b.SetString(English, key, pair[0])
		_ = b.SetString(Serbian, key, pair[1])
	}
	return b
}
