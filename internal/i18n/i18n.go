// Package i18n provides the Thai and English UI strings and picks the
// language for a request.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/mamadbah2/herd/internal/domain/models"
)

// Lang is a supported UI language.
type Lang string

const (
	Thai    Lang = "th"
	English Lang = "en"
)

var tags = map[Lang]language.Tag{
	Thai:    language.Thai,
	English: language.English,
}

// Translator matches Accept-Language headers and renders catalog strings.
type Translator struct {
	fallback Lang
	order    []Lang
	matcher  language.Matcher
	cat      *catalog.Builder
}

// New builds a Translator that falls back to def for unknown languages.
func New(def Lang) (*Translator, error) {
	if _, ok := tags[def]; !ok {
		return nil, fmt.Errorf("unsupported language %q", def)
	}

	// The matcher treats the first tag as the default.
	order := []Lang{def}
	for _, lang := range []Lang{Thai, English} {
		if lang != def {
			order = append(order, lang)
		}
	}
	supported := make([]language.Tag, len(order))
	for i, lang := range order {
		supported[i] = tags[lang]
	}

	cat := catalog.NewBuilder(catalog.Fallback(tags[def]))
	for lang, entries := range messages {
		for key, msg := range entries {
			if err := cat.SetString(tags[lang], key, msg); err != nil {
				return nil, fmt.Errorf("catalog entry %s/%s: %w", lang, key, err)
			}
		}
	}

	return &Translator{fallback: def, order: order, matcher: language.NewMatcher(supported), cat: cat}, nil
}

// Default returns the fallback language.
func (t *Translator) Default() Lang { return t.fallback }

// Match picks the best supported language for an Accept-Language header.
func (t *Translator) Match(acceptLanguage string) Lang {
	if acceptLanguage == "" {
		return t.fallback
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return t.fallback
	}

	_, idx, conf := t.matcher.Match(prefs...)
	if conf == language.No || idx < 0 || idx >= len(t.order) {
		return t.fallback
	}
	return t.order[idx]
}

// Parse maps a language code such as "en" or "th-TH" onto a supported Lang.
func (t *Translator) Parse(code string) (Lang, bool) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for _, lang := range t.order {
		if b, _ := tags[lang].Base(); b == base {
			return lang, true
		}
	}
	return "", false
}

// Printer returns a message printer for lang.
func (t *Translator) Printer(lang Lang) *message.Printer {
	tag, ok := tags[lang]
	if !ok {
		tag = tags[t.fallback]
	}
	return message.NewPrinter(tag, message.Catalog(t.cat))
}

// T renders the catalog entry key in lang.
func (t *Translator) T(lang Lang, key string, args ...any) string {
	return t.Printer(lang).Sprintf(key, args...)
}

// Status renders a health status label.
func (t *Translator) Status(lang Lang, s models.Status) string {
	return t.T(lang, "status."+string(s))
}

// Gender renders a gender label.
func (t *Translator) Gender(lang Lang, g models.Gender) string {
	return t.T(lang, "gender."+string(g))
}

// EventType renders a calendar event type label, "other" for unknown types.
func (t *Translator) EventType(lang Lang, et models.EventType) string {
	switch et {
	case models.EventFeeding, models.EventHealth, models.EventBreeding:
		return t.T(lang, "event."+string(et))
	default:
		return t.T(lang, "event.other")
	}
}

// NotificationType renders a notification type label.
func (t *Translator) NotificationType(lang Lang, nt models.NotificationType) string {
	return t.T(lang, "notification."+string(nt))
}

var eventColors = map[models.EventType]string{
	models.EventFeeding:  "#3788d8",
	models.EventHealth:   "#dc3545",
	models.EventBreeding: "#fd7e14",
}

// EventColor is the calendar colour of an event type.
func EventColor(et models.EventType) string {
	if c, ok := eventColors[et]; ok {
		return c
	}
	return "#6c757d"
}
