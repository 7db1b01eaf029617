// Package forms binds posted HTML forms onto raw string structs, detects
// which optional sub-forms were filled in and parses them into models.
// Parse errors are reported as validation.Errors so pages render them the
// same way as model validation failures.
package forms

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/validation"
)

// Input layouts accepted for datetime-local fields.
var dateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// DateTimeLocalLayout is the value format of <input type="datetime-local">.
const DateTimeLocalLayout = "2006-01-02T15:04"

// Bind maps the values named "<prefix>-<field>" onto dst's form tags. An
// empty prefix binds the values as they are.
func Bind(values url.Values, prefix string, dst any) error {
	form := map[string][]string(values)
	if prefix != "" {
		form = make(map[string][]string)
		p := prefix + "-"
		for key, vals := range values {
			if strings.HasPrefix(key, p) {
				form[strings.TrimPrefix(key, p)] = vals
			}
		}
	}
	return binding.MapFormWithTag(dst, form, "form")
}

func filled(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// parser accumulates field parse errors.
type parser struct {
	errs validation.Errors
	loc  *time.Location
}

func newParser(loc *time.Location) *parser {
	if loc == nil {
		loc = time.UTC
	}
	return &parser{errs: validation.Errors{}, loc: loc}
}

func (p *parser) date(field, raw string) *models.Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		p.errs.Add(field, "date", "")
		return nil
	}
	return &d
}

func (p *parser) requiredDate(field, raw string) models.Date {
	if d := p.date(field, raw); d != nil {
		return *d
	}
	return models.Date{}
}

func (p *parser) dateTime(field, raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, p.loc); err == nil {
			return &t
		}
	}
	p.errs.Add(field, "datetime", "")
	return nil
}

func (p *parser) float(field, raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.errs.Add(field, "number", "")
		return nil
	}
	return &f
}

func (p *parser) integer(field, raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.errs.Add(field, "integer", "")
		return nil
	}
	return &n
}

func (p *parser) id(field, raw string) uint {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		p.errs.Add(field, "exists", "")
		return 0
	}
	return uint(n)
}

func formatDate(d *models.Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.String()
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// FormatDateTimeLocal renders t for a datetime-local input in loc.
func FormatDateTimeLocal(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateTimeLocalLayout)
}
