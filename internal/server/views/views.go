package views

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/validation"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every embedded page.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"json": toJSON,
	}).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

func toJSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// Flash is a one-shot message shown after a redirect.
type Flash struct {
	Level   string
	Message string
}

// Page is the root value of every template. Data holds the page specific values.
type Page struct {
	Title string
	Lang  i18n.Lang
	Path  string
	Flash *Flash
	Data  any

	tr  *i18n.Translator
	loc *time.Location
}

// NewPage builds the template root for one response.
func NewPage(tr *i18n.Translator, lang i18n.Lang, loc *time.Location, titleKey string, data any) *Page {
	if loc == nil {
		loc = time.UTC
	}
	p := &Page{Lang: lang, Data: data, tr: tr, loc: loc}
	p.Title = p.Tr(titleKey)
	return p
}

// Tr translates key with optional format arguments.
func (p *Page) Tr(key string, args ...any) string {
	return p.tr.T(p.Lang, key, args...)
}

func (p *Page) StatusLabel(s models.Status) string { return p.tr.Status(p.Lang, s) }

func (p *Page) GenderLabel(g models.Gender) string { return p.tr.Gender(p.Lang, g) }

func (p *Page) EventLabel(et models.EventType) string { return p.tr.EventType(p.Lang, et) }

// Errors renders the messages recorded for field.
func (p *Page) Errors(errs validation.Errors, field string) []string {
	if errs == nil {
		return nil
	}
	return p.tr.FieldErrors(p.Lang, errs, field)
}

func (p *Page) Statuses() []models.Status { return models.Statuses }

func (p *Page) Genders() []models.Gender { return models.Genders }

func (p *Page) EventTypes() []models.EventType { return models.EventTypes }

// DateTime formats t for display in the farm time zone.
func (p *Page) DateTime(t time.Time) string {
	return t.In(p.loc).Format("2006-01-02 15:04")
}

// Float renders an optional decimal, "-" when absent.
func (p *Page) Float(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *f)
}

// Int renders an optional integer, "-" when absent.
func (p *Page) Int(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}

// FieldSet is the value handed to shared form partials.
type FieldSet struct {
	Page   *Page
	Prefix string
	Form   any
	Errors validation.Errors
}

// Fields bundles a form and its errors for a partial template.
func (p *Page) Fields(form any, errs validation.Errors) FieldSet {
	return FieldSet{Page: p, Form: form, Errors: errs}
}

// Prefixed is Fields for a sub-form whose inputs are named "<prefix>-<field>".
func (p *Page) Prefixed(prefix string, form any, errs validation.Errors) FieldSet {
	return FieldSet{Page: p, Prefix: prefix + "-", Form: form, Errors: errs}
}
