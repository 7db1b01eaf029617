// Package validation holds the shared validator and the field error type used
// by services and handlers.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mamadbah2/herd/internal/domain/models"
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

// Errors maps field names to the rules they failed.
type Errors map[string][]FieldError

// Add records a failed rule for field.
func (e Errors) Add(field, tag, param string) {
	e[field] = append(e[field], FieldError{Tag: tag, Param: param})
}

// Merge copies other into e, prefixing every field with prefix + "-" when
// prefix is not empty.
func (e Errors) Merge(prefix string, other Errors) {
	for field, errs := range other {
		key := field
		if prefix != "" {
			key = prefix + "-" + field
		}
		e[key] = append(e[key], errs...)
	}
}

// Has reports whether field failed any rule.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Fields returns the failing field names in order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Err returns e as an error, or nil when it is empty.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, field := range e.Fields() {
		tags := make([]string, 0, len(e[field]))
		for _, fe := range e[field] {
			tags = append(tags, fe.Tag)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(tags, ",")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// As extracts Errors from err.
func As(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the process-wide validator with the domain rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = newValidator()
	})
	return instance
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	// Zero dates and times validate as absent so that "required" applies.
	// Set values come back as strings: validator re-applies custom type funcs
	// to their result, so returning a registered type would never terminate.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(models.Date); ok && !d.IsZero() {
			return d.String()
		}
		return nil
	}, models.Date{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if t, ok := field.Interface().(time.Time); ok && !t.IsZero() {
			return t.Format(time.RFC3339Nano)
		}
		return nil
	}, time.Time{})

	v.RegisterStructValidation(vaccinationRules, models.Vaccination{})
	v.RegisterStructValidation(calendarEventRules, models.CalendarEvent{})

	return v
}

func vaccinationRules(sl validator.StructLevel) {
	vax := sl.Current().Interface().(models.Vaccination)
	if vax.NextDueDate == nil || vax.NextDueDate.IsZero() || vax.VaccineDate.IsZero() {
		return
	}
	if vax.NextDueDate.Before(vax.VaccineDate) {
		sl.ReportError(vax.NextDueDate, "next_due_date", "NextDueDate", "gtefield", "vaccine_date")
	}
}

func calendarEventRules(sl validator.StructLevel) {
	ev := sl.Current().Interface().(models.CalendarEvent)
	if ev.End == nil || ev.Start.IsZero() {
		return
	}
	if ev.End.Before(ev.Start) {
		sl.ReportError(ev.End, "end", "End", "gtefield", "start")
	}
}

// Struct validates s and returns Errors, or nil when s is valid.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := Errors{}
	for _, fe := range verrs {
		out.Add(fe.Field(), fe.Tag(), fe.Param())
	}
	return out
}
