package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	TagDigits          = "digits"
	TagAdmissionDate   = "admission_date"
	TagAdmissionWindow = "admission_window"
	TagUnique          = "unique"
)

// Layouts accepted for admission dates.
var admissionDateLayouts = []string{"2006-01-02", time.RFC3339}

// FieldError is a single violated rule, reported under the field's JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// FieldErrors lists violations in field declaration order, one per violated rule.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Has(field, tag string) bool {
	for _, e := range fe {
		if e.Field == field && (tag == "" || e.Tag == tag) {
			return true
		}
	}
	return false
}

type Option func(*CustomValidator)

// WithFieldLabels sets the human readable label used in messages per JSON field name.
func WithFieldLabels(labels map[string]string) Option {
	return func(cv *CustomValidator) {
		for k, v := range labels {
			cv.labels[k] = v
		}
	}
}

// WithStrictAdmissionDate rejects admission dates in the future or before 1900-01-01.
func WithStrictAdmissionDate(strict bool) Option {
	return func(cv *CustomValidator) {
		cv.strictDates = strict
	}
}

func WithClock(now func() time.Time) Option {
	return func(cv *CustomValidator) {
		cv.now = now
	}
}

type CustomValidator struct {
	validator   *validator.Validate
	labels      map[string]string
	strictDates bool
	now         func() time.Time
}

func NewValidator(opts ...Option) *CustomValidator {
	cv := &CustomValidator{
		validator: validator.New(validator.WithRequiredStructEnabled()),
		labels:    make(map[string]string),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(cv)
	}

	cv.validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = cv.validator.RegisterValidation(TagDigits, validateDigits)
	_ = cv.validator.RegisterValidation(TagAdmissionDate, validateAdmissionDate)
	_ = cv.validator.RegisterValidation(TagAdmissionWindow, cv.validateAdmissionWindow)

	return cv
}

// Validate checks i against its validate tags. Rule violations come back as
// FieldErrors, one per violated rule in field declaration order; anything else
// (e.g. a nil argument) is returned unchanged.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	return cv.fieldErrors(reflect.TypeOf(i), validationErrors)
}

// fieldErrors converts validationErrors. validator/v10 stops at the first
// failing tag of a field, so the tags after it are checked here as well.
// A failed required ends the field.
func (cv *CustomValidator) fieldErrors(structType reflect.Type, validationErrors validator.ValidationErrors) FieldErrors {
	for structType != nil && structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}

	result := make(FieldErrors, 0, len(validationErrors))
	for _, e := range validationErrors {
		result = append(result, FieldError{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Message: cv.message(e.Field(), e.Tag(), e.Param()),
		})

		if e.Tag() == "required" {
			continue
		}
		for _, tag := range remainingTags(structType, e) {
			var extra validator.ValidationErrors
			if !errors.As(cv.validator.Var(e.Value(), tag), &extra) {
				continue
			}
			for _, x := range extra {
				result = append(result, FieldError{
					Field:   e.Field(),
					Tag:     x.Tag(),
					Message: cv.message(e.Field(), x.Tag(), x.Param()),
				})
			}
		}
	}
	return result
}

// remainingTags returns the validate tags declared after the one that failed.
func remainingTags(structType reflect.Type, e validator.FieldError) []string {
	if structType == nil || structType.Kind() != reflect.Struct {
		return nil
	}
	field, ok := structType.FieldByName(e.StructField())
	if !ok {
		return nil
	}

	tags := strings.Split(field.Tag.Get("validate"), ",")
	for i, tag := range tags {
		name := strings.SplitN(tag, "=", 2)[0]
		if name == e.Tag() {
			return tags[i+1:]
		}
	}
	return nil
}

func (cv *CustomValidator) Label(field string) string {
	if label, ok := cv.labels[field]; ok {
		return label
	}
	return field
}

func (cv *CustomValidator) message(field, tag, param string) string {
	label := cv.Label(field)

	switch tag {
	case "required":
		return label + " harus diisi"
	case "min":
		if param == "1" {
			return label + " harus diisi"
		}
		return fmt.Sprintf("%s minimal %s karakter", label, param)
	case "max":
		return fmt.Sprintf("%s maksimal %s karakter", label, param)
	case "len":
		return fmt.Sprintf("%s harus terdiri dari %s digit", label, param)
	case TagDigits:
		return label + " hanya boleh berisi angka"
	case TagAdmissionWindow:
		return label + " harus antara 1900-01-01 dan hari ini"
	case TagUnique:
		return label + " sudah terdaftar"
	default:
		return label + " tidak valid"
	}
}

// UniqueViolation builds the error reported when a unique field already exists.
func (cv *CustomValidator) UniqueViolation(field string) FieldErrors {
	return FieldErrors{{
		Field:   field,
		Tag:     TagUnique,
		Message: cv.message(field, TagUnique, ""),
	}}
}

// ParseAdmissionDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseAdmissionDate(s string) (time.Time, error) {
	return parseAdmissionDateIn(s, time.UTC)
}

// parseAdmissionDateIn reads a bare calendar date as midnight in loc.
func parseAdmissionDateIn(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range admissionDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid admission date %q", s)
}

func validateDigits(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func validateAdmissionDate(fl validator.FieldLevel) bool {
	_, err := ParseAdmissionDate(fl.Field().String())
	return err == nil
}

func (cv *CustomValidator) validateAdmissionWindow(fl validator.FieldLevel) bool {
	if !cv.strictDates {
		return true
	}

	now := cv.now()
	loc := now.Location()

	t, err := parseAdmissionDateIn(fl.Field().String(), loc)
	if err != nil {
		// reported by admission_date
		return true
	}

	y, m, d := now.Date()
	earliest := time.Date(1900, time.January, 1, 0, 0, 0, 0, loc)
	tomorrow := time.Date(y, m, d+1, 0, 0, 0, 0, loc)

	return !t.Before(earliest) && t.Before(tomorrow)
}
