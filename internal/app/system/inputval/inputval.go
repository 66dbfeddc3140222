// Package inputval validates form input structs with go-playground/validator
// and turns failures into user-facing sentences.
//
// Fields are named in messages by their `label` tag:
//
//	type loginInput struct {
//		Username string `validate:"required,max=100" label:"Username"`
//	}
//
//	if res := inputval.Validate(in); res.HasErrors() {
//		data.SetError(res.First())
//	}
package inputval

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// custom tags
const (
	tagHTTPURL  = "httpurl"
	tagISODate  = "isodate"
	tagHHMM     = "hhmm"
	tagNotBlank = "notblank"
)

var (
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
)

func instance() (*validator.Validate, ut.Translator) {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		_en := en.New()
		uni := ut.New(_en, _en)
		translator, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(validate, translator)

		// Name fields by their label so default translations read naturally.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if l := fld.Tag.Get("label"); l != "" {
				return l
			}
			return fld.Name
		})

		_ = validate.RegisterValidation(tagHTTPURL, func(fl validator.FieldLevel) bool {
			return IsValidHTTPURL(fl.Field().String())
		})
		_ = validate.RegisterValidation(tagISODate, func(fl validator.FieldLevel) bool {
			return IsValidDate(fl.Field().String())
		})
		_ = validate.RegisterValidation(tagHHMM, func(fl validator.FieldLevel) bool {
			return IsValidHHMM(fl.Field().String())
		})
		_ = validate.RegisterValidation(tagNotBlank, func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate, translator
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Result collects every failed rule in field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return r != nil && len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Messages returns the messages as a slice.
func (r *Result) Messages() []string {
	if !r.HasErrors() {
		return nil
	}
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Message
	}
	return out
}

// Validate runs the struct's `validate` tags. It never returns nil.
func Validate(s any) *Result {
	v, trans := instance()
	res := &Result{}

	err := v.Struct(s)
	if err == nil {
		return res
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.StructField(),
			Tag:     fe.Tag(),
			Message: message(fe, trans),
		})
	}
	return res
}

func message(fe validator.FieldError, trans ut.Translator) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required", tagNotBlank:
		return label + " is required."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case tagHTTPURL:
		return label + " must be an http or https URL."
	case tagISODate:
		return label + " must be a date (YYYY-MM-DD)."
	case tagHHMM:
		return label + " must be a duration in HH:MM."
	case "uuid", "uuid4":
		return label + " is invalid."
	}
	if trans != nil {
		return fe.Translate(trans)
	}
	return label + " is invalid."
}
