package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	standingTag   = "standing"
	standingText  = "must be a year level of the form \"Year N\""
	standingRegex = regexp.MustCompile(`^Year [1-9][0-9]*$`)

	termTag   = "term"
	termText  = "must be one of \"1\", \"2\", \"Midyear\" or \"None\""
	termRegex = regexp.MustCompile(`^(1|2|Midyear|None)$`)

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

func init() {
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	Validate = validator.New()
	InitValidators(Validate, Translator)
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(standingTag, standingValidation)
	RegisterCustomTranslation(validate, translator, standingTag, standingText)

	_ = validate.RegisterValidation(termTag, termValidation)
	RegisterCustomTranslation(validate, translator, termTag, termText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// IsValidStanding reports whether s is a year level of the form "Year N".
func IsValidStanding(s string) bool {
	return standingRegex.MatchString(s)
}

// Custom Global Validators

// standingValidation allows year levels of the form "Year N".
func standingValidation(fl validator.FieldLevel) bool {
	return standingRegex.MatchString(fl.Field().String())
}

// termValidation allows the semester values a checklist may prescribe.
func termValidation(fl validator.FieldLevel) bool {
	return termRegex.MatchString(fl.Field().String())
}
