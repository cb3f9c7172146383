package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	_ = validate.RegisterTranslation("required", trans, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is a required field", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", fe.Field())
		return t
	})

	_ = validate.RegisterTranslation("oneof", trans, func(ut ut.Translator) error {
		return ut.Add("oneof", "{0} must be one of [{1}]", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("oneof", fe.Field(), fe.Param())
		return t
	})
}

// Struct validates s using its `validate` tags and returns a single human readable
// error for all failing fields.
func Struct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return TranslateValidatorError(err, trans)
	}
	return nil
}

// TranslateValidatorError takes an error from the go-playground validator (internally just a map of errors) and converts it
// into a string which can then be used to create a new error. Validator errors are not in a user friendly format.
func TranslateValidatorError(err error, trans ut.Translator) error {
	switch err.(type) {
	case validator.ValidationErrors:
		errs := (err.(validator.ValidationErrors)).Translate(trans)

		vals := make([]string, 0, len(errs))

		for _, value := range errs {
			vals = append(vals, value)
		}

		return errors.New(strings.Join(vals, " "))
	default:
		return err
	}
}
