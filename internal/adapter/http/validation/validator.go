package validation

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	addCustomTranslations()
}

func addCustomTranslations() {
	Validator.RegisterTranslation("required", Translator, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is required", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", getFieldName(fe.Field()))
		return t
	})
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Text": "Todo text",
	}

	if name, exists := fieldNames[field]; exists {
		return name
	}

	return field
}

// FirstMessage returns the translated message of the first failed rule, or ""
// when err does not come from the validator.
func FirstMessage(err error) string {
	var validationErrors validator.ValidationErrors

	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return validationErrors[0].Translate(Translator)
	}

	return ""
}
