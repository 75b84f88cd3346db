package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"goalsapp/internal/core/domain"
	"goalsapp/internal/core/port"
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

	Validator.RegisterTranslation("max", Translator, func(ut ut.Translator) error {
		return ut.Add("max", "{0} must be at most {1} characters long", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("max", getFieldName(fe.Field()), fe.Param())
		return t
	})
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Name":        "name",
		"Title":       "title",
		"Description": "description",
	}

	if name, exists := fieldNames[field]; exists {
		return name
	}

	return strings.ToLower(field)
}

type StructValidator struct{}

func NewValidator() port.Validator {
	return &StructValidator{}
}

// ValidateStruct returns a *domain.ValidationError carrying every failed rule.
func (v *StructValidator) ValidateStruct(s interface{}) error {
	err := Validator.Struct(s)
	if err == nil {
		return nil
	}

	details := FormatValidationErrors(err)
	if len(details) == 0 {
		return err
	}

	return &domain.ValidationError{
		Field:   details[0].Field,
		Message: details[0].Message,
		Details: details,
	}
}

func FormatValidationErrors(err error) []domain.FieldError {
	var fieldErrors []domain.FieldError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			fieldErrors = append(fieldErrors, domain.FieldError{
				Field:   getFieldName(fieldError.Field()),
				Message: fieldError.Translate(Translator),
			})
		}
	}

	return fieldErrors
}
