package validator

import (
	"errors"
	"fmt"
	"reflect"

	enlocale "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	v "github.com/go-playground/validator/v10"
	entranslation "github.com/go-playground/validator/v10/translations/en"

	"github.com/lambdaquery/lq/internal/log"
)

const tagLabel = "label"

var (
	logger     = log.Named("validator")
	translator ut.Translator
	validator  *v.Validate
)

func init() {
	localeTranslator := enlocale.New()
	universalTranslator := ut.New(localeTranslator, localeTranslator)

	translator, _ = universalTranslator.GetTranslator("en")
	validator = v.New(v.WithRequiredStructEnabled())

	if err := entranslation.RegisterDefaultTranslations(validator, translator); err != nil {
		panic(fmt.Errorf("failed to register default translations: %w", err))
	}

	validator.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get(tagLabel); label != "" {
			return label
		}

		return field.Name
	})

	setup()
}

// RegisterValidationRules registers one or more custom validation rules.
func RegisterValidationRules(rules ...ValidationRule) error {
	for _, rule := range rules {
		if err := rule.register(validator); err != nil {
			return err
		}
	}

	return nil
}

// CustomTypeFunc extracts the comparable value from a wrapper type for validation purposes.
type CustomTypeFunc = func(field reflect.Value) any

// RegisterTypeFunc registers a custom type function for one or more types.
func RegisterTypeFunc(fn CustomTypeFunc, types ...any) {
	validator.RegisterCustomTypeFunc(fn, types...)
}

// RegisterNullValueTypeFunc registers the generic null.Value[T] wrapper so validator rules
// see the underlying T instead of the wrapper struct.
func RegisterNullValueTypeFunc[T any](zero ...func() any) {
	validator.RegisterCustomTypeFunc(
		func(field reflect.Value) any {
			valid := field.FieldByName("Valid")
			if !valid.IsValid() || !valid.Bool() {
				return nil
			}

			v := field.FieldByName("V")
			if !v.IsValid() {
				return nil
			}

			return v.Interface()
		},
		zeroOf[T](),
	)
}

func zeroOf[T any]() any {
	var zero T
	return zero
}

// Validate runs struct-tag validation and returns the first failing rule's translated message.
func Validate(value any) error {
	err := validator.Struct(value)
	if err == nil {
		return nil
	}

	var validationErrors v.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	return errors.New(validationErrors[0].Translate(translator))
}
