package validator

import (
	"regexp"

	v "github.com/go-playground/validator/v10"
)

// Regex patterns for alphanum variations.
var (
	// alphanumUsRegex validates strings containing only alphanumeric characters and underscores.
	alphanumUsRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	// alphanumUsSlashRegex validates strings containing alphanumeric characters, underscores, and slashes.
	alphanumUsSlashRegex = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`)
	// alphanumUsDotRegex validates strings containing alphanumeric characters, underscores, and dots.
	alphanumUsDotRegex = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)
)

// newAlphanumUsRule creates a validation rule for alphanumeric characters with underscores.
func newAlphanumUsRule() ValidationRule {
	return ValidationRule{
		RuleTag:                  "alphanum_us",
		ErrMessageTemplate:       "{0} may only contain letters, numbers, and underscores",
		CallValidationEvenIfNull: false,
		Validate: func(fl v.FieldLevel) bool {
			return alphanumUsRegex.MatchString(fl.Field().String())
		},
		ParseParam: func(fe v.FieldError) []string {
			return []string{fe.Field()}
		},
	}
}

// newAlphanumUsSlashRule creates a validation rule for alphanumeric characters with underscores and slashes.
func newAlphanumUsSlashRule() ValidationRule {
	return ValidationRule{
		RuleTag:                  "alphanum_us_slash",
		ErrMessageTemplate:       "{0} may only contain letters, numbers, underscores, and slashes",
		CallValidationEvenIfNull: false,
		Validate: func(fl v.FieldLevel) bool {
			return alphanumUsSlashRegex.MatchString(fl.Field().String())
		},
		ParseParam: func(fe v.FieldError) []string {
			return []string{fe.Field()}
		},
	}
}

// newAlphanumUsDotRule creates a validation rule for alphanumeric characters with underscores and dots.
func newAlphanumUsDotRule() ValidationRule {
	return ValidationRule{
		RuleTag:                  "alphanum_us_dot",
		ErrMessageTemplate:       "{0} may only contain letters, numbers, underscores, and dots",
		CallValidationEvenIfNull: false,
		Validate: func(fl v.FieldLevel) bool {
			return alphanumUsDotRegex.MatchString(fl.Field().String())
		},
		ParseParam: func(fe v.FieldError) []string {
			return []string{fe.Field()}
		},
	}
}
