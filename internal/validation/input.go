package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/habitual/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("frequency", validateFrequency); err != nil {
		panic(fmt.Sprintf("failed to register frequency validator: %v", err))
	}
}

// validateFrequency validates that a string is a known Frequency value
func validateFrequency(fl validator.FieldLevel) bool {
	return models.Frequency(fl.Field().String()).Valid()
}

// SanitizeText trims whitespace and removes control characters except newline and tab
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateHabitInput sanitizes the free-text fields of in and checks every
// field rule. The returned error wraps models.ErrInvalidHabit.
func ValidateHabitInput(in *models.HabitInput) error {
	in.Name = SanitizeText(in.Name)
	in.Description = SanitizeText(in.Description)

	err := Validate.Struct(in)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", models.ErrInvalidHabit, err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		msgs = append(msgs, describeFieldError(fieldError))
	}
	return fmt.Errorf("%w: %s", models.ErrInvalidHabit, strings.Join(msgs, "; "))
}

var fieldNames = map[string]string{
	"Name":         "name",
	"Description":  "description",
	"Frequency":    "frequency",
	"TimesPerDay":  "times per day",
	"TimesPerWeek": "times per week",
}

func describeFieldError(fe validator.FieldError) string {
	field := fieldNames[fe.StructField()]
	if strings.HasPrefix(fe.StructField(), "DaysOfWeek") {
		field = "days of week"
	} else if field == "" {
		field = strings.ToLower(fe.StructField())
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "frequency":
		return fmt.Sprintf("unknown frequency %q (must be one of %s)", fe.Value(), frequencyList())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func frequencyList() string {
	names := make([]string, 0, len(models.Frequencies))
	for _, f := range models.Frequencies {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
