package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinSymptomLength is the minimum trimmed length of a symptom description,
// in characters.
const MinSymptomLength = 10

// ValidateSymptoms checks the shape of a symptom description before any
// network call is made. It returns a *ValidationError on rejection and nil
// otherwise. Emptiness and the minimum length are judged on the trimmed text;
// the maximum applies to the raw input. Both bounds count characters, not
// bytes, so multibyte text is measured the way the error messages describe it.
func ValidateSymptoms(symptoms string, maxLength int) error {
	trimmed := strings.TrimSpace(symptoms)

	if trimmed == "" {
		return &ValidationError{
			Reason:  ReasonEmpty,
			Message: "Please provide a description of your symptoms",
		}
	}

	if utf8.RuneCountInString(trimmed) < MinSymptomLength {
		return &ValidationError{
			Reason:  ReasonTooShort,
			Message: fmt.Sprintf("Please provide a more detailed description of your symptoms (at least %d characters)", MinSymptomLength),
		}
	}

	if utf8.RuneCountInString(symptoms) > maxLength {
		return &ValidationError{
			Reason:  ReasonTooLong,
			Message: fmt.Sprintf("Symptom description is too long (maximum %d characters)", maxLength),
		}
	}

	return nil
}
