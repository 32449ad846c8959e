package validation

import (
	"errors"

	"hireable-backend/pkg/content"

	"github.com/go-playground/validator/v10"
)

// identityFields share the single "fill all fields" message when missing.
var identityFields = map[string]bool{
	"FullName":    true,
	"Age":         true,
	"Nationality": true,
	"Location":    true,
	"Phone":       true,
}

// MessageKey maps the first validation failure in err to its content key.
// Non-validation errors map to KeySubmitFailed.
func MessageKey(err error) content.Key {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return content.KeySubmitFailed
	}
	return keyFor(validationErrors[0])
}

// FormatValidationErrors converts validator.ValidationErrors to localized messages
func FormatValidationErrors(err error, r content.Resolver) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{r.Resolve(content.KeySubmitFailed, nil)}
	}

	messages := make([]string, 0, len(validationErrors))
	seen := make(map[content.Key]bool)
	for _, e := range validationErrors {
		key := keyFor(e)
		if seen[key] {
			continue
		}
		seen[key] = true
		messages = append(messages, r.Resolve(key, nil))
	}
	return messages
}

func keyFor(e validator.FieldError) content.Key {
	field := e.Field()
	tag := e.Tag()

	if tag == "required" && identityFields[field] {
		return content.KeyFillAllFields
	}

	switch tag {
	case "valid_name":
		return content.KeyNameInvalid
	case "valid_phone":
		return content.KeyPhoneInvalid
	case "nationality":
		return content.KeyNationalityInvalid
	case "emirate":
		return content.KeyLocationInvalid
	}

	switch field {
	case "Age":
		return content.KeyAgeRange
	case "Profession":
		return content.KeyProfessionRequired
	case "JobTitle":
		return content.KeyJobTitleRequired
	case "YearsOfExperience":
		if tag == "required" {
			return content.KeyExperienceRequired
		}
		return content.KeyExperienceRange
	case "Skills":
		return content.KeySkillsMinimum
	case "Bio":
		return content.KeyBioMinimum
	}
	return content.KeyInvalidFile
}
