package validation

import (
	"regexp"
	"strings"

	"hireable-backend/pkg/countries"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Letters, spaces, hyphens and apostrophes only
	nameRegex = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)

	// Loose international format: optional +, up to two separated groups, then the subscriber digits
	phoneRegex = regexp.MustCompile(`^[\+]?[(]?[0-9]{1,4}[)]?[-\s\.]?[(]?[0-9]{1,4}[)]?[-\s\.]?[0-9]{1,9}$`)

	whitespace = regexp.MustCompile(`\s+`)
)

// New returns a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("emirate", Emirate)
	_ = v.RegisterValidation("nationality", Nationality)
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// ValidPhone matches the loose international pattern once whitespace is removed.
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return IsPhone(val)
}

func Emirate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return countries.IsEmirate(val)
}

func Nationality(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return countries.IsCountry(val)
}

// IsPhone reports whether phone matches the loose international pattern.
func IsPhone(phone string) bool {
	return phoneRegex.MatchString(whitespace.ReplaceAllString(phone, ""))
}

// NormalizePhone strips the selected dialing code (e.g. "+971") from the
// front of phone and removes whitespace.
func NormalizePhone(phone, dialCode string) string {
	phone = strings.TrimSpace(phone)
	dialCode = strings.TrimSpace(dialCode)
	if dialCode != "" {
		if strings.HasPrefix(phone, dialCode) {
			phone = strings.TrimPrefix(phone, dialCode)
		} else if bare := strings.TrimPrefix(dialCode, "+"); strings.HasPrefix(phone, "00"+bare) {
			phone = strings.TrimPrefix(phone, "00"+bare)
		}
	}
	return whitespace.ReplaceAllString(phone, "")
}
