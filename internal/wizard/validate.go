package wizard

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"hireable-backend/internal/media"
	"hireable-backend/pkg/content"
	"hireable-backend/pkg/security"
	"hireable-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// Step is a wizard position. Complete follows the last step.
type Step int

const (
	StepIdentity Step = iota + 1
	StepProfessional
	StepMedia
	Complete
)

const TotalSteps = 3

func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepProfessional:
		return "professional"
	case StepMedia:
		return "media"
	case Complete:
		return "complete"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

const minBioLength = 50

// ValidationError is the first rule a step failed.
type ValidationError struct {
	Step    Step
	Key     content.Key
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Message)
}

type rule struct {
	key content.Key
	ok  func(v *validator.Validate, d *Draft) bool
}

func is(v *validator.Validate, value interface{}, tag string) bool {
	return v.Var(value, tag) == nil
}

func intIn(s string, tag string, v *validator.Validate) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return is(v, n, tag)
}

var rules = map[Step][]rule{
	StepIdentity: {
		{content.KeyFillAllFields, func(v *validator.Validate, d *Draft) bool {
			for _, f := range []string{d.FullName, d.Age, d.Nationality, d.Location, d.Phone} {
				if !is(v, strings.TrimSpace(f), "required") {
					return false
				}
			}
			return true
		}},
		{content.KeyNameInvalid, func(v *validator.Validate, d *Draft) bool {
			return is(v, strings.TrimSpace(d.FullName), "valid_name")
		}},
		{content.KeyAgeRange, func(v *validator.Validate, d *Draft) bool {
			return intIn(d.Age, "min=12,max=99", v)
		}},
		{content.KeyPhoneInvalid, func(v *validator.Validate, d *Draft) bool {
			return is(v, validation.NormalizePhone(d.Phone, d.PhoneCountryCode), "required,valid_phone")
		}},
		{content.KeyNationalityInvalid, func(v *validator.Validate, d *Draft) bool {
			return is(v, d.Nationality, "nationality")
		}},
		{content.KeyLocationInvalid, func(v *validator.Validate, d *Draft) bool {
			return is(v, d.Location, "emirate")
		}},
	},
	StepProfessional: {
		{content.KeyProfessionRequired, func(v *validator.Validate, d *Draft) bool {
			return is(v, strings.TrimSpace(d.Profession), "required")
		}},
		{content.KeyJobTitleRequired, func(v *validator.Validate, d *Draft) bool {
			return is(v, strings.TrimSpace(d.JobTitle), "required")
		}},
		{content.KeyExperienceRequired, func(v *validator.Validate, d *Draft) bool {
			return is(v, strings.TrimSpace(d.YearsOfExperience), "required")
		}},
		{content.KeyExperienceRange, func(v *validator.Validate, d *Draft) bool {
			return intIn(d.YearsOfExperience, "min=0,max=50", v)
		}},
		{content.KeySkillsMinimum, func(v *validator.Validate, d *Draft) bool {
			return is(v, d.Skills.Items(), "min=3")
		}},
		{content.KeyBioMinimum, func(v *validator.Validate, d *Draft) bool {
			return strings.TrimSpace(d.Bio) != "" && utf8.RuneCountInString(d.Bio) >= minBioLength
		}},
	},
	StepMedia: {
		{content.KeyResumeRequired, func(v *validator.Validate, d *Draft) bool {
			return d.Resume != nil && d.Resume.Size() > 0
		}},
		{content.KeyResumeInvalid, func(v *validator.Validate, d *Draft) bool {
			return security.ValidateFile(security.PurposeResume, d.Resume.Filename, d.Resume.Data).Valid
		}},
		{content.KeyPictureRequired, func(v *validator.Validate, d *Draft) bool {
			return d.ProfilePicture != nil && d.ProfilePicture.Size() > 0
		}},
		{content.KeyPictureInvalid, func(v *validator.Validate, d *Draft) bool {
			return security.ValidateFile(security.PurposePicture, d.ProfilePicture.Filename, d.ProfilePicture.Data).Valid
		}},
		{content.KeyMediaExclusive, func(v *validator.Validate, d *Draft) bool {
			return d.Video == nil || d.Audio == nil
		}},
		{content.KeyMediaTooLong, func(v *validator.Validate, d *Draft) bool {
			for _, a := range []*Attachment{d.Video, d.Audio} {
				if a != nil && a.Duration > media.MaxDuration {
					return false
				}
			}
			return true
		}},
	},
}

// Validate runs one step's rules in order and reports the first failure.
func Validate(v *validator.Validate, step Step, d *Draft, r content.Resolver) *ValidationError {
	for _, rl := range rules[step] {
		if !rl.ok(v, d) {
			return &ValidationError{Step: step, Key: rl.key, Message: r.Resolve(rl.key, nil)}
		}
	}
	return nil
}
