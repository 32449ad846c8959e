// Package wizard is the three-step candidate onboarding flow: identity,
// professional details and media, then a single submission.
package wizard

import (
	"strings"
	"time"

	"hireable-backend/internal/domain"
)

// DefaultDialCode is preselected in the phone field.
const DefaultDialCode = "+971"

// Attachment is a file or recorded clip held by the draft.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
	// Duration is set for recorded clips.
	Duration time.Duration
}

func (a *Attachment) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Data)
}

// SkillSet keeps skills in insertion order without duplicates.
type SkillSet struct {
	items []string
}

func NewSkillSet(skills ...string) SkillSet {
	var s SkillSet
	for _, sk := range skills {
		s.Add(sk)
	}
	return s
}

// Add trims the skill and appends it unless it is empty or already present.
func (s *SkillSet) Add(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" || s.Contains(skill) {
		return false
	}
	s.items = append(s.items, skill)
	return true
}

func (s *SkillSet) Remove(skill string) bool {
	for i, it := range s.items {
		if it == skill {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s SkillSet) Contains(skill string) bool {
	for _, it := range s.items {
		if it == skill {
			return true
		}
	}
	return false
}

func (s SkillSet) Len() int { return len(s.items) }

func (s SkillSet) Items() []string {
	return append([]string(nil), s.items...)
}

// Draft is everything entered so far. Age and YearsOfExperience hold the
// raw input and are parsed during validation.
type Draft struct {
	FullName          string
	Age               string
	Nationality       string
	Location          string
	PhoneCountryCode  string
	Phone             string
	Profession        string
	JobTitle          string
	YearsOfExperience string
	Skills            SkillSet
	Bio               string

	Resume         *Attachment
	ProfilePicture *Attachment
	Video          *Attachment
	Audio          *Attachment
}

// NewDraft pre-fills the draft from the signed-in identity.
func NewDraft(id domain.Identity) Draft {
	return Draft{
		FullName:         id.Name,
		PhoneCountryCode: DefaultDialCode,
	}
}

// clone copies the draft so callers never share the attachment pointers
// or the skills slice with the wizard.
func (d Draft) clone() Draft {
	out := d
	out.Skills = NewSkillSet(d.Skills.items...)
	out.Resume = cloneAttachment(d.Resume)
	out.ProfilePicture = cloneAttachment(d.ProfilePicture)
	out.Video = cloneAttachment(d.Video)
	out.Audio = cloneAttachment(d.Audio)
	return out
}

func cloneAttachment(a *Attachment) *Attachment {
	if a == nil {
		return nil
	}
	c := *a
	c.Data = append([]byte(nil), a.Data...)
	return &c
}
