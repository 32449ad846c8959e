package wizard

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"hireable-backend/internal/media"
	"hireable-backend/pkg/validation"
)

// Multipart field names shared with the submission endpoint.
const (
	FieldFullName          = "fullName"
	FieldAge               = "age"
	FieldNationality       = "nationality"
	FieldLocation          = "location"
	FieldPhone             = "phone"
	FieldProfession        = "profession"
	FieldJobTitle          = "jobTitle"
	FieldYearsOfExperience = "yearsOfExperience"
	FieldSkills            = "skills"
	FieldBio               = "bio"

	PartResume            = "resume"
	PartProfilePicture    = "profilePicture"
	PartIntroductionVideo = "introductionVideo"
	PartIntroductionAudio = "introductionAudio"
)

type field struct {
	name, value string
}

// FilePart is one binary part of the payload.
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// Payload is the flattened draft, in the order it is written.
type Payload struct {
	fields []field
	Files  []FilePart
}

// NewPayload flattens a validated draft. At most one of video and audio is
// included; video wins if both are somehow present.
func NewPayload(d *Draft) *Payload {
	p := &Payload{}
	p.add(FieldFullName, strings.TrimSpace(d.FullName))
	p.add(FieldAge, strings.TrimSpace(d.Age))
	p.add(FieldNationality, d.Nationality)
	p.add(FieldLocation, d.Location)
	p.add(FieldPhone, fullPhone(d.Phone, d.PhoneCountryCode))
	p.add(FieldProfession, strings.TrimSpace(d.Profession))
	p.add(FieldJobTitle, strings.TrimSpace(d.JobTitle))
	p.add(FieldYearsOfExperience, strings.TrimSpace(d.YearsOfExperience))
	p.add(FieldSkills, strings.Join(d.Skills.Items(), ","))
	p.add(FieldBio, strings.TrimSpace(d.Bio))

	p.attach(PartResume, d.Resume, "")
	p.attach(PartProfilePicture, d.ProfilePicture, "")
	switch {
	case d.Video != nil:
		p.attach(PartIntroductionVideo, d.Video, media.KindVideo.Filename())
	case d.Audio != nil:
		p.attach(PartIntroductionAudio, d.Audio, media.KindAudio.Filename())
	}
	return p
}

func fullPhone(phone, dialCode string) string {
	local := validation.NormalizePhone(phone, dialCode)
	if dialCode == "" || strings.HasPrefix(local, "+") {
		return local
	}
	return dialCode + local
}

func (p *Payload) add(name, value string) {
	p.fields = append(p.fields, field{name, value})
}

func (p *Payload) attach(name string, a *Attachment, filename string) {
	if a == nil {
		return
	}
	if filename == "" {
		filename = a.Filename
	}
	ct := a.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	p.Files = append(p.Files, FilePart{Field: name, Filename: filename, ContentType: ct, Data: a.Data})
}

// Value returns a text field.
func (p *Payload) Value(name string) (string, bool) {
	for _, f := range p.fields {
		if f.name == name {
			return f.value, true
		}
	}
	return "", false
}

// File returns a binary part.
func (p *Payload) File(name string) (FilePart, bool) {
	for _, f := range p.Files {
		if f.Field == name {
			return f, true
		}
	}
	return FilePart{}, false
}

// Encode writes the payload as multipart/form-data and returns the body
// with its content type.
func (p *Payload) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range p.fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	for _, f := range p.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename))
		h.Set("Content-Type", f.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
