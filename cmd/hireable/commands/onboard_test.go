package commands

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"hireable-backend/internal/domain"
	"hireable-backend/internal/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, p *wizard.Payload) (*domain.Candidate, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

const draftYAML = `fullName: Aisha Khan
age: 28
nationality: India
location: Dubai
phone: 50 123 4567
profession: Software Engineer
jobTitle: Backend Developer
yearsOfExperience: 5
skills: [Go, SQL, Docker, Go]
bio: Backend engineer who ships. Backend engineer who ships. Backend engineer who ships.
`

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func fixtures(t *testing.T) (dir string, up Uploads) {
	t.Helper()
	dir = t.TempDir()
	var pic bytes.Buffer
	require.NoError(t, png.Encode(&pic, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	up.Resume = writeFile(t, dir, "cv.pdf", []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"))
	up.Picture = writeFile(t, dir, "me.png", pic.Bytes())
	return dir, up
}

func newTestWizard(s wizard.Submitter) *wizard.Wizard {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return wizard.New(domain.Identity{Email: "aisha@example.com"}, s, english(), wizard.WithLogger(quiet))
}

func TestDraftFile(t *testing.T) {
	t.Run("parses yaml into the wizard draft", func(t *testing.T) {
		dir := t.TempDir()
		df, err := LoadDraftFile(writeFile(t, dir, "draft.yaml", []byte(draftYAML)))
		require.NoError(t, err)

		d := wizard.NewDraft(domain.Identity{})
		df.Apply(&d)

		assert.Equal(t, "Aisha Khan", d.FullName)
		assert.Equal(t, "28", d.Age)
		assert.Equal(t, "5", d.YearsOfExperience)
		assert.Equal(t, wizard.DefaultDialCode, d.PhoneCountryCode)
		assert.Equal(t, []string{"Go", "SQL", "Docker"}, d.Skills.Items())
	})

	t.Run("zero years of experience is kept", func(t *testing.T) {
		dir := t.TempDir()
		df, err := LoadDraftFile(writeFile(t, dir, "draft.yaml", []byte("yearsOfExperience: 0\n")))
		require.NoError(t, err)

		var d wizard.Draft
		df.Apply(&d)
		assert.Equal(t, "0", d.YearsOfExperience)
	})

	t.Run("malformed yaml is reported with the path", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "draft.yaml", []byte("skills: [Go\n"))
		_, err := LoadDraftFile(path)
		assert.ErrorContains(t, err, path)
	})
}

func TestOnboard(t *testing.T) {
	t.Run("submits every step with a video introduction", func(t *testing.T) {
		dir, up := fixtures(t)
		up.Video = writeFile(t, dir, "intro.webm", []byte("not really a webm"))
		df, err := LoadDraftFile(writeFile(t, dir, "draft.yaml", []byte(draftYAML)))
		require.NoError(t, err)

		s := new(MockSubmitter)
		created := &domain.Candidate{ID: "c-1", FullName: "Aisha Khan"}
		s.On("Submit", mock.Anything, mock.MatchedBy(func(p *wizard.Payload) bool {
			name, _ := p.Value(wizard.FieldFullName)
			skills, _ := p.Value(wizard.FieldSkills)
			_, hasResume := p.File(wizard.PartResume)
			_, hasPicture := p.File(wizard.PartProfilePicture)
			video, hasVideo := p.File(wizard.PartIntroductionVideo)
			_, hasAudio := p.File(wizard.PartIntroductionAudio)
			return name == "Aisha Khan" && skills == "Go,SQL,Docker" &&
				hasResume && hasPicture && hasVideo && !hasAudio &&
				string(video.Data) == "not really a webm"
		})).Return(created, nil).Once()

		w := newTestWizard(s)
		got, err := Onboard(context.Background(), w, df, up)

		require.NoError(t, err)
		assert.Equal(t, created, got)
		assert.Equal(t, wizard.Complete, w.Step())
		s.AssertExpectations(t)
	})

	t.Run("a missing resume stops on the media step", func(t *testing.T) {
		dir, up := fixtures(t)
		up.Resume = ""
		df, _ := LoadDraftFile(writeFile(t, dir, "draft.yaml", []byte(draftYAML)))

		s := new(MockSubmitter)
		w := newTestWizard(s)
		_, err := Onboard(context.Background(), w, df, up)

		var verr *wizard.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, wizard.StepMedia, w.Step())
		assert.Equal(t, "Please upload your resume", w.Message())
		s.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("an invalid age stops on the first step", func(t *testing.T) {
		dir, up := fixtures(t)
		df, _ := LoadDraftFile(writeFile(t, dir, "draft.yaml", []byte(draftYAML)))
		df.Age = 101

		w := newTestWizard(new(MockSubmitter))
		_, err := Onboard(context.Background(), w, df, up)

		require.Error(t, err)
		assert.Equal(t, wizard.StepIdentity, w.Step())
		assert.Equal(t, "Age must be between 12 and 99", w.Message())
	})

	t.Run("video and audio together are refused", func(t *testing.T) {
		dir, up := fixtures(t)
		up.Video = writeFile(t, dir, "intro.webm", []byte("video"))
		up.Audio = writeFile(t, dir, "intro-audio.webm", []byte("audio"))
		df, _ := LoadDraftFile(writeFile(t, dir, "draft.yaml", []byte(draftYAML)))

		s := new(MockSubmitter)
		_, err := Onboard(context.Background(), newTestWizard(s), df, up)

		assert.ErrorIs(t, err, wizard.ErrModalityLocked)
		s.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("an unreadable file names the part", func(t *testing.T) {
		dir, up := fixtures(t)
		up.Picture = filepath.Join(dir, "missing.png")
		df, _ := LoadDraftFile(writeFile(t, dir, "draft.yaml", []byte(draftYAML)))

		_, err := Onboard(context.Background(), newTestWizard(new(MockSubmitter)), df, up)
		assert.ErrorContains(t, err, "picture")
	})
}

func TestLoadAttachment(t *testing.T) {
	_, up := fixtures(t)
	a, err := loadAttachment(up.Picture)
	require.NoError(t, err)
	assert.Equal(t, "me.png", a.Filename)
	assert.Equal(t, "image/png", a.ContentType)
}
