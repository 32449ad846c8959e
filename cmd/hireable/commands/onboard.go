package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"hireable-backend/internal/domain"
	"hireable-backend/internal/media"
	"hireable-backend/internal/wizard"
	"hireable-backend/pkg/content"
	"hireable-backend/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// OnboardCmd completes the candidate onboarding wizard from files.
var OnboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create your candidate profile",
	Long: `Run the three onboarding steps from a YAML draft and submit the profile.

The draft holds the identity and professional fields. The resume and profile
picture are required; a video or an audio introduction is optional, never both.

Example draft.yaml:
  fullName: Aisha Khan
  age: 28
  nationality: India
  location: Dubai
  phoneCountryCode: "+971"
  phone: 50 123 4567
  profession: Software Engineer
  jobTitle: Backend Developer
  yearsOfExperience: 5
  skills: [Go, SQL, Docker]
  bio: Backend engineer with five years of experience shipping APIs.

Examples:
  hireable onboard --draft draft.yaml --resume cv.pdf --picture me.jpg
  hireable onboard --draft draft.yaml --resume cv.pdf --picture me.jpg --video intro.webm`,
	RunE: runOnboard,
}

func init() {
	OnboardCmd.Flags().String("draft", "", "YAML file with the profile fields")
	OnboardCmd.Flags().String("resume", "", "Resume (PDF or Word)")
	OnboardCmd.Flags().String("picture", "", "Profile picture")
	OnboardCmd.Flags().String("video", "", "Video introduction")
	OnboardCmd.Flags().String("audio", "", "Audio introduction")
	_ = OnboardCmd.MarkFlagRequired("draft")
	OnboardCmd.MarkFlagsMutuallyExclusive("video", "audio")
}

// DraftFile is the on-disk form of the first two wizard steps.
type DraftFile struct {
	FullName          string   `yaml:"fullName"`
	Age               int      `yaml:"age"`
	Nationality       string   `yaml:"nationality"`
	Location          string   `yaml:"location"`
	PhoneCountryCode  string   `yaml:"phoneCountryCode"`
	Phone             string   `yaml:"phone"`
	Profession        string   `yaml:"profession"`
	JobTitle          string   `yaml:"jobTitle"`
	YearsOfExperience *int     `yaml:"yearsOfExperience"`
	Skills            []string `yaml:"skills"`
	Bio               string   `yaml:"bio"`
}

// LoadDraftFile parses a YAML draft.
func LoadDraftFile(path string) (*DraftFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	var df DraftFile
	if err := yaml.Unmarshal(raw, &df); err != nil {
		return nil, fmt.Errorf("parse draft %s: %w", path, err)
	}
	return &df, nil
}

// Apply copies the file's fields into d. Empty fields leave d untouched.
func (df *DraftFile) Apply(d *wizard.Draft) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&d.FullName, df.FullName)
	if df.Age > 0 {
		d.Age = strconv.Itoa(df.Age)
	}
	set(&d.Nationality, df.Nationality)
	set(&d.Location, df.Location)
	set(&d.PhoneCountryCode, df.PhoneCountryCode)
	set(&d.Phone, df.Phone)
	set(&d.Profession, df.Profession)
	set(&d.JobTitle, df.JobTitle)
	if df.YearsOfExperience != nil {
		d.YearsOfExperience = strconv.Itoa(*df.YearsOfExperience)
	}
	for _, s := range df.Skills {
		d.Skills.Add(s)
	}
	set(&d.Bio, df.Bio)
}

// loadAttachment reads a file and sniffs its content type.
func loadAttachment(path string) (*wizard.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &wizard.Attachment{
		Filename:    filepath.Base(path),
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}

// fileOnlyDevice refuses live capture; the CLI only attaches files.
type fileOnlyDevice struct{}

func (fileOnlyDevice) Acquire(ctx context.Context, kind media.Kind) (media.Stream, error) {
	return nil, media.ErrDeviceUnavailable
}

// Uploads names the files handed to the media step.
type Uploads struct {
	Resume  string
	Picture string
	Video   string
	Audio   string
}

func runOnboard(cmd *cobra.Command, args []string) error {
	settings, err := LoadSettings()
	if err != nil {
		return err
	}
	if settings.Token == "" {
		return errors.New("onboarding requires a token: set HIREABLE_TOKEN or token in the config file")
	}

	draftPath, _ := cmd.Flags().GetString("draft")
	df, err := LoadDraftFile(draftPath)
	if err != nil {
		return err
	}
	var up Uploads
	up.Resume, _ = cmd.Flags().GetString("resume")
	up.Picture, _ = cmd.Flags().GetString("picture")
	up.Video, _ = cmd.Flags().GetString("video")
	up.Audio, _ = cmd.Flags().GetString("audio")

	ctx := cmd.Context()
	cl := settings.Client()

	role, err := cl.Role(ctx)
	if err != nil {
		return fmt.Errorf("check role: %w", err)
	}
	switch role {
	case domain.RoleNone:
		if err := cl.AssignRole(ctx, domain.RoleCandidate); err != nil {
			return fmt.Errorf("assign candidate role: %w", err)
		}
	case domain.RoleRecruiter:
		return errors.New("this account is a recruiter account and cannot create a candidate profile")
	}

	res := content.MustLoad().For(settings.locale())
	id := domain.Identity{Email: settings.Email, Name: df.FullName, Role: domain.RoleCandidate}
	w := wizard.New(id, cl, res, wizard.WithLogger(logger.Log))

	created, err := Onboard(ctx, w, df, up)
	if err != nil {
		if msg := w.Message(); msg != "" {
			pterm.Error.Println(msg)
		}
		return err
	}
	pterm.Success.Println(res.Resolve(content.KeyCompleteTitle, map[string]string{"name": created.FullName}))
	pterm.Info.Println(res.Resolve(content.KeyCompleteMessage, nil))
	return nil
}

// Onboard walks w through every step with the draft and files, then
// submits. On a validation failure w.Message holds the reason.
func Onboard(ctx context.Context, w *wizard.Wizard, df *DraftFile, up Uploads) (*domain.Candidate, error) {
	if err := w.Edit(df.Apply); err != nil {
		return nil, err
	}

	pterm.Info.Println(w.ProgressLabel())
	if err := w.Next(); err != nil {
		return nil, err
	}
	pterm.Info.Println(w.ProgressLabel())
	if err := w.Next(); err != nil {
		return nil, err
	}
	pterm.Info.Println(w.ProgressLabel())

	if err := attachFiles(w, up); err != nil {
		return nil, err
	}
	return w.Submit(ctx)
}

func attachFiles(w *wizard.Wizard, up Uploads) error {
	var resume, picture *wizard.Attachment
	var err error
	if up.Resume != "" {
		if resume, err = loadAttachment(up.Resume); err != nil {
			return fmt.Errorf("resume: %w", err)
		}
	}
	if up.Picture != "" {
		if picture, err = loadAttachment(up.Picture); err != nil {
			return fmt.Errorf("picture: %w", err)
		}
	}
	if err := w.Edit(func(d *wizard.Draft) {
		d.Resume = resume
		d.ProfilePicture = picture
	}); err != nil {
		return err
	}

	panel := wizard.NewMediaPanel(w, fileOnlyDevice{})
	defer panel.Close()
	if up.Video != "" {
		a, err := loadAttachment(up.Video)
		if err != nil {
			return fmt.Errorf("video: %w", err)
		}
		if err := panel.AttachVideo(*a); err != nil {
			return err
		}
	}
	if up.Audio != "" {
		a, err := loadAttachment(up.Audio)
		if err != nil {
			return fmt.Errorf("audio: %w", err)
		}
		if err := panel.AttachAudio(*a); err != nil {
			return err
		}
	}
	return nil
}
