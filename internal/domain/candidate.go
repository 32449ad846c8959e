package domain

import (
	"context"
	"time"
)

// CandidatesPerPage is the fixed listing page size.
const CandidatesPerPage = 12

// Candidate is the full persisted record. Contact fields are only served to
// recruiters and to the owning candidate.
type Candidate struct {
	ID                   string    `json:"id"`
	UserEmail            string    `json:"-"`
	Email                string    `json:"email"`
	FullName             string    `json:"full_name"`
	Age                  int       `json:"age"`
	Nationality          string    `json:"nationality"`
	Location             string    `json:"location"`
	Phone                string    `json:"phone"`
	Profession           string    `json:"profession"`
	JobTitle             string    `json:"job_title"`
	YearsOfExperience    int       `json:"years_of_experience"`
	Skills               []string  `json:"skills"`
	Bio                  string    `json:"bio"`
	ResumeURL            string    `json:"resume_url"`
	ResumeFilename       string    `json:"resume_filename"`
	ResumeText           string    `json:"-"`
	ProfilePictureURL    string    `json:"profile_picture_url"`
	IntroductionVideoURL string    `json:"introduction_video_url,omitempty"`
	IntroductionAudioURL string    `json:"introduction_audio_url,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CandidateListing is the directory projection. It never carries phone or email.
type CandidateListing struct {
	ID                string    `json:"id"`
	FullName          string    `json:"full_name"`
	Bio               string    `json:"bio"`
	Location          string    `json:"location"`
	Nationality       string    `json:"nationality"`
	YearsOfExperience int       `json:"years_of_experience"`
	Skills            []string  `json:"skills"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	Profession        string    `json:"profession,omitempty"`
	JobTitle          string    `json:"job_title,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Listing projects a full record down to the directory view.
func (c *Candidate) Listing() CandidateListing {
	return CandidateListing{
		ID:                c.ID,
		FullName:          c.FullName,
		Bio:               c.Bio,
		Location:          c.Location,
		Nationality:       c.Nationality,
		YearsOfExperience: c.YearsOfExperience,
		Skills:            c.Skills,
		ProfilePictureURL: c.ProfilePictureURL,
		Profession:        c.Profession,
		JobTitle:          c.JobTitle,
		CreatedAt:         c.CreatedAt,
	}
}

// UploadedFile is one binary part of a multipart submission.
type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CandidateSubmission is the onboarding payload after multipart decoding.
type CandidateSubmission struct {
	FullName          string   `validate:"required,valid_name"`
	Age               int      `validate:"required,min=12,max=99"`
	Nationality       string   `validate:"required,nationality"`
	Location          string   `validate:"required,emirate"`
	Phone             string   `validate:"required,valid_phone"`
	Profession        string   `validate:"required,max=100"`
	JobTitle          string   `validate:"required,max=100"`
	YearsOfExperience *int     `validate:"required,min=0,max=50"`
	Skills            []string `validate:"min=3,max=50,dive,required,max=60"`
	Bio               string   `validate:"min=50,max=2000"`

	Resume            *UploadedFile `validate:"-"`
	ProfilePicture    *UploadedFile `validate:"-"`
	IntroductionVideo *UploadedFile `validate:"-"`
	IntroductionAudio *UploadedFile `validate:"-"`
}

// CandidateUpdate carries the fields a candidate may edit after onboarding.
type CandidateUpdate struct {
	Bio               *string       `validate:"omitempty,min=50,max=2000"`
	Skills            []string      `validate:"omitempty,min=3,max=50,dive,required,max=60"`
	Phone             *string       `validate:"omitempty,valid_phone"`
	Location          *string       `validate:"omitempty,emirate"`
	YearsOfExperience *int          `validate:"omitempty,min=0,max=50"`
	Resume            *UploadedFile `validate:"-"`
}

// DailySignup is one bar of the signup chart.
type DailySignup struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type CandidateStats struct {
	TotalCandidates int64         `json:"total_candidates"`
	TotalSkills     int64         `json:"total_skills"`
	TotalLocations  int64         `json:"total_locations"`
	DailySignups    []DailySignup `json:"daily_signups"`
}

type FilterOptions struct {
	Locations     []string `json:"locations"`
	Experience    []string `json:"experience"`
	Nationalities []string `json:"nationalities"`
	Professions   []string `json:"professions"`
}

type CandidateRepository interface {
	Create(ctx context.Context, c *Candidate) error
	Update(ctx context.Context, c *Candidate) error
	GetByID(ctx context.Context, id string) (*Candidate, error)
	GetByUserEmail(ctx context.Context, email string) (*Candidate, error)
	Search(ctx context.Context, filter CandidateFilter) ([]CandidateListing, int64, error)
	SearchFull(ctx context.Context, filter CandidateFilter) ([]Candidate, error)
	Stats(ctx context.Context, since time.Time) (*CandidateStats, error)
	FilterOptions(ctx context.Context) (*FilterOptions, error)
}

type CandidateUsecase interface {
	Submit(ctx context.Context, sub *CandidateSubmission) (*Candidate, error)
	GetOwnProfile(ctx context.Context) (*Candidate, error)
	UpdateOwnProfile(ctx context.Context, upd *CandidateUpdate) (*Candidate, error)
	GetByID(ctx context.Context, id string) (*Candidate, error)
	List(ctx context.Context, filter CandidateFilter) (*ListingPage, error)
	Stats(ctx context.Context) (*CandidateStats, error)
	FilterOptions(ctx context.Context) (*FilterOptions, error)
	Export(ctx context.Context, filter CandidateFilter, format string) ([]byte, string, error)
}
