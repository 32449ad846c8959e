package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"hireable-backend/internal/domain"
	"hireable-backend/pkg/apperror"
	"hireable-backend/pkg/content"
	"hireable-backend/pkg/countries"
	"hireable-backend/pkg/imaging"
	"hireable-backend/pkg/logger"
	"hireable-backend/pkg/security"
	"hireable-backend/pkg/security/antivirus"
	"hireable-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var dictionary = sync.OnceValue(content.MustLoad)

// fail builds a localized error with the English text as fallback.
func fail(code int, key content.Key) *apperror.AppError {
	return apperror.Localized(code, key, dictionary().Get(content.English, key, nil))
}

// CandidateDeps are the collaborators of the candidate usecase. Only Repo
// and Blobs are required.
type CandidateDeps struct {
	Repo     domain.CandidateRepository
	Blobs    domain.BlobStore
	Text     domain.TextExtractor
	Images   domain.ImageCompressor
	Scanner  antivirus.Scanner
	Audit    *security.AuditLogger
	Validate *validator.Validate
	Now      func() time.Time
}

type candidateUsecase struct {
	repo     domain.CandidateRepository
	blobs    domain.BlobStore
	text     domain.TextExtractor
	images   domain.ImageCompressor
	scanner  antivirus.Scanner
	audit    *security.AuditLogger
	validate *validator.Validate
	now      func() time.Time
}

func NewCandidateUsecase(d CandidateDeps) domain.CandidateUsecase {
	u := &candidateUsecase{
		repo:     d.Repo,
		blobs:    d.Blobs,
		text:     d.Text,
		images:   d.Images,
		scanner:  d.Scanner,
		audit:    d.Audit,
		validate: d.Validate,
		now:      d.Now,
	}
	if u.images == nil {
		u.images = imaging.NewCompressor()
	}
	if u.scanner == nil {
		u.scanner = antivirus.NoOpScanner{}
	}
	if u.audit == nil {
		u.audit = security.NopAuditLogger()
	}
	if u.validate == nil {
		u.validate = validation.New()
	}
	if u.now == nil {
		u.now = time.Now
	}
	return u
}

type storedObject struct {
	bucket domain.Bucket
	key    string
}

func (u *candidateUsecase) Submit(ctx context.Context, sub *domain.CandidateSubmission) (*domain.Candidate, error) {
	id, ok := domain.IdentityFrom(ctx)
	if !ok {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if id.Role != domain.RoleCandidate {
		return nil, fail(http.StatusForbidden, content.KeyErrCandidateOnly)
	}

	if err := u.validate.Struct(sub); err != nil {
		key := validation.MessageKey(err)
		u.audit.SubmissionRejected(ctx, id.Email, string(key))
		return nil, fail(http.StatusBadRequest, key).WithErr(err)
	}
	if err := u.checkAttachments(ctx, sub); err != nil {
		u.audit.SubmissionRejected(ctx, id.Email, err.Error())
		return nil, err
	}

	existing, err := u.repo.GetByUserEmail(ctx, id.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, fail(http.StatusConflict, content.KeyErrProfileExists)
	}

	now := u.now()
	c := &domain.Candidate{
		ID:                uuid.NewString(),
		UserEmail:         id.Email,
		Email:             id.Email,
		FullName:          sub.FullName,
		Age:               sub.Age,
		Nationality:       sub.Nationality,
		Location:          sub.Location,
		Phone:             sub.Phone,
		Profession:        sub.Profession,
		JobTitle:          sub.JobTitle,
		YearsOfExperience: *sub.YearsOfExperience,
		Skills:            sub.Skills,
		Bio:               sub.Bio,
		ResumeFilename:    sub.Resume.Filename,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if canonical, ok := countries.Canonical(c.Nationality); ok {
		c.Nationality = canonical
	}

	var stored []storedObject
	put := func(b domain.Bucket, key, contentType string, data []byte) (string, error) {
		url, err := u.blobs.Put(ctx, b, key, contentType, data)
		if err != nil {
			return "", err
		}
		stored = append(stored, storedObject{b, key})
		return url, nil
	}

	if err := u.storeFiles(ctx, c, sub, put); err != nil {
		u.discard(ctx, stored)
		return nil, apperror.Internal(err)
	}

	if err := u.repo.Create(ctx, c); err != nil {
		u.discard(ctx, stored)
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.Internal(err)
	}

	u.audit.SubmissionAccepted(ctx, id.Email, c.ID)
	logger.Log.Info("candidate profile created", "candidate_id", c.ID)
	return c, nil
}

// checkAttachments runs the file checks in display order: resume, picture,
// then the optional introduction.
func (u *candidateUsecase) checkAttachments(ctx context.Context, sub *domain.CandidateSubmission) error {
	if sub.Resume == nil {
		return fail(http.StatusBadRequest, content.KeyResumeRequired)
	}
	if err := u.checkFile(ctx, security.PurposeResume, sub.Resume, content.KeyResumeInvalid); err != nil {
		return err
	}
	if sub.ProfilePicture == nil {
		return fail(http.StatusBadRequest, content.KeyPictureRequired)
	}
	if err := u.checkFile(ctx, security.PurposePicture, sub.ProfilePicture, content.KeyPictureInvalid); err != nil {
		return err
	}
	if sub.IntroductionVideo != nil && sub.IntroductionAudio != nil {
		return fail(http.StatusBadRequest, content.KeyMediaExclusive)
	}
	if sub.IntroductionVideo != nil {
		return u.checkFile(ctx, security.PurposeVideo, sub.IntroductionVideo, content.KeyInvalidFile)
	}
	if sub.IntroductionAudio != nil {
		return u.checkFile(ctx, security.PurposeAudio, sub.IntroductionAudio, content.KeyInvalidFile)
	}
	return nil
}

// checkFile validates type and content, then scans. ContentType is
// replaced by the sniffed type on success.
func (u *candidateUsecase) checkFile(ctx context.Context, p security.Purpose, f *domain.UploadedFile, invalid content.Key) error {
	res := security.ValidateFile(p, f.Filename, f.Data)
	if !res.Valid {
		if errors.Is(res.Err, security.ErrFileTooLarge) {
			return fail(http.StatusRequestEntityTooLarge, content.KeyErrUploadTooLarge).WithErr(res.Err)
		}
		return fail(http.StatusBadRequest, invalid).WithErr(res.Err)
	}
	if scan := u.scanner.Scan(ctx, f.Filename, f.Data); !scan.Clean() {
		logger.Log.Warn("upload rejected by scanner",
			"scanner", scan.ScannerName, "threat", scan.ThreatName, "error", scan.Err)
		return fail(http.StatusBadRequest, invalid)
	}
	f.ContentType = res.DetectedMIME
	return nil
}

func (u *candidateUsecase) storeFiles(ctx context.Context, c *domain.Candidate, sub *domain.CandidateSubmission,
	put func(domain.Bucket, string, string, []byte) (string, error)) error {
	pic, picType, err := u.images.Compress(sub.ProfilePicture.Data)
	if err != nil {
		return fmt.Errorf("compress profile picture: %w", err)
	}
	if c.ProfilePictureURL, err = put(domain.BucketProfilePictures, c.ID+"/profile.jpg", picType, pic); err != nil {
		return fmt.Errorf("upload profile picture: %w", err)
	}

	if c.ResumeURL, err = put(domain.BucketResumes, c.ID+"/"+imaging.SanitizeFilename(sub.Resume.Filename),
		sub.Resume.ContentType, sub.Resume.Data); err != nil {
		return fmt.Errorf("upload resume: %w", err)
	}
	c.ResumeText = u.extract(ctx, sub.Resume)

	switch {
	case sub.IntroductionVideo != nil:
		c.IntroductionVideoURL, err = put(domain.BucketMedia, c.ID+"/introduction.webm", "video/webm", sub.IntroductionVideo.Data)
	case sub.IntroductionAudio != nil:
		c.IntroductionAudioURL, err = put(domain.BucketMedia, c.ID+"/audio-introduction.webm", "audio/webm", sub.IntroductionAudio.Data)
	}
	if err != nil {
		return fmt.Errorf("upload introduction: %w", err)
	}
	return nil
}

// extract returns the resume text, or "" when it cannot be read. Search
// simply won't match the document body in that case.
func (u *candidateUsecase) extract(ctx context.Context, f *domain.UploadedFile) string {
	if u.text == nil {
		return ""
	}
	text, err := u.text.ExtractText(ctx, f.Data, f.ContentType)
	if err != nil {
		logger.Log.Warn("resume text extraction failed", "content_type", f.ContentType, "error", err)
		return ""
	}
	return text
}

func (u *candidateUsecase) discard(ctx context.Context, stored []storedObject) {
	ctx = context.WithoutCancel(ctx)
	for _, o := range stored {
		if err := u.blobs.Delete(ctx, o.bucket, o.key); err != nil {
			logger.Log.Error("failed to remove orphaned upload", "bucket", o.bucket, "key", o.key, "error", err)
		}
	}
}

func (u *candidateUsecase) GetOwnProfile(ctx context.Context) (*domain.Candidate, error) {
	id, ok := domain.IdentityFrom(ctx)
	if !ok {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	c, err := u.repo.GetByUserEmail(ctx, id.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if c == nil {
		return nil, fail(http.StatusNotFound, content.KeyErrProfileNotFound)
	}
	return c, nil
}

func (u *candidateUsecase) UpdateOwnProfile(ctx context.Context, upd *domain.CandidateUpdate) (*domain.Candidate, error) {
	c, err := u.GetOwnProfile(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.validate.Struct(upd); err != nil {
		return nil, fail(http.StatusBadRequest, validation.MessageKey(err)).WithErr(err)
	}

	if upd.Bio != nil {
		c.Bio = *upd.Bio
	}
	if upd.Skills != nil {
		c.Skills = upd.Skills
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.Location != nil {
		c.Location = *upd.Location
	}
	if upd.YearsOfExperience != nil {
		c.YearsOfExperience = *upd.YearsOfExperience
	}

	var stored []storedObject
	if upd.Resume != nil {
		if err := u.checkFile(ctx, security.PurposeResume, upd.Resume, content.KeyResumeInvalid); err != nil {
			return nil, err
		}
		key := fmt.Sprintf("%s/%d-%s", c.ID, u.now().Unix(), imaging.SanitizeFilename(upd.Resume.Filename))
		url, err := u.blobs.Put(ctx, domain.BucketResumes, key, upd.Resume.ContentType, upd.Resume.Data)
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("upload resume: %w", err))
		}
		stored = append(stored, storedObject{domain.BucketResumes, key})
		c.ResumeURL = url
		c.ResumeFilename = upd.Resume.Filename
		c.ResumeText = u.extract(ctx, upd.Resume)
	}

	c.UpdatedAt = u.now()
	if err := u.repo.Update(ctx, c); err != nil {
		u.discard(ctx, stored)
		return nil, apperror.Internal(err)
	}
	return c, nil
}

func (u *candidateUsecase) GetByID(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	if err := requireRecruiter(ctx); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(candidateID); err != nil {
		return nil, fail(http.StatusNotFound, content.KeyErrCandidateNotFound)
	}
	c, err := u.repo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if c == nil {
		return nil, fail(http.StatusNotFound, content.KeyErrCandidateNotFound)
	}
	return c, nil
}

// List serves one page. Callers without an identity only get the first
// page.
func (u *candidateUsecase) List(ctx context.Context, filter domain.CandidateFilter) (*domain.ListingPage, error) {
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if _, ok := domain.IdentityFrom(ctx); !ok && filter.Offset > 0 {
		return nil, fail(http.StatusUnauthorized, content.KeyErrLoginRequired)
	}
	filter.Limit = domain.CandidatesPerPage

	items, total, err := u.repo.Search(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if items == nil {
		items = []domain.CandidateListing{}
	}
	return &domain.ListingPage{
		Candidates: items,
		TotalCount: total,
		HasMore:    int64(filter.Offset+domain.CandidatesPerPage) < total,
	}, nil
}

// signupDays is the width of the signup chart.
const signupDays = 7

func (u *candidateUsecase) Stats(ctx context.Context) (*domain.CandidateStats, error) {
	now := u.now().UTC()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(signupDays - 1))

	stats, err := u.repo.Stats(ctx, since)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	counts := make(map[string]int64, len(stats.DailySignups))
	for _, d := range stats.DailySignups {
		counts[d.Date] = d.Count
	}
	days := make([]domain.DailySignup, signupDays)
	for i := range days {
		date := since.AddDate(0, 0, i).Format(time.DateOnly)
		days[i] = domain.DailySignup{Date: date, Count: counts[date]}
	}
	stats.DailySignups = days
	return stats, nil
}

func (u *candidateUsecase) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	opts, err := u.repo.FilterOptions(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	opts.Locations = countries.Emirates
	opts.Experience = make([]string, len(domain.ExperienceBrackets))
	for i, b := range domain.ExperienceBrackets {
		opts.Experience[i] = string(b)
	}
	if opts.Nationalities == nil {
		opts.Nationalities = []string{}
	}
	if opts.Professions == nil {
		opts.Professions = []string{}
	}
	return opts, nil
}

func requireRecruiter(ctx context.Context) error {
	id, ok := domain.IdentityFrom(ctx)
	if !ok {
		return apperror.Unauthorized("User not authenticated")
	}
	if id.Role != domain.RoleRecruiter {
		return fail(http.StatusForbidden, content.KeyErrRecruiterOnly)
	}
	return nil
}
