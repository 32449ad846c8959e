package usecase_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"
	"time"

	"hireable-backend/internal/domain"
	"hireable-backend/internal/usecase"
	"hireable-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Mock Repositories
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) GetByUserEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Search(ctx context.Context, f domain.CandidateFilter) ([]domain.CandidateListing, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]domain.CandidateListing)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockCandidateRepo) SearchFull(ctx context.Context, f domain.CandidateFilter) ([]domain.Candidate, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]domain.Candidate)
	return items, args.Error(1)
}

func (m *MockCandidateRepo) Stats(ctx context.Context, since time.Time) (*domain.CandidateStats, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateStats), args.Error(1)
}

func (m *MockCandidateRepo) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FilterOptions), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, b domain.Bucket, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, b, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, b domain.Bucket, key string) error {
	return m.Called(ctx, b, key).Error(0)
}

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) ExtractText(ctx context.Context, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, contentType)
	return args.String(0), args.Error(1)
}

func assertAppError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func candidateCtx() context.Context {
	return domain.WithIdentity(context.Background(), domain.Identity{
		Subject: "sub-1", Email: "jane@example.com", Name: "Jane Doe", Role: domain.RoleCandidate,
	})
}

func recruiterCtx() context.Context {
	return domain.WithIdentity(context.Background(), domain.Identity{
		Subject: "sub-2", Email: "hr@example.com", Name: "Hiring Team", Role: domain.RoleRecruiter,
	})
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		img.Set(x, x%30, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func validSubmission(t *testing.T) *domain.CandidateSubmission {
	years := 6
	return &domain.CandidateSubmission{
		FullName:          "Jane Doe",
		Age:               29,
		Nationality:       "Jordan",
		Location:          "Dubai",
		Phone:             "+971501234567",
		Profession:        "Software Engineer",
		JobTitle:          "Backend Developer",
		YearsOfExperience: &years,
		Skills:            []string{"Go", "PostgreSQL", "Kubernetes"},
		Bio:               "Backend engineer with six years of experience building APIs in Dubai.",
		Resume:            &domain.UploadedFile{Filename: "cv.pdf", Data: []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n")},
		ProfilePicture:    &domain.UploadedFile{Filename: "me.png", Data: pngBytes(t)},
	}
}

func TestCandidateSubmit(t *testing.T) {
	t.Run("Should reject callers without an identity or candidate role", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: new(MockCandidateRepo), Blobs: new(MockBlobStore)})

		_, err := uc.Submit(context.Background(), validSubmission(t))
		assertAppError(t, err, http.StatusUnauthorized, "User not authenticated")

		_, err = uc.Submit(recruiterCtx(), validSubmission(t))
		assertAppError(t, err, http.StatusForbidden, "Only candidates can create a profile")
	})

	t.Run("Should return the localized message of the first failing rule", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: new(MockCandidateRepo), Blobs: new(MockBlobStore)})

		sub := validSubmission(t)
		sub.Age = 10
		_, err := uc.Submit(candidateCtx(), sub)
		assertAppError(t, err, http.StatusBadRequest, "Age must be between 12 and 99")

		sub = validSubmission(t)
		sub.Bio = "Too short to describe a career, only forty-nine c"
		require.Len(t, sub.Bio, 49)
		_, err = uc.Submit(candidateCtx(), sub)
		assertAppError(t, err, http.StatusBadRequest, "Bio must be at least 50 characters")
	})

	t.Run("Should require resume and picture and keep introductions exclusive", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: new(MockCandidateRepo), Blobs: new(MockBlobStore)})

		sub := validSubmission(t)
		sub.Resume = nil
		_, err := uc.Submit(candidateCtx(), sub)
		assertAppError(t, err, http.StatusBadRequest, "Please upload your resume")

		sub = validSubmission(t)
		sub.Resume.Filename = "cv.exe"
		_, err = uc.Submit(candidateCtx(), sub)
		assertAppError(t, err, http.StatusBadRequest, "Resume must be a PDF, DOC or DOCX file up to 5MB")

		sub = validSubmission(t)
		sub.ProfilePicture = nil
		_, err = uc.Submit(candidateCtx(), sub)
		assertAppError(t, err, http.StatusBadRequest, "Profile picture is required")

		sub = validSubmission(t)
		sub.IntroductionVideo = &domain.UploadedFile{Filename: "introduction.webm", Data: []byte{1}}
		sub.IntroductionAudio = &domain.UploadedFile{Filename: "audio-introduction.webm", Data: []byte{1}}
		_, err = uc.Submit(candidateCtx(), sub)
		assertAppError(t, err, http.StatusBadRequest, "Choose either a video or an audio introduction, not both")
	})

	t.Run("Should reject oversize uploads with 413", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: new(MockCandidateRepo), Blobs: new(MockBlobStore)})
		sub := validSubmission(t)
		sub.Resume.Data = append([]byte("%PDF-1.7\n"), make([]byte, 6<<20)...)
		_, err := uc.Submit(candidateCtx(), sub)
		assertAppError(t, err, http.StatusRequestEntityTooLarge, "")
	})

	t.Run("Should return conflict when a profile already exists", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetByUserEmail", mock.Anything, "jane@example.com").Return(&domain.Candidate{ID: "c-0"}, nil)
		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: repo, Blobs: new(MockBlobStore)})

		_, err := uc.Submit(candidateCtx(), validSubmission(t))
		assertAppError(t, err, http.StatusConflict, "You have already created a profile")
	})

	t.Run("Should store files, extract resume text and persist the candidate", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		blobs := new(MockBlobStore)
		text := new(MockExtractor)
		now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

		repo.On("GetByUserEmail", mock.Anything, "jane@example.com").Return(nil, nil)
		blobs.On("Put", mock.Anything, domain.BucketProfilePictures, mock.AnythingOfType("string"), "image/jpeg").
			Return("https://cdn.example.com/pic.jpg", nil)
		blobs.On("Put", mock.Anything, domain.BucketResumes, mock.AnythingOfType("string"), "application/pdf").
			Return("https://cdn.example.com/cv.pdf", nil)
		text.On("ExtractText", mock.Anything, "application/pdf").Return("golang postgres", nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Candidate) bool {
			return c.UserEmail == "jane@example.com" && c.ResumeText == "golang postgres" &&
				c.ProfilePictureURL == "https://cdn.example.com/pic.jpg" && c.YearsOfExperience == 6 &&
				c.CreatedAt.Equal(now)
		})).Return(nil)

		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{
			Repo: repo, Blobs: blobs, Text: text, Now: func() time.Time { return now },
		})
		c, err := uc.Submit(candidateCtx(), validSubmission(t))

		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, "https://cdn.example.com/cv.pdf", c.ResumeURL)
		assert.Empty(t, c.IntroductionVideoURL)
		repo.AssertExpectations(t)
		blobs.AssertExpectations(t)
	})

	t.Run("Should remove uploaded files when persisting fails", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		blobs := new(MockBlobStore)

		repo.On("GetByUserEmail", mock.Anything, "jane@example.com").Return(nil, nil)
		blobs.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("https://cdn.example.com/x", nil)
		blobs.On("Delete", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: repo, Blobs: blobs})
		_, err := uc.Submit(candidateCtx(), validSubmission(t))

		assertAppError(t, err, http.StatusInternalServerError, "")
		blobs.AssertNumberOfCalls(t, "Delete", 2)
	})
}

func TestCandidateList(t *testing.T) {
	page := []domain.CandidateListing{{ID: "a"}, {ID: "b"}}

	t.Run("Should serve only the first page to anonymous callers", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: repo, Blobs: new(MockBlobStore)})

		_, err := uc.List(context.Background(), domain.CandidateFilter{Offset: 12})
		assertAppError(t, err, http.StatusUnauthorized, "Sign in to see more candidates")
		repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("Should fix the page size and derive hasMore from the offset", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("Search", mock.Anything, mock.MatchedBy(func(f domain.CandidateFilter) bool {
			return f.Limit == domain.CandidatesPerPage && f.Offset == 0 && f.Search == "go"
		})).Return(page, int64(14), nil)
		repo.On("Search", mock.Anything, mock.MatchedBy(func(f domain.CandidateFilter) bool {
			return f.Offset == 12
		})).Return(page, int64(14), nil)
		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: repo, Blobs: new(MockBlobStore)})

		first, err := uc.List(context.Background(), domain.CandidateFilter{Search: "go", Limit: 500})
		require.NoError(t, err)
		assert.True(t, first.HasMore)
		assert.Equal(t, int64(14), first.TotalCount)

		second, err := uc.List(recruiterCtx(), domain.CandidateFilter{Search: "go", Offset: 12})
		require.NoError(t, err)
		assert.False(t, second.HasMore)
	})

	t.Run("Should return an empty slice rather than nil", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("Search", mock.Anything, mock.Anything).Return(nil, int64(0), nil)
		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: repo, Blobs: new(MockBlobStore)})

		res, err := uc.List(context.Background(), domain.CandidateFilter{Offset: -3})
		require.NoError(t, err)
		assert.NotNil(t, res.Candidates)
		assert.False(t, res.HasMore)
	})
}

func TestCandidateDetail(t *testing.T) {
	id := "7f1c2d1e-6d7a-4f38-9a55-1c0b0e8d2a10"

	t.Run("Should be recruiter only", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: new(MockCandidateRepo), Blobs: new(MockBlobStore)})
		_, err := uc.GetByID(candidateCtx(), id)
		assertAppError(t, err, http.StatusForbidden, "Only recruiters can access this resource")
	})

	t.Run("Should return not found for malformed and unknown ids", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetByID", mock.Anything, id).Return(nil, nil)
		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: repo, Blobs: new(MockBlobStore)})

		_, err := uc.GetByID(recruiterCtx(), "not-a-uuid")
		assertAppError(t, err, http.StatusNotFound, "Candidate not found")

		_, err = uc.GetByID(recruiterCtx(), id)
		assertAppError(t, err, http.StatusNotFound, "Candidate not found")
	})

	t.Run("Should surface repository failures as internal errors", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetByID", mock.Anything, id).Return(nil, errors.New("timeout"))
		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: repo, Blobs: new(MockBlobStore)})

		_, err := uc.GetByID(recruiterCtx(), id)
		assertAppError(t, err, http.StatusInternalServerError, "Internal Server Error")
	})
}

func TestCandidateOwnProfile(t *testing.T) {
	t.Run("Should report a missing profile as not found", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetByUserEmail", mock.Anything, "jane@example.com").Return(nil, nil)
		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: repo, Blobs: new(MockBlobStore)})

		_, err := uc.GetOwnProfile(candidateCtx())
		assertAppError(t, err, http.StatusNotFound, "Profile not found")
	})

	t.Run("Should apply only the provided fields", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		existing := &domain.Candidate{ID: "c-1", Bio: "old", Location: "Dubai", Skills: []string{"a", "b", "c"}}
		repo.On("GetByUserEmail", mock.Anything, "jane@example.com").Return(existing, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Candidate) bool {
			return c.Location == "Sharjah" && c.Bio == "old"
		})).Return(nil)
		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: repo, Blobs: new(MockBlobStore)})

		loc := "Sharjah"
		c, err := uc.UpdateOwnProfile(candidateCtx(), &domain.CandidateUpdate{Location: &loc})
		require.NoError(t, err)
		assert.Equal(t, "Sharjah", c.Location)
		repo.AssertExpectations(t)
	})

	t.Run("Should reject an invalid edit", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetByUserEmail", mock.Anything, "jane@example.com").Return(&domain.Candidate{ID: "c-1"}, nil)
		uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: repo, Blobs: new(MockBlobStore)})

		loc := "Paris"
		_, err := uc.UpdateOwnProfile(candidateCtx(), &domain.CandidateUpdate{Location: &loc})
		assertAppError(t, err, http.StatusBadRequest, "Please select an emirate")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCandidateStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	since := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	repo := new(MockCandidateRepo)
	repo.On("Stats", mock.Anything, since).Return(&domain.CandidateStats{
		TotalCandidates: 14,
		DailySignups:    []domain.DailySignup{{Date: "2026-03-05", Count: 3}, {Date: "2026-03-10", Count: 1}},
	}, nil)
	uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: repo, Blobs: new(MockBlobStore), Now: func() time.Time { return now }})

	stats, err := uc.Stats(context.Background())

	require.NoError(t, err)
	require.Len(t, stats.DailySignups, 7)
	assert.Equal(t, domain.DailySignup{Date: "2026-03-04", Count: 0}, stats.DailySignups[0])
	assert.Equal(t, int64(3), stats.DailySignups[1].Count)
	assert.Equal(t, domain.DailySignup{Date: "2026-03-10", Count: 1}, stats.DailySignups[6])
}

func TestCandidateFilterOptions(t *testing.T) {
	repo := new(MockCandidateRepo)
	repo.On("FilterOptions", mock.Anything).Return(&domain.FilterOptions{Professions: []string{"Nurse"}}, nil)
	uc := usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: repo, Blobs: new(MockBlobStore)})

	opts, err := uc.FilterOptions(context.Background())

	require.NoError(t, err)
	assert.Len(t, opts.Locations, 7)
	assert.Equal(t, []string{"0-3", "4-8", "8-12", "13+"}, opts.Experience)
	assert.NotNil(t, opts.Nationalities)
	assert.Equal(t, []string{"Nurse"}, opts.Professions)
}

func TestCandidateExport(t *testing.T) {
	rows := []domain.Candidate{{
		FullName: "Jane Doe", Email: "jane@example.com", Age: 29, Location: "Dubai",
		Skills: []string{"Go", "SQL"}, CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}}
	newUC := func() domain.CandidateUsecase {
		repo := new(MockCandidateRepo)
		repo.On("SearchFull", mock.Anything, mock.MatchedBy(func(f domain.CandidateFilter) bool {
			return f.Location == "Dubai" && f.Limit == usecase.MaxExportRows
		})).Return(rows, nil)
		return usecase.NewCandidateUsecase(usecase.CandidateDeps{Repo: repo, Blobs: new(MockBlobStore)})
	}

	t.Run("Should export CSV with a header row", func(t *testing.T) {
		data, name, err := newUC().Export(recruiterCtx(), domain.CandidateFilter{Location: "Dubai"}, "csv")
		require.NoError(t, err)
		assert.Contains(t, name, ".csv")

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "FULL NAME", records[0][0])
		assert.Equal(t, "Jane Doe", records[1][0])
		assert.Equal(t, "Go, SQL", records[1][9])
	})

	t.Run("Should export a readable workbook by default", func(t *testing.T) {
		data, name, err := newUC().Export(recruiterCtx(), domain.CandidateFilter{Location: "Dubai"}, "")
		require.NoError(t, err)
		assert.Contains(t, name, ".xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()
		v, err := f.GetCellValue("Candidates", "A2")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", v)
	})

	t.Run("Should reject unknown formats and non-recruiters", func(t *testing.T) {
		_, _, err := newUC().Export(recruiterCtx(), domain.CandidateFilter{}, "pdf")
		assertAppError(t, err, http.StatusBadRequest, "")

		_, _, err = newUC().Export(candidateCtx(), domain.CandidateFilter{}, "csv")
		assertAppError(t, err, http.StatusForbidden, "")
	})
}

func TestRoleResolveSignIn(t *testing.T) {
	t.Run("Should assign the intended role on first sign-in", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleCandidate && u.Name == "Jane Doe"
		})).Return(nil)
		uc := usecase.NewRoleUsecase(repo, nil)

		d, err := uc.ResolveSignIn(candidateCtx(), domain.RoleCandidate, "/onboarding")
		require.NoError(t, err)
		assert.Equal(t, &domain.SignInDecision{Redirect: "/onboarding", Role: domain.RoleCandidate, Assigned: true}, d)
		repo.AssertExpectations(t)
	})

	t.Run("Should turn away a role mismatch in either direction", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{Role: domain.RoleCandidate}, nil)
		repo.On("GetByEmail", mock.Anything, "hr@example.com").Return(&domain.User{Role: domain.RoleRecruiter}, nil)
		uc := usecase.NewRoleUsecase(repo, nil)

		d, err := uc.ResolveSignIn(candidateCtx(), domain.RoleRecruiter, "/dashboard")
		require.NoError(t, err)
		assert.Equal(t, "/unauthorized", d.Redirect)

		d, err = uc.ResolveSignIn(recruiterCtx(), domain.RoleCandidate, "/onboarding")
		require.NoError(t, err)
		assert.Equal(t, "/access-denied", d.Redirect)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should keep redirects on site", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "hr@example.com").Return(&domain.User{Role: domain.RoleRecruiter}, nil)
		uc := usecase.NewRoleUsecase(repo, nil)

		d, err := uc.ResolveSignIn(recruiterCtx(), domain.RoleRecruiter, "https://evil.example.com")
		require.NoError(t, err)
		assert.Equal(t, "/", d.Redirect)

		d, err = uc.ResolveSignIn(context.Background(), domain.RoleRecruiter, "/dashboard")
		require.NoError(t, err)
		assert.Equal(t, "/", d.Redirect)
	})
}

func TestRoleAssign(t *testing.T) {
	t.Run("Should refuse a second role", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{Role: domain.RoleCandidate}, nil)
		uc := usecase.NewRoleUsecase(repo, nil)

		err := uc.AssignCurrentRole(candidateCtx(), domain.RoleRecruiter)
		assertAppError(t, err, http.StatusConflict, "User already has a role")
	})

	t.Run("Should reject unknown roles", func(t *testing.T) {
		uc := usecase.NewRoleUsecase(new(MockUserRepo), nil)
		err := uc.AssignRole(context.Background(), "a@b.co", "A", domain.Role("admin"))
		assertAppError(t, err, http.StatusBadRequest, "Role must be either candidate or recruiter")
	})

	t.Run("Should report no role for unknown users", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
		role, err := usecase.NewRoleUsecase(repo, nil).CurrentRole(candidateCtx())
		require.NoError(t, err)
		assert.Equal(t, domain.RoleNone, role)
	})
}
