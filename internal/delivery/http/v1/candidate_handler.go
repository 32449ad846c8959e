package v1

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"hireable-backend/internal/delivery/http/response"
	"hireable-backend/internal/domain"
	"hireable-backend/internal/wizard"
	"hireable-backend/pkg/apperror"
	"hireable-backend/pkg/content"

	"github.com/gin-gonic/gin"
)

// multipartMemory is how much of a form is buffered in memory before parts
// spill to temp files.
const multipartMemory = 8 << 20

// CandidateGuards are the per-route middlewares the router supplies. Nil
// entries are skipped.
type CandidateGuards struct {
	Candidate      gin.HandlerFunc
	Recruiter      gin.HandlerFunc
	Upload         gin.HandlerFunc
	MaxUploadBytes int64
}

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
	dict        *content.Dictionary
	maxUpload   int64
}

func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

func NewCandidateHandler(public, protected *gin.RouterGroup, candidateUC domain.CandidateUsecase, dict *content.Dictionary, g CandidateGuards) {
	handler := &CandidateHandler{candidateUC: candidateUC, dict: dict, maxUpload: g.MaxUploadBytes}

	// Directory routes work anonymously; a token unlocks pages past the first.
	publicCandidates := public.Group("/candidates")
	{
		publicCandidates.GET("/list", handler.List)
		publicCandidates.GET("/filters", handler.FilterOptions)
		publicCandidates.GET("/stats", handler.Stats)
	}

	candidates := protected.Group("/candidates")
	{
		candidates.POST("", chain(g.Candidate, g.Upload, handler.Submit)...)
		candidates.GET("/me", chain(g.Candidate, handler.GetOwnProfile)...)
		candidates.PATCH("/me", chain(g.Candidate, g.Upload, handler.UpdateOwnProfile)...)
		candidates.GET("/export", chain(g.Recruiter, handler.Export)...)
		candidates.GET("/:id", chain(g.Recruiter, handler.GetDetails)...)
	}
}

// filterFromQuery reads the canonical filter schema from the query string.
func filterFromQuery(c *gin.Context) (domain.CandidateFilter, error) {
	experience, err := domain.ParseExperienceBracket(c.Query("experience"))
	if err != nil {
		return domain.CandidateFilter{}, apperror.Localized(http.StatusBadRequest, content.KeyErrInvalidFilter, "Invalid filter value")
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return domain.CandidateFilter{
		Search:      strings.TrimSpace(c.Query("search")),
		Location:    strings.TrimSpace(c.Query("location")),
		Nationality: strings.TrimSpace(c.Query("nationality")),
		Experience:  experience,
		Profession:  strings.TrimSpace(c.Query("profession")),
		Offset:      offset,
	}, nil
}

// List godoc
// @Summary      List candidates
// @Description  One fixed-size page of the candidate directory. Anonymous callers only get the first page.
// @Tags         candidates
// @Produce      json
// @Param        search       query  string  false  "Free-text search"
// @Param        location     query  string  false  "Emirate"
// @Param        nationality  query  string  false  "Nationality"
// @Param        experience   query  string  false  "Experience bracket (0-3, 4-8, 8-12, 13+)"
// @Param        profession   query  string  false  "Profession"
// @Param        offset       query  int     false  "Offset"
// @Success      200  {object}  response.Response{data=domain.ListingPage}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /candidates/list [get]
func (h *CandidateHandler) List(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	page, err := h.candidateUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidates retrieved", page)
}

// FilterOptions godoc
// @Summary      Filter options
// @Description  Emirates, experience brackets and the nationalities and professions present
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.FilterOptions}
// @Router       /candidates/filters [get]
func (h *CandidateHandler) FilterOptions(c *gin.Context) {
	opts, err := h.candidateUC.FilterOptions(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Filter options", opts)
}

// Stats godoc
// @Summary      Directory statistics
// @Description  Totals and daily signups for the last 7 days
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CandidateStats}
// @Router       /candidates/stats [get]
func (h *CandidateHandler) Stats(c *gin.Context) {
	stats, err := h.candidateUC.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate statistics", stats)
}

// parseMultipart bounds the body and parses the form. Oversized bodies
// surface as *http.MaxBytesError for the error middleware.
func (h *CandidateHandler) parseMultipart(c *gin.Context) error {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return apperror.BadRequest("Invalid multipart form")
	}
	return nil
}

func formFile(form *multipart.Form, name string) (*domain.UploadedFile, error) {
	headers := form.File[name]
	if len(headers) == 0 {
		return nil, nil
	}
	fh := headers[0]
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return &domain.UploadedFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// splitSkills turns "a, b,,c" into [a b c].
func splitSkills(raw string) []string {
	var skills []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func optionalInt(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &n
}

func submissionFromForm(form *multipart.Form) (*domain.CandidateSubmission, error) {
	value := func(name string) string {
		if v := form.Value[name]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	age, _ := strconv.Atoi(value(wizard.FieldAge))
	sub := &domain.CandidateSubmission{
		FullName:          value(wizard.FieldFullName),
		Age:               age,
		Nationality:       value(wizard.FieldNationality),
		Location:          value(wizard.FieldLocation),
		Phone:             value(wizard.FieldPhone),
		Profession:        value(wizard.FieldProfession),
		JobTitle:          value(wizard.FieldJobTitle),
		YearsOfExperience: optionalInt(value(wizard.FieldYearsOfExperience)),
		Skills:            splitSkills(value(wizard.FieldSkills)),
		Bio:               value(wizard.FieldBio),
	}

	var err error
	parts := []struct {
		name string
		dst  **domain.UploadedFile
	}{
		{wizard.PartResume, &sub.Resume},
		{wizard.PartProfilePicture, &sub.ProfilePicture},
		{wizard.PartIntroductionVideo, &sub.IntroductionVideo},
		{wizard.PartIntroductionAudio, &sub.IntroductionAudio},
	}
	for _, p := range parts {
		if *p.dst, err = formFile(form, p.name); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

// Submit godoc
// @Summary      Submit candidate profile
// @Description  Create the caller's candidate profile from the onboarding wizard
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullName           formData  string  true   "Full name"
// @Param        age                formData  int     true   "Age"
// @Param        nationality        formData  string  true   "Nationality"
// @Param        location           formData  string  true   "Emirate"
// @Param        phone              formData  string  true   "Phone in international format"
// @Param        profession         formData  string  true   "Profession"
// @Param        jobTitle           formData  string  true   "Job title"
// @Param        yearsOfExperience  formData  int     true   "Years of experience"
// @Param        skills             formData  string  true   "Comma-separated skills"
// @Param        bio                formData  string  true   "Bio"
// @Param        resume             formData  file    true   "Resume (PDF or Word)"
// @Param        profilePicture     formData  file    true   "Profile picture"
// @Param        introductionVideo  formData  file    false  "Video introduction"
// @Param        introductionAudio  formData  file    false  "Audio introduction"
// @Success      201  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      413  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /candidates [post]
// @Security     BearerAuth
func (h *CandidateHandler) Submit(c *gin.Context) {
	if err := h.parseMultipart(c); err != nil {
		c.Error(err)
		return
	}
	defer c.Request.MultipartForm.RemoveAll()

	sub, err := submissionFromForm(c.Request.MultipartForm)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	candidate, err := h.candidateUC.Submit(c.Request.Context(), sub)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, h.message(c, content.KeyCompleteMessage, "Your profile is now visible to recruiters across the UAE."), candidate)
}

func (h *CandidateHandler) message(c *gin.Context, key content.Key, fallback string) string {
	if h.dict == nil {
		return fallback
	}
	return h.dict.Get(content.LocaleFrom(c.Request.Context()), key, nil)
}

// GetOwnProfile godoc
// @Summary      Get own profile
// @Description  The caller's candidate profile. Responds 404 with exists=false before onboarding.
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=OwnProfileResponse}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response{error=OwnProfileResponse}
// @Router       /candidates/me [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetOwnProfile(c *gin.Context) {
	profile, err := h.candidateUC.GetOwnProfile(c.Request.Context())
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusNotFound {
			msg := appErr.Message
			if h.dict != nil {
				msg = appErr.LocalizedMessage(h.dict.FromContext(c.Request.Context()))
			}
			response.Error(c, http.StatusNotFound, msg, OwnProfileResponse{Exists: false})
			return
		}
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate profile", OwnProfileResponse{Exists: true, Data: profile})
}

// OwnProfileResponse tells the dashboard whether onboarding is done.
type OwnProfileResponse struct {
	Exists bool              `json:"exists"`
	Data   *domain.Candidate `json:"data,omitempty"`
}

// UpdateProfileRequest is the JSON form of a profile edit.
type UpdateProfileRequest struct {
	Bio               *string  `json:"bio"`
	Skills            []string `json:"skills"`
	Phone             *string  `json:"phone"`
	Location          *string  `json:"location"`
	YearsOfExperience *int     `json:"years_of_experience"`
}

func updateFromForm(form *multipart.Form) (*domain.CandidateUpdate, error) {
	upd := &domain.CandidateUpdate{}
	optional := func(name string) *string {
		if v := form.Value[name]; len(v) > 0 {
			s := strings.TrimSpace(v[0])
			return &s
		}
		return nil
	}
	upd.Bio = optional(wizard.FieldBio)
	upd.Phone = optional(wizard.FieldPhone)
	upd.Location = optional(wizard.FieldLocation)
	if s := optional(wizard.FieldSkills); s != nil {
		upd.Skills = splitSkills(*s)
	}
	if s := optional(wizard.FieldYearsOfExperience); s != nil {
		upd.YearsOfExperience = optionalInt(*s)
	}

	var err error
	if upd.Resume, err = formFile(form, wizard.PartResume); err != nil {
		return nil, err
	}
	return upd, nil
}

// UpdateOwnProfile godoc
// @Summary      Update own profile
// @Description  Edit bio, skills, phone, location or years of experience, optionally replacing the resume
// @Tags         candidates
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        request  body      UpdateProfileRequest  false  "JSON edit"
// @Param        resume   formData  file                  false  "Replacement resume"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me [patch]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateOwnProfile(c *gin.Context) {
	var upd *domain.CandidateUpdate
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := h.parseMultipart(c); err != nil {
			c.Error(err)
			return
		}
		defer c.Request.MultipartForm.RemoveAll()

		var err error
		if upd, err = updateFromForm(c.Request.MultipartForm); err != nil {
			c.Error(apperror.Internal(err))
			return
		}
	} else {
		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest("Invalid request body"))
			return
		}
		upd = &domain.CandidateUpdate{
			Bio:               req.Bio,
			Skills:            req.Skills,
			Phone:             req.Phone,
			Location:          req.Location,
			YearsOfExperience: req.YearsOfExperience,
		}
	}

	candidate, err := h.candidateUC.UpdateOwnProfile(c.Request.Context(), upd)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", candidate)
}

// GetDetails godoc
// @Summary      Get candidate details
// @Description  Full profile with contact fields, for recruiters
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetDetails(c *gin.Context) {
	candidate, err := h.candidateUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate details", candidate)
}

var exportContentTypes = map[string]string{
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"csv":  "text/csv; charset=utf-8",
}

// Export godoc
// @Summary      Export candidates
// @Description  Download the filtered directory as a spreadsheet
// @Tags         candidates
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        format       query  string  false  "xlsx (default) or csv"
// @Param        search       query  string  false  "Free-text search"
// @Param        location     query  string  false  "Emirate"
// @Param        nationality  query  string  false  "Nationality"
// @Param        experience   query  string  false  "Experience bracket"
// @Param        profession   query  string  false  "Profession"
// @Success      200  {file}    file
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /candidates/export [get]
// @Security     BearerAuth
func (h *CandidateHandler) Export(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))
	data, filename, err := h.candidateUC.Export(c.Request.Context(), filter, format)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, exportContentTypes[format], data)
}
