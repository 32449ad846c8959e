package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hireable-backend/internal/domain"
	"hireable-backend/pkg/apperror"
	"hireable-backend/pkg/content"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

type candidateRepo struct {
	db DB
}

func NewCandidateRepository(db DB) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

const candidateColumns = `c.id, c.user_email, c.email, c.full_name, c.age, c.nationality, c.location, c.phone,
	c.profession, c.job_title, c.years_of_experience, c.skills, c.bio,
	c.resume_url, c.resume_filename, c.resume_text, c.profile_picture_url,
	COALESCE(c.introduction_video_url, ''), COALESCE(c.introduction_audio_url, ''),
	c.created_at, c.updated_at`

const listingColumns = `c.id, c.full_name, c.bio, c.location, c.nationality, c.years_of_experience,
	c.skills, c.profile_picture_url, c.profession, c.job_title, c.created_at`

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(
		&c.ID, &c.UserEmail, &c.Email, &c.FullName, &c.Age, &c.Nationality, &c.Location, &c.Phone,
		&c.Profession, &c.JobTitle, &c.YearsOfExperience, pq.Array(&c.Skills), &c.Bio,
		&c.ResumeURL, &c.ResumeFilename, &c.ResumeText, &c.ProfilePictureURL,
		&c.IntroductionVideoURL, &c.IntroductionAudioURL,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *candidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	query := `INSERT INTO candidates (
		id, user_email, email, full_name, age, nationality, location, phone,
		profession, job_title, years_of_experience, skills, bio,
		resume_url, resume_filename, resume_text, profile_picture_url,
		introduction_video_url, introduction_audio_url, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err := r.db.Exec(ctx, query,
		c.ID, c.UserEmail, c.Email, c.FullName, c.Age, c.Nationality, c.Location, c.Phone,
		c.Profession, c.JobTitle, c.YearsOfExperience, pq.Array(c.Skills), c.Bio,
		c.ResumeURL, c.ResumeFilename, c.ResumeText, c.ProfilePictureURL,
		nullable(c.IntroductionVideoURL), nullable(c.IntroductionAudioURL), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Localized(http.StatusConflict, content.KeyErrProfileExists, "You have already created a profile")
		}
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

func (r *candidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	query := `UPDATE candidates SET
		bio = $2, skills = $3, phone = $4, location = $5, years_of_experience = $6,
		resume_url = $7, resume_filename = $8, resume_text = $9, updated_at = $10
	WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		c.ID, c.Bio, pq.Array(c.Skills), c.Phone, c.Location, c.YearsOfExperience,
		c.ResumeURL, c.ResumeFilename, c.ResumeText, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.Localized(http.StatusNotFound, content.KeyErrProfileNotFound, "Profile not found")
	}
	return nil
}

func (r *candidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates c WHERE c.id = $1`
	c, err := scanCandidate(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *candidateRepo) GetByUserEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates c WHERE c.user_email = $1`
	c, err := scanCandidate(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// likeEscaper escapes LIKE metacharacters so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildCandidateWhere renders the filter as a WHERE clause with numbered
// placeholders starting at $1.
func buildCandidateWhere(filter domain.CandidateFilter) (string, []interface{}) {
	var conditions []string
	args := []interface{}{}
	argIndex := 1

	if s := strings.TrimSpace(filter.Search); s != "" {
		p := fmt.Sprintf("$%d", argIndex)
		conditions = append(conditions, fmt.Sprintf(`(c.full_name ILIKE %[1]s OR c.location ILIKE %[1]s
			OR c.profession ILIKE %[1]s OR c.job_title ILIKE %[1]s OR c.resume_text ILIKE %[1]s
			OR EXISTS (SELECT 1 FROM unnest(c.skills) AS skill WHERE skill ILIKE %[1]s))`, p))
		args = append(args, "%"+likeEscaper.Replace(s)+"%")
		argIndex++
	}

	if filter.Location != "" {
		conditions = append(conditions, fmt.Sprintf("c.location = $%d", argIndex))
		args = append(args, filter.Location)
		argIndex++
	}

	if filter.Nationality != "" {
		conditions = append(conditions, fmt.Sprintf("c.nationality = $%d", argIndex))
		args = append(args, filter.Nationality)
		argIndex++
	}

	if filter.Profession != "" {
		conditions = append(conditions, fmt.Sprintf("c.profession ILIKE $%d", argIndex))
		args = append(args, likeEscaper.Replace(filter.Profession))
		argIndex++
	}

	if filter.Experience != domain.ExperienceAny {
		min, max := filter.Experience.Bounds()
		if max < 0 {
			conditions = append(conditions, fmt.Sprintf("c.years_of_experience >= $%d", argIndex))
			args = append(args, min)
		} else {
			conditions = append(conditions, fmt.Sprintf("c.years_of_experience BETWEEN $%d AND $%d", argIndex, argIndex+1))
			args = append(args, min, max)
		}
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *candidateRepo) Search(ctx context.Context, filter domain.CandidateFilter) ([]domain.CandidateListing, int64, error) {
	where, args := buildCandidateWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM candidates c "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count candidates: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.CandidatesPerPage
	}
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM candidates c %s ORDER BY c.created_at DESC, c.id LIMIT $%d OFFSET $%d`,
		listingColumns, where, n+1, n+2)
	rows, err := r.db.Query(ctx, query, append(args, limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("search candidates: %w", err)
	}
	defer rows.Close()

	items := make([]domain.CandidateListing, 0, limit)
	for rows.Next() {
		var l domain.CandidateListing
		if err := rows.Scan(&l.ID, &l.FullName, &l.Bio, &l.Location, &l.Nationality, &l.YearsOfExperience,
			pq.Array(&l.Skills), &l.ProfilePictureURL, &l.Profession, &l.JobTitle, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, l)
	}
	return items, total, rows.Err()
}

func (r *candidateRepo) SearchFull(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	where, args := buildCandidateWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM candidates c %s ORDER BY c.created_at DESC, c.id LIMIT $%d`,
		candidateColumns, where, len(args)+1)

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.CandidatesPerPage
	}
	rows, err := r.db.Query(ctx, query, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *candidateRepo) Stats(ctx context.Context, since time.Time) (*domain.CandidateStats, error) {
	stats := &domain.CandidateStats{}
	err := r.db.QueryRow(ctx, `SELECT
		(SELECT COUNT(*) FROM candidates),
		(SELECT COUNT(DISTINCT lower(skill)) FROM candidates, unnest(skills) AS skill),
		(SELECT COUNT(DISTINCT location) FROM candidates)`,
	).Scan(&stats.TotalCandidates, &stats.TotalSkills, &stats.TotalLocations)
	if err != nil {
		return nil, fmt.Errorf("candidate totals: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT to_char(date_trunc('day', created_at AT TIME ZONE 'UTC'), 'YYYY-MM-DD') AS day, COUNT(*)
		FROM candidates WHERE created_at >= $1 GROUP BY day ORDER BY day`, since)
	if err != nil {
		return nil, fmt.Errorf("daily signups: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d domain.DailySignup
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		stats.DailySignups = append(stats.DailySignups, d)
	}
	return stats, rows.Err()
}

func (r *candidateRepo) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	nationalities, err := r.distinct(ctx, "nationality")
	if err != nil {
		return nil, err
	}
	professions, err := r.distinct(ctx, "profession")
	if err != nil {
		return nil, err
	}
	return &domain.FilterOptions{Nationalities: nationalities, Professions: professions}, nil
}

// distinct lists the non-empty values of a fixed column.
func (r *candidateRepo) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(
		`SELECT DISTINCT %[1]s FROM candidates WHERE %[1]s <> '' ORDER BY %[1]s`, column))
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
