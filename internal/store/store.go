// Package store implements PostgreSQL persistence for job postings.
// It is transport-agnostic: used by the HTTP handlers and the aggregator.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samsondavid381/NeedAJobdotCom/internal/model"
)

// ErrNotFound is returned when a job does not exist.
var ErrNotFound = errors.New("job not found")

// Store encapsulates all job table access.
type Store struct {
	pool *pgxpool.Pool
}

// New returns a configured Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ─── Schema ──────────────────────────────────────────────────────────────────

// EnsureSchema creates the jobs table and its indexes when missing.
//
// The partial unique index on (external_id, source) backs the dedup
// invariant: the aggregator checks before inserting, and the index catches
// any race between overlapping ingestion runs.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS jobs (
			id            SERIAL PRIMARY KEY,
			title         VARCHAR(200) NOT NULL,
			company       VARCHAR(200) NOT NULL,
			company_logo  TEXT,
			description   TEXT NOT NULL,
			location      VARCHAR(100) NOT NULL,
			is_remote     BOOLEAN NOT NULL DEFAULT FALSE,
			salary        TEXT,
			job_type      VARCHAR(20) NOT NULL,
			category      VARCHAR(50) NOT NULL,
			tags          TEXT[] NOT NULL DEFAULT '{}',
			apply_url     TEXT,
			source        VARCHAR(50) NOT NULL,
			is_active     BOOLEAN NOT NULL DEFAULT TRUE,
			posted_date   TIMESTAMPTZ NOT NULL,
			expires_date  TIMESTAMPTZ,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			external_id   VARCHAR(100)
		);
		CREATE UNIQUE INDEX IF NOT EXISTS jobs_external_id_source_uq
			ON jobs (external_id, source) WHERE external_id IS NOT NULL;
		CREATE INDEX IF NOT EXISTS jobs_posted_date_idx ON jobs (posted_date DESC);
		CREATE INDEX IF NOT EXISTS jobs_category_idx ON jobs (category);`

	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// ─── Ingestion support ───────────────────────────────────────────────────────

// Exists reports whether a job with the given (externalID, source) pair is
// already stored. This pair is the sole dedup key — title or company
// similarity is never consulted.
func (s *Store) Exists(ctx context.Context, externalID, source string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM jobs WHERE external_id = $1 AND source = $2)`,
		externalID, source,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists query: %w", err)
	}
	return exists, nil
}

// Create inserts job and fills in the store-assigned ID.
func (s *Store) Create(ctx context.Context, job *model.Job) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, company, company_logo, description, location,
		                   is_remote, salary, job_type, category, tags, apply_url,
		                   source, is_active, posted_date, expires_date,
		                   created_at, updated_at, external_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		 RETURNING id`,
		job.Title, job.Company, job.CompanyLogo, job.Description, job.Location,
		job.IsRemote, job.Salary, string(job.Type), job.Category, job.Tags, job.ApplyURL,
		job.Source, job.IsActive, job.PostedDate, job.ExpiresDate,
		job.CreatedAt, job.UpdatedAt, job.ExternalID,
	).Scan(&job.ID)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// ─── Listing ─────────────────────────────────────────────────────────────────

const jobColumns = `id, title, company, company_logo, description, location,
	is_remote, salary, job_type, category, tags, apply_url, source,
	is_active, posted_date, expires_date, created_at, updated_at, external_id`

// List returns active jobs matching filter, newest first, paginated.
func (s *Store) List(ctx context.Context, filter model.JobFilter) (*model.JobList, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	where, args := buildFilter(filter)

	var totalCount int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs `+where, args...,
	).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	args = append(args, filter.PageSize, offset)
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM jobs %s ORDER BY posted_date DESC LIMIT $%d OFFSET $%d`,
			jobColumns, where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	now := time.Now().UTC()
	jobs := make([]model.JobResponse, 0, filter.PageSize)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		jobs = append(jobs, toResponse(job, now, true))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}

	return &model.JobList{
		Jobs:       jobs,
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(filter.PageSize))),
	}, nil
}

// buildFilter assembles the WHERE clause for List. Always restricted to
// active jobs; category "all" means no category filter; location "remote"
// also matches the remote flag.
func buildFilter(filter model.JobFilter) (string, []any) {
	clauses := []string{"is_active = TRUE"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" && filter.Category != "all" {
		clauses = append(clauses, fmt.Sprintf("LOWER(category) = LOWER(%s)", arg(filter.Category)))
	}

	if filter.Location != "" {
		p := arg("%" + strings.ToLower(filter.Location) + "%")
		clause := fmt.Sprintf("LOWER(location) LIKE %s", p)
		if strings.EqualFold(filter.Location, "remote") {
			clause = "(" + clause + " OR is_remote)"
		}
		clauses = append(clauses, clause)
	}

	if filter.Type != "" {
		if t, err := model.ParseJobType(filter.Type); err == nil {
			clauses = append(clauses, fmt.Sprintf("job_type = %s", arg(string(t))))
		}
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		clauses = append(clauses, fmt.Sprintf("(title ILIKE %s OR company ILIKE %s OR description ILIKE %s)", p, p, p))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

// GetByID returns a single job with the full description.
func (s *Store) GetByID(ctx context.Context, id int) (*model.JobResponse, error) {
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM jobs WHERE id = $1`, jobColumns), id)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get job %d: %w", id, err)
	}

	resp := toResponse(job, time.Now().UTC(), false)
	return &resp, nil
}

// ─── Facets ──────────────────────────────────────────────────────────────────

// Categories returns the distinct categories of active jobs, sorted.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "category")
}

// Locations returns the distinct locations of active jobs, sorted.
func (s *Store) Locations(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "location")
}

func (s *Store) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT DISTINCT %s FROM jobs WHERE is_active = TRUE ORDER BY %s`, column, column))
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("distinct %s scan: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// ─── Stats ───────────────────────────────────────────────────────────────────

// CountBucket is one (label, count) aggregation row.
type CountBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Stats summarises the active job inventory.
type Stats struct {
	TotalJobs      int           `json:"totalJobs"`
	JobsByCategory []CountBucket `json:"jobsByCategory"`
	JobsByType     []CountBucket `json:"jobsByType"`
	RemoteJobs     int           `json:"remoteJobs"`
	RecentJobs     int           `json:"recentJobs"`
}

// GetStats aggregates totals, per-category and per-type counts, the remote
// count, and postings from the last 7 days.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE is_remote),
		        COUNT(*) FILTER (WHERE posted_date > NOW() - INTERVAL '7 days')
		 FROM jobs WHERE is_active = TRUE`,
	).Scan(&st.TotalJobs, &st.RemoteJobs, &st.RecentJobs)
	if err != nil {
		return nil, fmt.Errorf("stats totals: %w", err)
	}

	st.JobsByCategory, err = s.countBuckets(ctx, "category")
	if err != nil {
		return nil, err
	}
	st.JobsByType, err = s.countBuckets(ctx, "job_type")
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) countBuckets(ctx context.Context, column string) ([]CountBucket, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s, COUNT(*) FROM jobs WHERE is_active = TRUE
		             GROUP BY %s ORDER BY COUNT(*) DESC`, column, column))
	if err != nil {
		return nil, fmt.Errorf("stats by %s: %w", column, err)
	}
	defer rows.Close()

	buckets := make([]CountBucket, 0)
	for rows.Next() {
		var b CountBucket
		if err := rows.Scan(&b.Label, &b.Count); err != nil {
			return nil, fmt.Errorf("stats by %s scan: %w", column, err)
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// ─── Row helpers ─────────────────────────────────────────────────────────────

func scanJob(row pgx.Row) (model.Job, error) {
	var (
		job     model.Job
		jobType string
	)
	err := row.Scan(
		&job.ID, &job.Title, &job.Company, &job.CompanyLogo, &job.Description,
		&job.Location, &job.IsRemote, &job.Salary, &jobType, &job.Category,
		&job.Tags, &job.ApplyURL, &job.Source, &job.IsActive, &job.PostedDate,
		&job.ExpiresDate, &job.CreatedAt, &job.UpdatedAt, &job.ExternalID,
	)
	if err != nil {
		return model.Job{}, err
	}
	job.Type = model.JobType(jobType)
	return job, nil
}

// toResponse converts a row to the client shape. List responses carry a
// 200-character description summary; detail responses keep the full text.
func toResponse(job model.Job, now time.Time, summarise bool) model.JobResponse {
	description := job.Description
	if r := []rune(description); summarise && len(r) > 200 {
		description = string(r[:200]) + "..."
	}
	return model.JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Company:     job.Company,
		CompanyLogo: job.CompanyLogo,
		Description: description,
		Location:    job.Location,
		IsRemote:    job.IsRemote,
		Salary:      job.Salary,
		Type:        string(job.Type),
		Category:    job.Category,
		Tags:        job.Tags,
		ApplyURL:    job.ApplyURL,
		Source:      job.Source,
		PostedDate:  job.PostedDate,
		PostedAgo:   model.TimeAgo(job.PostedDate, now),
	}
}
