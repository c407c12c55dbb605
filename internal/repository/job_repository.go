package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/domain/job"
)

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	GetByID(ctx context.Context, id int64) (job.Job, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ListAll(ctx context.Context) ([]job.Job, error)
	ListFiltered(ctx context.Context, f JobListFilter) ([]job.Job, int, error)
}

// JobListFilter narrows the jobs table. Zero values mean "no filter".
type JobListFilter struct {
	// SearchTerms must each match title, description or company.
	SearchTerms  []string
	Title        string
	JobTypes     []string
	Location     string
	Salary       *float64
	Currency     string
	MinSalary    *float64
	CreatedAfter *time.Time

	Limit  int
	Offset int
}

const jobColumns = `id, title, company, location, job_type, description, salary, currency, jdata, logo, created_at`

type PostgresJobRepository struct {
	db database.Querier
}

func NewPostgresJobRepository(db database.Querier) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	var meta []byte
	if len(j.Metadata) > 0 {
		meta = []byte(j.Metadata)
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (title, company, location, job_type, description, salary, currency, jdata, logo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		j.Title, j.Company, j.Location, string(j.Type), j.Description, j.Salary, string(j.Currency), meta, j.Logo,
	)
	if err := row.Scan(&j.ID, &j.CreatedAt); err != nil {
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id int64) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) ListAll(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) ListFiltered(ctx context.Context, f JobListFilter) ([]job.Job, int, error) {
	where, args := buildJobWhere(f)

	var total int
	row := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM jobs`+where, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []job.Job{}, 0, nil
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	pageArgs := append(append([]any{}, args...), limit, offset)
	q := fmt.Sprintf(
		`SELECT %s FROM jobs%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		jobColumns, where, len(args)+1, len(args)+2,
	)
	rows, err := r.db.Query(ctx, q, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	items, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// buildJobWhere renders f as a WHERE clause (with a leading space) and its
// positional arguments.
func buildJobWhere(f JobListFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	for _, term := range f.SearchTerms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		add(`(title ILIKE $%[1]d OR description ILIKE $%[1]d OR company ILIKE $%[1]d)`, containsPattern(term))
	}
	if t := strings.TrimSpace(f.Title); t != "" {
		add(`title ILIKE $%d`, containsPattern(t))
	}
	if len(f.JobTypes) > 0 {
		add(`job_type = ANY($%d)`, f.JobTypes)
	}
	if f.Location != "" {
		add(`location = $%d`, f.Location)
	}
	if f.Salary != nil {
		add(`salary = $%d`, *f.Salary)
	}
	if f.Currency != "" {
		add(`currency = $%d`, f.Currency)
	}
	if f.MinSalary != nil {
		add(`salary >= $%d`, *f.MinSalary)
	}
	if f.CreatedAfter != nil {
		add(`created_at >= $%d`, *f.CreatedAfter)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func scanJob(row database.Row) (job.Job, error) {
	return scanJobWithPrefix(row)
}

func collectJobs(rows database.Rows) ([]job.Job, error) {
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
