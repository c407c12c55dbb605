package repository

import (
	"context"

	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type SavedJobRepository interface {
	// Save reports whether a new row was written.
	Save(ctx context.Context, userID uuid.UUID, jobID int64) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]job.Saved, error)
	Delete(ctx context.Context, userID uuid.UUID, jobID int64) (bool, error)
}

const joinedJobColumns = `j.id, j.title, j.company, j.location, j.job_type, j.description, j.salary, j.currency, j.jdata, j.logo, j.created_at`

type PostgresSavedJobRepository struct {
	db database.Querier
}

func NewPostgresSavedJobRepository(db database.Querier) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

func (r *PostgresSavedJobRepository) Save(ctx context.Context, userID uuid.UUID, jobID int64) (bool, error) {
	n, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (user_id, job_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, job_id) DO NOTHING`,
		userID, jobID,
	)
	if err != nil {
		if dbpostgres.IsForeignKeyViolation(err) {
			return false, job.ErrNotFound
		}
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresSavedJobRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]job.Saved, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.saved_at, `+joinedJobColumns+`
		 FROM saved_jobs s
		 JOIN jobs j ON j.id = s.job_id
		 WHERE s.user_id = $1
		 ORDER BY s.saved_at DESC, s.id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Saved, 0)
	for rows.Next() {
		var s job.Saved
		j, err := scanJobWithPrefix(rows, &s.ID, &s.SavedAt)
		if err != nil {
			return nil, err
		}
		s.Job = j
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSavedJobRepository) Delete(ctx context.Context, userID uuid.UUID, jobID int64) (bool, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// scanJobWithPrefix scans leading columns into prefix and the rest as a job.
func scanJobWithPrefix(row database.Row, prefix ...any) (job.Job, error) {
	var j job.Job
	var jobType, currency string
	var meta []byte
	dest := append(prefix,
		&j.ID, &j.Title, &j.Company, &j.Location, &jobType, &j.Description,
		&j.Salary, &currency, &meta, &j.Logo, &j.CreatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return job.Job{}, err
	}
	j.Type = job.Type(jobType)
	j.Currency = job.Currency(currency)
	if len(meta) > 0 {
		j.Metadata = meta
	}
	return j, nil
}
