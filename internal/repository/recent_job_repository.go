package repository

import (
	"context"

	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type RecentJobRepository interface {
	// Touch records a view, refreshing viewed_at when the job was seen before.
	Touch(ctx context.Context, userID uuid.UUID, jobID int64) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]job.Viewed, error)
}

type PostgresRecentJobRepository struct {
	db database.Querier
}

func NewPostgresRecentJobRepository(db database.Querier) *PostgresRecentJobRepository {
	return &PostgresRecentJobRepository{db: db}
}

func (r *PostgresRecentJobRepository) Touch(ctx context.Context, userID uuid.UUID, jobID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO recent_jobs (user_id, job_id, viewed_at) VALUES ($1, $2, now())
		 ON CONFLICT (user_id, job_id) DO UPDATE SET viewed_at = EXCLUDED.viewed_at`,
		userID, jobID,
	)
	if err != nil && dbpostgres.IsForeignKeyViolation(err) {
		return job.ErrNotFound
	}
	return err
}

func (r *PostgresRecentJobRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]job.Viewed, error) {
	rows, err := r.db.Query(ctx,
		`SELECT rj.id, rj.viewed_at, `+joinedJobColumns+`
		 FROM recent_jobs rj
		 JOIN jobs j ON j.id = rj.job_id
		 WHERE rj.user_id = $1
		 ORDER BY rj.viewed_at DESC, rj.id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Viewed, 0)
	for rows.Next() {
		var v job.Viewed
		j, err := scanJobWithPrefix(rows, &v.ID, &v.ViewedAt)
		if err != nil {
			return nil, err
		}
		v.Job = j
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
