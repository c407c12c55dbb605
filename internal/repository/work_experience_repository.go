package repository

import (
	"context"

	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/domain/profile"
)

type WorkExperienceRepository interface {
	ListByProfile(ctx context.Context, profileID int64) ([]profile.WorkExperience, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id, profileID int64) (profile.WorkExperience, error)
	Create(ctx context.Context, w profile.WorkExperience) (profile.WorkExperience, error)
	Update(ctx context.Context, w profile.WorkExperience) error
	DeleteByIDs(ctx context.Context, profileID int64, ids []int64) (int64, error)
}

const workExperienceColumns = `id, profile_id, job_title, company, start_date, end_date, description`

type PostgresWorkExperienceRepository struct {
	db database.Querier
}

func NewPostgresWorkExperienceRepository(db database.Querier) *PostgresWorkExperienceRepository {
	return &PostgresWorkExperienceRepository{db: db}
}

func (r *PostgresWorkExperienceRepository) ListByProfile(ctx context.Context, profileID int64) ([]profile.WorkExperience, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+workExperienceColumns+`
		 FROM work_experiences
		 WHERE profile_id = $1
		 ORDER BY start_date DESC, id DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.WorkExperience, 0)
	for rows.Next() {
		w, err := scanWorkExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresWorkExperienceRepository) GetForUpdate(ctx context.Context, id, profileID int64) (profile.WorkExperience, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+workExperienceColumns+` FROM work_experiences WHERE id = $1 AND profile_id = $2 FOR UPDATE`,
		id, profileID,
	)
	w, err := scanWorkExperience(row)
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return profile.WorkExperience{}, profile.ErrWorkExperienceNotFound
		}
		return profile.WorkExperience{}, err
	}
	return w, nil
}

func (r *PostgresWorkExperienceRepository) Create(ctx context.Context, w profile.WorkExperience) (profile.WorkExperience, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO work_experiences (profile_id, job_title, company, start_date, end_date, description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		w.ProfileID, w.JobTitle, w.Company, w.StartDate, w.EndDate, w.Description,
	)
	if err := row.Scan(&w.ID); err != nil {
		return profile.WorkExperience{}, err
	}
	return w, nil
}

func (r *PostgresWorkExperienceRepository) Update(ctx context.Context, w profile.WorkExperience) error {
	n, err := r.db.Exec(ctx,
		`UPDATE work_experiences
		 SET job_title = $1, company = $2, start_date = $3, end_date = $4, description = $5
		 WHERE id = $6 AND profile_id = $7`,
		w.JobTitle, w.Company, w.StartDate, w.EndDate, w.Description, w.ID, w.ProfileID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return profile.ErrWorkExperienceNotFound
	}
	return nil
}

func (r *PostgresWorkExperienceRepository) DeleteByIDs(ctx context.Context, profileID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.db.Exec(ctx, `DELETE FROM work_experiences WHERE profile_id = $1 AND id = ANY($2)`, profileID, ids)
}

func scanWorkExperience(row database.Row) (profile.WorkExperience, error) {
	var w profile.WorkExperience
	err := row.Scan(&w.ID, &w.ProfileID, &w.JobTitle, &w.Company, &w.StartDate, &w.EndDate, &w.Description)
	return w, err
}
