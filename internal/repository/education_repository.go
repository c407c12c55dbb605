package repository

import (
	"context"

	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/domain/profile"
)

type EducationRepository interface {
	ListByProfile(ctx context.Context, profileID int64) ([]profile.Education, error)
	GetForUpdate(ctx context.Context, id, profileID int64) (profile.Education, error)
	Create(ctx context.Context, e profile.Education) (profile.Education, error)
	Update(ctx context.Context, e profile.Education) error
	DeleteByIDs(ctx context.Context, profileID int64, ids []int64) (int64, error)
}

const educationColumns = `id, profile_id, level_of_education, university_name, field_of_study, start_date, end_date, description`

type PostgresEducationRepository struct {
	db database.Querier
}

func NewPostgresEducationRepository(db database.Querier) *PostgresEducationRepository {
	return &PostgresEducationRepository{db: db}
}

func (r *PostgresEducationRepository) ListByProfile(ctx context.Context, profileID int64) ([]profile.Education, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+educationColumns+`
		 FROM educations
		 WHERE profile_id = $1
		 ORDER BY start_date DESC, id DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Education, 0)
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEducationRepository) GetForUpdate(ctx context.Context, id, profileID int64) (profile.Education, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+educationColumns+` FROM educations WHERE id = $1 AND profile_id = $2 FOR UPDATE`,
		id, profileID,
	)
	e, err := scanEducation(row)
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return profile.Education{}, profile.ErrEducationNotFound
		}
		return profile.Education{}, err
	}
	return e, nil
}

func (r *PostgresEducationRepository) Create(ctx context.Context, e profile.Education) (profile.Education, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO educations (profile_id, level_of_education, university_name, field_of_study, start_date, end_date, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		e.ProfileID, e.LevelOfEducation, e.UniversityName, e.FieldOfStudy, e.StartDate, e.EndDate, e.Description,
	)
	if err := row.Scan(&e.ID); err != nil {
		return profile.Education{}, err
	}
	return e, nil
}

func (r *PostgresEducationRepository) Update(ctx context.Context, e profile.Education) error {
	n, err := r.db.Exec(ctx,
		`UPDATE educations
		 SET level_of_education = $1, university_name = $2, field_of_study = $3,
		     start_date = $4, end_date = $5, description = $6
		 WHERE id = $7 AND profile_id = $8`,
		e.LevelOfEducation, e.UniversityName, e.FieldOfStudy, e.StartDate, e.EndDate, e.Description, e.ID, e.ProfileID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return profile.ErrEducationNotFound
	}
	return nil
}

func (r *PostgresEducationRepository) DeleteByIDs(ctx context.Context, profileID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.db.Exec(ctx, `DELETE FROM educations WHERE profile_id = $1 AND id = ANY($2)`, profileID, ids)
}

func scanEducation(row database.Row) (profile.Education, error) {
	var e profile.Education
	err := row.Scan(&e.ID, &e.ProfileID, &e.LevelOfEducation, &e.UniversityName, &e.FieldOfStudy, &e.StartDate, &e.EndDate, &e.Description)
	return e, err
}
