package repository

import (
	"context"
	"encoding/json"

	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/domain/profile"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	CreateEmpty(ctx context.Context, userID uuid.UUID) (int64, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	UpdateAboutMe(ctx context.Context, profileID int64, aboutMe string) error
	UpdateSkills(ctx context.Context, profileID int64, skills []string) error
	// SetResume stores key and returns the key it replaced, if any.
	SetResume(ctx context.Context, profileID int64, key string) (*string, error)
	SetAvatar(ctx context.Context, profileID int64, key string) (*string, error)
}

type PostgresProfileRepository struct {
	db database.Querier
}

func NewPostgresProfileRepository(db database.Querier) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) CreateEmpty(ctx context.Context, userID uuid.UUID) (int64, error) {
	var id int64
	row := r.db.QueryRow(ctx, `INSERT INTO profiles (user_id) VALUES ($1) RETURNING id`, userID)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT p.id, p.user_id, u.full_name, p.about_me, p.skills, p.avatar, p.job_title, p.resume
		 FROM profiles p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = $1`,
		userID,
	)

	var p profile.Profile
	var skills []byte
	if err := row.Scan(&p.ID, &p.UserID, &p.FullName, &p.AboutMe, &skills, &p.Avatar, &p.JobTitle, &p.Resume); err != nil {
		if dbpostgres.IsNoRows(err) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &p.Skills); err != nil {
			return profile.Profile{}, err
		}
	}
	return p, nil
}

func (r *PostgresProfileRepository) UpdateAboutMe(ctx context.Context, profileID int64, aboutMe string) error {
	n, err := r.db.Exec(ctx, `UPDATE profiles SET about_me = $1 WHERE id = $2`, aboutMe, profileID)
	if err != nil {
		return err
	}
	if n == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) UpdateSkills(ctx context.Context, profileID int64, skills []string) error {
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return err
	}
	n, err := r.db.Exec(ctx, `UPDATE profiles SET skills = $1 WHERE id = $2`, b, profileID)
	if err != nil {
		return err
	}
	if n == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) SetResume(ctx context.Context, profileID int64, key string) (*string, error) {
	return r.swapColumn(ctx, "resume", profileID, key)
}

func (r *PostgresProfileRepository) SetAvatar(ctx context.Context, profileID int64, key string) (*string, error) {
	return r.swapColumn(ctx, "avatar", profileID, key)
}

// swapColumn only ever receives a column name from this file.
func (r *PostgresProfileRepository) swapColumn(ctx context.Context, column string, profileID int64, key string) (*string, error) {
	var previous *string
	row := r.db.QueryRow(ctx,
		`UPDATE profiles p SET `+column+` = $1
		 FROM (SELECT id, `+column+` AS old FROM profiles WHERE id = $2 FOR UPDATE) prev
		 WHERE p.id = prev.id
		 RETURNING prev.old`,
		key, profileID,
	)
	if err := row.Scan(&previous); err != nil {
		if dbpostgres.IsNoRows(err) {
			return nil, profile.ErrNotFound
		}
		return nil, err
	}
	return previous, nil
}
