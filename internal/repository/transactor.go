package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/user"
)

// TxRepositories are bound to a single open transaction.
type TxRepositories struct {
	Users           user.Repository
	Profiles        ProfileRepository
	WorkExperiences WorkExperienceRepository
	Educations      EducationRepository
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(repos TxRepositories) error) error
}

type PostgresTransactor struct {
	db database.DB
}

func NewPostgresTransactor(db database.DB) *PostgresTransactor {
	return &PostgresTransactor{db: db}
}

func (t *PostgresTransactor) WithinTx(ctx context.Context, fn func(repos TxRepositories) error) error {
	return database.WithTx(ctx, t.db, func(tx database.Tx) error {
		return fn(TxRepositories{
			Users:           NewPostgresUserRepository(tx),
			Profiles:        NewPostgresProfileRepository(tx),
			WorkExperiences: NewPostgresWorkExperienceRepository(tx),
			Educations:      NewPostgresEducationRepository(tx),
		})
	})
}
