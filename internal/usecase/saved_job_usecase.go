package usecase

import (
	"context"
	"errors"

	"jobboard/internal/domain/job"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type SavedJobUsecase interface {
	Save(ctx context.Context, userID uuid.UUID, jobID int64) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]job.Saved, error)
	Remove(ctx context.Context, userID uuid.UUID, jobID int64) error
}

type SavedJobs struct {
	jobs  repository.JobRepository
	saved repository.SavedJobRepository
}

func NewSavedJobUsecase(jobs repository.JobRepository, saved repository.SavedJobRepository) *SavedJobs {
	return &SavedJobs{jobs: jobs, saved: saved}
}

// Save is idempotent; created is false when the job was already saved.
func (u *SavedJobs) Save(ctx context.Context, userID uuid.UUID, jobID int64) (bool, error) {
	if jobID <= 0 {
		return false, ErrJobNotFound
	}
	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return false, ErrInternal
	}
	if !exists {
		return false, ErrJobNotFound
	}

	created, err := u.saved.Save(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return false, ErrJobNotFound
		}
		return false, ErrInternal
	}
	return created, nil
}

func (u *SavedJobs) List(ctx context.Context, userID uuid.UUID) ([]job.Saved, error) {
	items, err := u.saved.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *SavedJobs) Remove(ctx context.Context, userID uuid.UUID, jobID int64) error {
	removed, err := u.saved.Delete(ctx, userID, jobID)
	if err != nil {
		return ErrInternal
	}
	if !removed {
		return ErrSavedJobNotFound
	}
	return nil
}

type RecentJobUsecase interface {
	Record(ctx context.Context, userID uuid.UUID, jobID int64) error
	List(ctx context.Context, userID uuid.UUID) ([]job.Viewed, error)
}

type RecentJobs struct {
	jobs   repository.JobRepository
	recent repository.RecentJobRepository
}

func NewRecentJobUsecase(jobs repository.JobRepository, recent repository.RecentJobRepository) *RecentJobs {
	return &RecentJobs{jobs: jobs, recent: recent}
}

func (u *RecentJobs) Record(ctx context.Context, userID uuid.UUID, jobID int64) error {
	if jobID <= 0 {
		return ErrJobNotFound
	}
	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrJobNotFound
	}

	if err := u.recent.Touch(ctx, userID, jobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *RecentJobs) List(ctx context.Context, userID uuid.UUID) ([]job.Viewed, error) {
	items, err := u.recent.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
