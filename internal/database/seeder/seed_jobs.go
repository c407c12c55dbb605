package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"
	"jobboard/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
)

// JobsSeeder inserts synthetic postings spread over the last 60 days so the
// publish_time filters have something to select.
type JobsSeeder struct {
	Count int
	Faker *gofakeit.Faker
}

func (JobsSeeder) Name() string { return "jobs" }

func (s JobsSeeder) Run(ctx context.Context, db database.DB) (int, error) {
	if s.Count <= 0 {
		return 0, nil
	}
	err := RequireColumns(ctx, db, map[string][]string{
		"jobs": {"id", "title", "company", "location", "job_type", "description", "salary", "currency", "jdata", "logo", "created_at"},
	})
	if err != nil {
		return 0, err
	}

	f := s.Faker
	if f == nil {
		f = gofakeit.New(0)
	}
	now := time.Now().UTC()

	err = database.WithTx(ctx, db, func(tx database.Tx) error {
		jobs := repository.NewPostgresJobRepository(tx)
		for i := 0; i < s.Count; i++ {
			j, err := jobs.Create(ctx, fakeJob(f))
			if err != nil {
				return fmt.Errorf("job %d: %w", i, err)
			}
			createdAt := f.DateRange(now.AddDate(0, 0, -60), now)
			if _, err := tx.Exec(ctx, `UPDATE jobs SET created_at = $2 WHERE id = $1`, j.ID, createdAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return s.Count, nil
}

func fakeJob(f *gofakeit.Faker) job.Job {
	j := job.Job{
		Title:       truncate(f.JobDescriptor()+" "+f.JobTitle(), 100),
		Company:     truncate(f.Company(), 100),
		Location:    f.City(),
		Type:        job.Types[f.Number(0, len(job.Types)-1)],
		Description: f.Paragraph(2, 4, 12, "\n\n"),
		Currency:    job.Currencies[f.Number(0, len(job.Currencies)-1)],
	}

	if f.Bool() {
		salary := math.Round(f.Float64Range(300, 15000)*100) / 100
		j.Salary = &salary
	}
	if f.Bool() {
		meta, err := json.Marshal(map[string]any{
			"level":  f.JobLevel(),
			"skills": []string{f.HackerNoun(), f.HackerNoun(), f.HackerNoun()},
		})
		if err == nil {
			j.Metadata = meta
		}
	}
	return j
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
