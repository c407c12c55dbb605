package dto

import (
	"context"
	"encoding/json"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/timesince"
)

type JobResponse struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	Company           string          `json:"company"`
	Location          string          `json:"location"`
	JobType           string          `json:"job_type"`
	Description       string          `json:"description"`
	Salary            *string         `json:"salary"`
	CreatedAt         string          `json:"created_at"`
	JData             json.RawMessage `json:"jdata"`
	Logo              *string         `json:"logo"`
	Currency          string          `json:"currency"`
	RelativeCreatedAt string          `json:"relative_created_at"`
}

// JobSerializer renders jobs with presigned logo URLs and ages relative to Now.
type JobSerializer struct {
	Signer URLSigner
	Now    func() time.Time
}

func (s JobSerializer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s JobSerializer) Job(ctx context.Context, j job.Job) JobResponse {
	meta := j.Metadata
	if len(meta) == 0 {
		meta = json.RawMessage("null")
	}
	return JobResponse{
		ID:                j.ID,
		Title:             j.Title,
		Company:           j.Company,
		Location:          j.Location,
		JobType:           string(j.Type),
		Description:       j.Description,
		Salary:            formatDecimal(j.Salary),
		CreatedAt:         j.CreatedAt.UTC().Format(time.RFC3339),
		JData:             meta,
		Logo:              objectURL(ctx, s.Signer, j.Logo),
		Currency:          string(j.Currency),
		RelativeCreatedAt: timesince.Ago(j.CreatedAt, s.now()),
	}
}

func (s JobSerializer) Jobs(ctx context.Context, items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, s.Job(ctx, j))
	}
	return out
}

type JobListResponse struct {
	Count    int           `json:"count"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []JobResponse `json:"results"`
}

type SavedJobResponse struct {
	ID      int64       `json:"id"`
	Job     JobResponse `json:"job"`
	SavedAt string      `json:"saved_at"`
}

type SavedJobsResponse struct {
	Count int                `json:"count"`
	Jobs  []SavedJobResponse `json:"jobs"`
}

type RecentJobResponse struct {
	ID       int64       `json:"id"`
	Job      JobResponse `json:"job"`
	ViewedAt string      `json:"viewed_at"`
}

func (s JobSerializer) Saved(ctx context.Context, items []job.Saved) SavedJobsResponse {
	out := make([]SavedJobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, SavedJobResponse{
			ID:      it.ID,
			Job:     s.Job(ctx, it.Job),
			SavedAt: it.SavedAt.UTC().Format(time.RFC3339),
		})
	}
	return SavedJobsResponse{Count: len(out), Jobs: out}
}

func (s JobSerializer) Recent(ctx context.Context, items []job.Viewed) []RecentJobResponse {
	out := make([]RecentJobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, RecentJobResponse{
			ID:       it.ID,
			Job:      s.Job(ctx, it.Job),
			ViewedAt: it.ViewedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
