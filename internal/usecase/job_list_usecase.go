package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/domain/job"
	"jobboard/internal/repository"
	"jobboard/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Publish windows accepted by the publish_time filter.
var publishWindows = map[string]time.Duration{
	"week":  7 * 24 * time.Hour,
	"3days": 3 * 24 * time.Hour,
	"month": 30 * 24 * time.Hour,
}

type JobListParams struct {
	Search      string
	Title       string
	JobTypes    []string
	Location    string
	Salary      *float64
	Currency    string
	MinSalary   *float64
	PublishTime string
	Page        int
	PageSize    int
}

type JobListPage struct {
	Count       int       `json:"count"`
	Page        int       `json:"page"`
	PageSize    int       `json:"page_size"`
	HasNext     bool      `json:"has_next"`
	HasPrevious bool      `json:"has_previous"`
	Items       []job.Job `json:"items"`
}

type JobListUsecase interface {
	ListJobs(ctx context.Context, params JobListParams) (JobListPage, error)
	ListAll(ctx context.Context) ([]job.Job, error)
}

type JobList struct {
	jobs    repository.JobRepository
	cache   ListingCache
	paging  config.PaginationConfig
	ttl     time.Duration
	metrics *telemetry.Metrics
	logger  *log.Logger

	now      func() time.Time
	lockWait time.Duration
}

func NewJobListUsecase(jobs repository.JobRepository, cache ListingCache, paging config.PaginationConfig, ttl time.Duration, metrics *telemetry.Metrics, logger *log.Logger) *JobList {
	if paging.DefaultPageSize <= 0 {
		paging.DefaultPageSize = 10
	}
	if paging.MaxPageSize <= 0 {
		paging.MaxPageSize = 100
	}
	return &JobList{
		jobs:     jobs,
		cache:    cache,
		paging:   paging,
		ttl:      ttl,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		lockWait: 300 * time.Millisecond,
	}
}

func (u *JobList) ListAll(ctx context.Context) ([]job.Job, error) {
	items, err := u.jobs.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *JobList) ListJobs(ctx context.Context, params JobListParams) (JobListPage, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "jobs.list")
	defer span.End()

	params, err := u.normalize(params)
	if err != nil {
		return JobListPage{}, err
	}
	span.SetAttributes(
		attribute.Int("jobs.page", params.Page),
		attribute.Int("jobs.page_size", params.PageSize),
	)

	cache, gen := u.cacheFor(ctx)
	cacheKey := JobsListCacheKey(gen, params)
	lockKey := JobsListLockKey(cacheKey)

	if page, ok := u.fromCache(ctx, cache, cacheKey); ok {
		span.SetAttributes(attribute.Bool("jobs.cache_hit", true))
		return page, nil
	}

	if cache != nil {
		ok, err := cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		switch {
		case err != nil:
			// No lock to wait on; rebuild directly.
		case ok:
			defer func() { _ = cache.Delete(context.WithoutCancel(ctx), lockKey) }()
		default:
			jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
			select {
			case <-ctx.Done():
				return JobListPage{}, ctx.Err()
			case <-time.After(u.lockWait + jitter):
			}
			if page, ok := u.fromCache(ctx, cache, cacheKey); ok {
				return page, nil
			}
			if u.logger != nil {
				u.logger.Printf("[Jobs] Lock wait fallback: %s", lockKey)
			}
		}
	}

	f := u.filter(params)
	items, total, err := u.jobs.ListFiltered(ctx, f)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list jobs")
		if u.logger != nil {
			u.logger.Printf("[Jobs] list failed: %v", err)
		}
		return JobListPage{}, ErrInternal
	}

	lastPage := (total + params.PageSize - 1) / params.PageSize
	if lastPage < 1 {
		lastPage = 1
	}
	if params.Page > lastPage {
		return JobListPage{}, ErrInvalidPage
	}

	page := JobListPage{
		Count:       total,
		Page:        params.Page,
		PageSize:    params.PageSize,
		HasNext:     params.Page < lastPage,
		HasPrevious: params.Page > 1,
		Items:       items,
	}

	if cache != nil {
		if err := cache.SetJSON(ctx, cacheKey, page, u.ttl); err != nil && u.logger != nil {
			u.logger.Printf("[Jobs] cache set failed key=%s err=%v", cacheKey, err)
		}
	}

	span.SetAttributes(attribute.Int("jobs.count", total))
	return page, nil
}

// cacheFor returns a nil cache when the listing generation cannot be read,
// which sends the request straight to the repository.
func (u *JobList) cacheFor(ctx context.Context) (ListingCache, int64) {
	if u.cache == nil {
		return nil, 0
	}
	gen, err := u.cache.Generation(ctx, jobsListGenKey)
	if err != nil {
		return nil, 0
	}
	return u.cache, gen
}

func (u *JobList) fromCache(ctx context.Context, cache ListingCache, key string) (JobListPage, bool) {
	if cache == nil {
		u.observeCache("bypass")
		return JobListPage{}, false
	}
	var cached JobListPage
	hit, err := cache.GetJSON(ctx, key, &cached)
	if err == nil && hit {
		if u.logger != nil {
			u.logger.Printf("[Jobs] Cache HIT: %s", key)
		}
		u.observeCache("hit")
		return cached, true
	}
	u.observeCache("miss")
	return JobListPage{}, false
}

func (u *JobList) observeCache(result string) {
	if u.metrics != nil {
		u.metrics.ListingCache.WithLabelValues(result).Inc()
	}
}

func (u *JobList) normalize(p JobListParams) (JobListParams, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Page < 0 {
		return JobListParams{}, ErrInvalidPage
	}
	if p.PageSize <= 0 {
		p.PageSize = u.paging.DefaultPageSize
	}
	if p.PageSize > u.paging.MaxPageSize {
		p.PageSize = u.paging.MaxPageSize
	}

	types := make([]string, 0, len(p.JobTypes))
	for _, t := range p.JobTypes {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		types = append(types, t)
	}
	p.JobTypes = types

	p.Search = strings.TrimSpace(p.Search)
	p.Title = strings.TrimSpace(p.Title)
	p.Location = strings.TrimSpace(p.Location)
	p.Currency = strings.TrimSpace(p.Currency)
	if _, ok := publishWindows[p.PublishTime]; !ok {
		p.PublishTime = ""
	}
	return p, nil
}

func (u *JobList) filter(p JobListParams) repository.JobListFilter {
	f := repository.JobListFilter{
		SearchTerms: strings.Fields(p.Search),
		Title:       p.Title,
		JobTypes:    p.JobTypes,
		Location:    p.Location,
		Salary:      p.Salary,
		Currency:    p.Currency,
		MinSalary:   p.MinSalary,
		Limit:       p.PageSize,
		Offset:      (p.Page - 1) * p.PageSize,
	}
	if window, ok := publishWindows[p.PublishTime]; ok {
		after := u.now().Add(-window)
		f.CreatedAfter = &after
	}
	return f
}
