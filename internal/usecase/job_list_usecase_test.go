package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/domain/job"
	"jobboard/internal/infrastructure/cache"
)

func newListUsecase(repo *fakeJobRepo, cache ListingCache) *JobList {
	uc := NewJobListUsecase(repo, cache, config.PaginationConfig{DefaultPageSize: 10, MaxPageSize: 100}, time.Minute, nil, nil)
	uc.lockWait = time.Millisecond
	return uc
}

func TestJobList_DefaultsAndFilter(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeJobRepo{page: []job.Job{{ID: 1}}, total: 1}
	uc := newListUsecase(repo, nil)
	uc.now = func() time.Time { return now }

	minSalary := 100.0
	page, err := uc.ListJobs(context.Background(), JobListParams{
		Search:      "  go   backend ",
		JobTypes:    []string{" remote ", "", "hybrid"},
		MinSalary:   &minSalary,
		PublishTime: "3days",
		PageSize:    500,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Page != 1 || page.PageSize != 100 || page.Count != 1 || page.HasNext || page.HasPrevious {
		t.Fatalf("unexpected page %+v", page)
	}

	f := repo.last
	if len(f.SearchTerms) != 2 || f.SearchTerms[0] != "go" || f.SearchTerms[1] != "backend" {
		t.Fatalf("unexpected search terms %v", f.SearchTerms)
	}
	if len(f.JobTypes) != 2 || f.JobTypes[0] != "remote" {
		t.Fatalf("unexpected job types %v", f.JobTypes)
	}
	if f.CreatedAfter == nil || !f.CreatedAfter.Equal(now.Add(-72*time.Hour)) {
		t.Fatalf("unexpected created after %v", f.CreatedAfter)
	}
	if f.Limit != 100 || f.Offset != 0 {
		t.Fatalf("unexpected limit/offset %d/%d", f.Limit, f.Offset)
	}
}

func TestJobList_UnknownPublishTimeIgnored(t *testing.T) {
	repo := &fakeJobRepo{total: 0}
	uc := newListUsecase(repo, nil)

	if _, err := uc.ListJobs(context.Background(), JobListParams{PublishTime: "year"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.last.CreatedAfter != nil {
		t.Fatalf("expected no created_at filter")
	}
}

func TestJobList_PagePastEnd(t *testing.T) {
	repo := &fakeJobRepo{total: 25}
	uc := newListUsecase(repo, nil)

	page, err := uc.ListJobs(context.Background(), JobListParams{Page: 3})
	if err != nil {
		t.Fatalf("page 3 of 3 should be valid: %v", err)
	}
	if page.HasNext || !page.HasPrevious || repo.last.Offset != 20 {
		t.Fatalf("unexpected page %+v offset=%d", page, repo.last.Offset)
	}

	if _, err := uc.ListJobs(context.Background(), JobListParams{Page: 4}); !errors.Is(err, ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
}

func TestJobList_CacheHitSkipsRepository(t *testing.T) {
	repo := &fakeJobRepo{page: []job.Job{{ID: 7, Title: "Go"}}, total: 1}
	cache := newMemCache()
	uc := newListUsecase(repo, cache)

	params := JobListParams{Title: "Go"}
	if _, err := uc.ListJobs(context.Background(), params); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	page, err := uc.ListJobs(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one repository call, got %d", repo.calls)
	}
	if len(page.Items) != 1 || page.Items[0].ID != 7 {
		t.Fatalf("unexpected cached page %+v", page)
	}
}

func TestJobList_RepositoryErrorIsInternal(t *testing.T) {
	uc := newListUsecase(&fakeJobRepo{err: errors.New("db down")}, nil)
	if _, err := uc.ListJobs(context.Background(), JobListParams{}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestJobsListCacheKey_Normalized(t *testing.T) {
	a := JobsListCacheKey(0, JobListParams{Search: "Go  Backend", JobTypes: []string{"remote", "hybrid"}, Page: 1, PageSize: 10})
	b := JobsListCacheKey(0, JobListParams{Search: "go backend", JobTypes: []string{"hybrid", "remote"}, Page: 1, PageSize: 10})
	if a != b {
		t.Fatalf("expected equal keys, got %s vs %s", a, b)
	}
	if c := JobsListCacheKey(1, JobListParams{Search: "go backend", JobTypes: []string{"hybrid", "remote"}, Page: 1, PageSize: 10}); c == a {
		t.Fatalf("expected generation to change the key")
	}
	if !strings.HasPrefix(a, jobsListPrefix) || strings.HasPrefix(jobsListGenKey, jobsListPrefix) {
		t.Fatalf("generation key must stay outside the list pattern")
	}
	if JobsListLockKey(a) == a {
		t.Fatalf("lock key must differ from list key")
	}
}

func TestJobList_DisabledRedisSkipsLockWait(t *testing.T) {
	repo := &fakeJobRepo{page: []job.Job{{ID: 1}}, total: 1}
	uc := NewJobListUsecase(repo, cache.NewRedis(config.RedisConfig{}, nil), config.PaginationConfig{}, time.Minute, nil, nil)
	uc.lockWait = 5 * time.Second

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := uc.ListJobs(context.Background(), JobListParams{}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected cache bypass without waiting, took %s", elapsed)
	}
	if repo.calls != 3 {
		t.Fatalf("expected three repository calls, got %d", repo.calls)
	}
}

func TestJobList_RebuildDuringInvalidationIsNotServed(t *testing.T) {
	repo := &fakeJobRepo{page: []job.Job{{ID: 1}}, total: 1}
	mc := newMemCache()
	uc := newListUsecase(repo, mc)
	creator := NewJobCreateUsecase(repo, nil, mc, nil, nil, 0, nil)

	// A job lands while the first rebuild is reading the repository.
	repo.onList = func() {
		repo.onList = nil
		if _, err := creator.CreateJob(context.Background(), validJobInput()); err != nil {
			t.Errorf("create: %v", err)
		}
	}
	if _, err := uc.ListJobs(context.Background(), JobListParams{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	repo.page = []job.Job{{ID: 2}, {ID: 1}}
	repo.total = 2
	page, err := uc.ListJobs(context.Background(), JobListParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Count != 2 || repo.calls != 2 {
		t.Fatalf("expected a fresh rebuild after the new job, got count=%d calls=%d", page.Count, repo.calls)
	}
}
