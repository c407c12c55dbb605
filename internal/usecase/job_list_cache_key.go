package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

const (
	jobsListPrefix  = "jobs:list:"
	jobsListPattern = "jobs:list:*"
	jobsLockPrefix  = "jobs:lock:"

	// Outside jobsListPattern so invalidation never resets it.
	jobsListGenKey = "jobs:generation"
)

type jobListCacheKeyInput struct {
	Search      []string `json:"search"`
	Title       string   `json:"title"`
	JobTypes    []string `json:"job_types"`
	Location    string   `json:"location"`
	Salary      *float64 `json:"salary"`
	Currency    string   `json:"currency"`
	MinSalary   *float64 `json:"min_salary"`
	PublishTime string   `json:"publish_time"`
	Page        int      `json:"page"`
	PageSize    int      `json:"page_size"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// JobsListCacheKey must be called with params already normalized by the usecase.
// Pages written under an older generation are never read again.
func JobsListCacheKey(gen int64, params JobListParams) string {
	types := append([]string(nil), params.JobTypes...)
	sort.Strings(types)

	in := jobListCacheKeyInput{
		Search:      strings.Fields(normalizeSearchValue(params.Search)),
		Title:       normalizeSearchValue(params.Title),
		JobTypes:    types,
		Location:    params.Location,
		Salary:      params.Salary,
		Currency:    params.Currency,
		MinSalary:   params.MinSalary,
		PublishTime: params.PublishTime,
		Page:        params.Page,
		PageSize:    params.PageSize,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return jobsListPrefix + "v" + strconv.FormatInt(gen, 10) + ":" + hex.EncodeToString(sum[:])
}

func JobsListLockKey(listKey string) string {
	return jobsLockPrefix + strings.TrimPrefix(strings.TrimSpace(listKey), jobsListPrefix)
}
